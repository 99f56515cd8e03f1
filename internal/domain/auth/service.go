package auth

import "context"

type AuthService interface {
	// Login exchanges the operator access key for an access/refresh token
	// pair
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, req RefreshRequest) (TokenResponse, error)
}
