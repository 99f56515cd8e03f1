package auth

import (
	"context"

	"github.com/fleetops/attendance-backend-go/internal/domain/auth"
	"github.com/fleetops/attendance-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// operatorSubject is the token subject for the single reporting operator
// this tool serves.
const operatorSubject = "operator"

type AuthServiceImpl struct {
	jwtService    jwt.Service
	accessKeyHash string
}

func NewAuthService(jwtService jwt.Service, accessKeyHash string) auth.AuthService {
	return &AuthServiceImpl{
		jwtService:    jwtService,
		accessKeyHash: accessKeyHash,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(s.accessKeyHash), []byte(req.AccessKey)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(operatorSubject)
	if err != nil {
		return auth.TokenResponse{}, err
	}
	refreshToken, _, err := s.jwtService.GenerateRefreshToken(operatorSubject)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	subject, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(subject)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}
