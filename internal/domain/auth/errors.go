package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid access key")
	ErrInvalidToken       = errors.New("invalid or malformed token")
	ErrTokenExpired       = errors.New("token expired")
)
