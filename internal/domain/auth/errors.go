package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid PIN")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
)
