package auth

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

type AuthService interface {
	LoginAdmin(ctx context.Context, req AdminLoginRequest) (TokenResponse, error)
	LoginEmployee(ctx context.Context, req EmployeeLoginRequest) (TokenResponse, error)
	Logout(ctx context.Context, token string) error
	Me(ctx context.Context, session user.Session) (user.SessionResponse, error)
	ChangeAdminPIN(ctx context.Context, req ChangeAdminPINRequest) error
}
