package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

type AuthServiceImpl struct {
	store *kv.Store
	employee.EmployeeRepository
	auth.SettingsRepository
	auth.CredentialStore
	jwt.Service
}

func NewAuthService(store *kv.Store, employeeRepository employee.EmployeeRepository, settingsRepository auth.SettingsRepository, credentialStore auth.CredentialStore, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		store:              store,
		EmployeeRepository: employeeRepository,
		SettingsRepository: settingsRepository,
		CredentialStore:    credentialStore,
		Service:            jwtService,
	}
}

func (a *AuthServiceImpl) issue(session user.Session) (auth.TokenResponse, error) {
	accessToken, expiresAt, err := a.Service.GenerateAccessToken(session)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		Session:     user.NewSessionResponse(session),
	}, nil
}

// LoginAdmin implements auth.AuthService.
func (a *AuthServiceImpl) LoginAdmin(ctx context.Context, req auth.AdminLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	ok, err := a.CredentialStore.MatchAdminPIN(ctx, req.PIN)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check admin pin: %w", err)
	}
	if !ok {
		slog.Warn("Rejected admin login")
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	slog.Info("Admin logged in")
	return a.issue(user.AdminSession())
}

// LoginEmployee implements auth.AuthService.
func (a *AuthServiceImpl) LoginEmployee(ctx context.Context, req auth.EmployeeLoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	var (
		emp employee.Employee
		err error
	)
	if req.EmployeeID != "" {
		emp, err = a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
	} else {
		emp, err = a.EmployeeRepository.GetByEmail(ctx, req.Email)
	}
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	ok, err := a.CredentialStore.MatchEmployeePIN(ctx, emp.ID, req.PIN)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to check employee pin: %w", err)
	}
	if !ok {
		slog.Warn("Rejected employee login", "employee_id", emp.ID)
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	slog.Info("Employee logged in", "employee_id", emp.ID, "role", emp.Role)
	return a.issue(user.EmployeeSession(emp))
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	a.Service.RevokeToken(token)
	return nil
}

// Me implements auth.AuthService. Employee sessions are refreshed from the roster
// so a role change applies without logging in again.
func (a *AuthServiceImpl) Me(ctx context.Context, session user.Session) (user.SessionResponse, error) {
	if session.Kind != user.SessionEmployee {
		return user.NewSessionResponse(session), nil
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, session.EmployeeID)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return user.SessionResponse{}, auth.ErrInvalidToken
	}
	if err != nil {
		return user.SessionResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return user.NewSessionResponse(user.EmployeeSession(emp)), nil
}

// ChangeAdminPIN implements auth.AuthService.
func (a *AuthServiceImpl) ChangeAdminPIN(ctx context.Context, req auth.ChangeAdminPINRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	hashed, err := a.CredentialStore.HashPIN(req.NewPIN)
	if err != nil {
		return err
	}

	err = a.store.Update(ctx, func(ctx context.Context) error {
		ok, err := a.CredentialStore.MatchAdminPIN(ctx, req.CurrentPIN)
		if err != nil {
			return fmt.Errorf("failed to check admin pin: %w", err)
		}
		if !ok {
			return auth.ErrInvalidCredentials
		}
		return a.SettingsRepository.SetAdminPIN(ctx, hashed)
	})
	if err != nil {
		return err
	}

	slog.Info("Admin PIN changed")
	return nil
}
