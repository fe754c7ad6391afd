package http

import (
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

type AuthHandler interface {
	LoginAdmin(w http.ResponseWriter, r *http.Request)
	LoginEmployee(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	ChangeAdminPIN(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	authService auth.AuthService
}

func NewAuthHandler(authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		authService: authService,
	}
}

// LoginAdmin implements AuthHandler.
func (a *AuthHandlerImpl) LoginAdmin(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.AdminLoginRequest

	if !decodeJSON(w, r, &loginReq) {
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.LoginAdmin(r.Context(), loginReq)
	if err != nil {
		slog.Warn("LoginAdmin failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Admin logged in")
	response.Created(w, "Logged in successfully", tokenResponse)
}

// LoginEmployee implements AuthHandler.
func (a *AuthHandlerImpl) LoginEmployee(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.EmployeeLoginRequest

	if !decodeJSON(w, r, &loginReq) {
		return
	}

	if err := loginReq.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	tokenResponse, err := a.authService.LoginEmployee(r.Context(), loginReq)
	if err != nil {
		slog.Warn("LoginEmployee failed", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Employee logged in", "employee_id", tokenResponse.Session.EmployeeID)
	response.Created(w, "Logged in successfully", tokenResponse)
}

// Logout implements AuthHandler.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	if err := a.authService.Logout(r.Context(), jwtauth.TokenFromHeader(r)); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Logged out successfully", nil)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	session, err := a.authService.Me(r.Context(), middleware.GetSession(r.Context()))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, session)
}

// ChangeAdminPIN implements AuthHandler.
func (a *AuthHandlerImpl) ChangeAdminPIN(w http.ResponseWriter, r *http.Request) {
	var req auth.ChangeAdminPINRequest

	if !decodeJSON(w, r, &req) {
		return
	}

	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	if err := a.authService.ChangeAdminPIN(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	slog.Info("Admin PIN changed")
	response.SuccessWithMessage(w, "Admin PIN changed successfully", nil)
}
