package auth

import (
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type AdminLoginRequest struct {
	PIN string `json:"pin"`
}

func (r *AdminLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeLoginRequest identifies the employee by id or email.
type EmployeeLoginRequest struct {
	EmployeeID string `json:"employee_id,omitempty"`
	Email      string `json:"email,omitempty"`
	PIN        string `json:"pin"`
}

func (r *EmployeeLoginRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) && validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id or email is required",
		})
	}
	if validator.IsEmpty(r.PIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "pin",
			Message: "pin is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ChangeAdminPINRequest struct {
	CurrentPIN string `json:"current_pin"`
	NewPIN     string `json:"new_pin"`
}

func (r *ChangeAdminPINRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.CurrentPIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "current_pin",
			Message: "current_pin is required",
		})
	}
	if !validator.IsValidPIN(r.NewPIN) {
		errs = append(errs, validator.ValidationError{
			Field:   "new_pin",
			Message: "new_pin must be 4-6 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TokenResponse struct {
	AccessToken string               `json:"access_token"`
	ExpiresAt   int64                `json:"expires_at"`
	Session     user.SessionResponse `json:"session"`
}
