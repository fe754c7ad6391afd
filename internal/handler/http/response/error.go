package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrTokenRevoked):
		Unauthorized(w, "Token revoked")

	// Access scope
	case errors.Is(err, user.ErrSessionRequired):
		Unauthorized(w, "Login required")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrOutOfScope),
		errors.Is(err, attendance.ErrOutOfScope):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrNotAnIntern):
		Conflict(w, "Employee is not an intern")
	case errors.Is(err, employee.ErrInvalidImportFile):
		BadRequest(w, "Invalid roster import file", nil)

	// Attendance and report errors
	case errors.Is(err, attendance.ErrInvalidDateRange),
		errors.Is(err, report.ErrInvalidDateRange):
		BadRequest(w, err.Error(), nil)

	// Timesheet domain errors
	case errors.Is(err, timesheet.ErrTimesheetAlreadyApproved):
		Conflict(w, "Timesheet already approved")
	case errors.Is(err, timesheet.ErrTimesheetNotPending):
		Conflict(w, "Timesheet is not pending review")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	case errors.Is(err, evaluation.ErrEvaluationNotFound):
		NotFound(w, "Evaluation not found")
	case errors.Is(err, learning.ErrLogNotFound):
		NotFound(w, "Learning log not found")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
