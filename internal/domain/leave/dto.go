package leave

import (
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	DateFrom   string `json:"date_from"`
	DateTo     string `json:"date_to"`
	Reason     string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Reason = strings.TrimSpace(r.Reason)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if !validator.IsInSlice(r.Type, LeaveTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of: Sakit, Izin, Kampus",
		})
	}

	from, okFrom := validator.IsValidDate(r.DateFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}
	to, okTo := validator.IsValidDate(r.DateTo)
	if !okTo {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must not be before date_from",
		})
	}

	if len(r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, []string{
		string(LeaveStatusPending), string(LeaveStatusApproved), string(LeaveStatusRejected),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Pending, Approved, Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type LeaveRequestResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Type         string `json:"type"`
	DateFrom     string `json:"date_from"`
	DateTo       string `json:"date_to"`
	Reason       string `json:"reason,omitempty"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
	DecidedBy    string `json:"decided_by,omitempty"`
	DecidedAt    *int64 `json:"decided_at,omitempty"`
}

func NewLeaveRequestResponse(l LeaveRequest, employeeName string) LeaveRequestResponse {
	status := l.Status
	if status == "" {
		status = LeaveStatusPending
	}
	return LeaveRequestResponse{
		ID:           l.ID,
		EmployeeID:   l.EmployeeID,
		EmployeeName: employeeName,
		Type:         string(l.Type),
		DateFrom:     l.DateFrom,
		DateTo:       l.DateTo,
		Reason:       l.Reason,
		Status:       string(status),
		CreatedAt:    l.CreatedAt,
		DecidedBy:    l.DecidedBy,
		DecidedAt:    l.DecidedAt,
	}
}
