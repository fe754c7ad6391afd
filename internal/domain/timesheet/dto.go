package timesheet

import (
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

type SubmitRequest struct {
	EmployeeID string `json:"employee_id"`
	// WeekStart is any day-key inside the week; it is normalized to Monday
	WeekStart string `json:"week_start"`
}

func (r *SubmitRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ReviewRequest struct {
	EmployeeID string `json:"employee_id"`
	WeekStart  string `json:"week_start"`
	Approve    *bool  `json:"approve"`
}

func (r *ReviewRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if _, ok := validator.IsValidDate(r.WeekStart); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start",
			Message: "week_start must be in YYYY-MM-DD format",
		})
	}
	if r.Approve == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "approve",
			Message: "approve is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TimesheetFilter struct {
	Status     *string `json:"status,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (f *TimesheetFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be one of: Draft, Pending, Approved, Rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WeeklyTimesheet struct {
	EmployeeID   string  `json:"employee_id"`
	EmployeeName string  `json:"employee_name,omitempty"`
	WeekKey      string  `json:"week_key"`
	WeekStart    string  `json:"week_start"`
	WeekEnd      string  `json:"week_end"`
	Status       Status  `json:"status"`
	SubmittedAt  *int64  `json:"submitted_at,omitempty"`
	ApprovedBy   string  `json:"approved_by,omitempty"`
	ApprovedAt   *int64  `json:"approved_at,omitempty"`
	TotalHours   float64 `json:"total_hours"`
	TargetHours  float64 `json:"target_hours"`
}
