package timesheet

import "context"

type TimesheetRepository interface {
	// Get returns the approval stored at weekKey, or Draft when none exists
	Get(ctx context.Context, weekKey string) (Approval, error)
	GetAll(ctx context.Context) (Approvals, error)
	Save(ctx context.Context, weekKey string, approval Approval) error
	// DeleteByEmployeeID removes every week of the employee
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
