package timesheet

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

type TimesheetService interface {
	// GetWeek returns the status and hours of the week containing date
	GetWeek(ctx context.Context, employeeID string, date string) (WeeklyTimesheet, error)

	// Submit moves a week to Pending
	Submit(ctx context.Context, req SubmitRequest) (WeeklyTimesheet, error)

	// Review approves or rejects a week
	Review(ctx context.Context, req ReviewRequest, reviewer user.Session) (WeeklyTimesheet, error)

	// List returns stored approvals visible to caps
	List(ctx context.Context, caps user.Capabilities, filter TimesheetFilter) ([]WeeklyTimesheet, error)
}
