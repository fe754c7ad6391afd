package attendance

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// ClockIn stamps the first clock-in of the day; repeated calls are ignored
	ClockIn(ctx context.Context, req ClockRequest) (ClockResult, error)

	// ClockOut stamps the clock-out of an open day; other calls are ignored
	ClockOut(ctx context.Context, req ClockRequest) (ClockResult, error)

	// GetDaily returns per-employee rows and counts for a day
	GetDaily(ctx context.Context, caps user.Capabilities, date string) (DailyReport, error)

	// GetStats returns the dashboard counts for a day
	GetStats(ctx context.Context, date string) (DashboardStats, error)

	// GetRange flattens every record between two day-keys
	GetRange(ctx context.Context, caps user.Capabilities, filter RangeFilter) ([]RangeRow, error)

	// GetWeek returns the Monday-aligned week of one employee
	GetWeek(ctx context.Context, employeeID string, date string) (WeekReport, error)
}
