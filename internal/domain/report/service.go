package report

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

// ReportService defines the interface for export generation
type ReportService interface {
	// AttendanceCSV exports every visible record between two day-keys
	AttendanceCSV(ctx context.Context, caps user.Capabilities, req AttendanceExportRequest) (File, error)

	// AttendanceXLSX exports the same rows as a workbook
	AttendanceXLSX(ctx context.Context, caps user.Capabilities, req AttendanceExportRequest) (File, error)

	// EmployeesCSV exports the non-intern roster
	EmployeesCSV(ctx context.Context) (File, error)

	// TimesheetCSV exports one employee's Monday-aligned week with its approval status
	TimesheetCSV(ctx context.Context, caps user.Capabilities, req TimesheetExportRequest) (File, error)

	// InternsCSV exports interns with their internship fields
	InternsCSV(ctx context.Context) (File, error)

	// ArchiveDay stores the attendance CSV of a day unless it was archived before
	ArchiveDay(ctx context.Context, dayKey string) (ArchiveResult, error)
}
