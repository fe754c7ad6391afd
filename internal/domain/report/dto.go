package report

import (
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ========================================
// ATTENDANCE EXPORT
// ========================================

type AttendanceExportRequest struct {
	From string `json:"date_from"`
	To   string `json:"date_to"`
}

func (r *AttendanceExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(r.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && !validator.IsValidDayRange(r.From, r.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// TIMESHEET EXPORT
// ========================================

type TimesheetExportRequest struct {
	EmployeeID string `json:"employee_id"`
	// Date is any day-key inside the week; empty means the current week
	Date string `json:"date,omitempty"`
}

func (r *TimesheetExportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs.Add("date", "date must be in YYYY-MM-DD format")
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========================================
// GENERATED FILES
// ========================================

// File is a generated export ready to be served or archived.
type File struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"-"`
	Rows        int    `json:"rows"`
}

// ArchiveResult reports what the archive job did for one day.
type ArchiveResult struct {
	Date     string `json:"date"`
	Path     string `json:"path"`
	URL      string `json:"url,omitempty"`
	Rows     int    `json:"rows"`
	Archived bool   `json:"archived"`
}
