package attendance

import (
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
)

// ========================================
// CLOCK DTOs
// ========================================

type ClockRequest struct {
	EmployeeID string `json:"employee_id"`
	Note       string `json:"note,omitempty"`
	// Date selects the day-key (YYYY-MM-DD); empty means today
	Date string `json:"date,omitempty"`
}

func (r *ClockRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Note = strings.TrimSpace(r.Note)

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if r.Date != "" {
		if _, ok := validator.IsValidDate(r.Date); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "date",
				Message: "date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ClockResult reports the record after a clock call. Recorded is false for ignored duplicates.
type ClockResult struct {
	EmployeeID string         `json:"employee_id"`
	Date       string         `json:"date"`
	Recorded   bool           `json:"recorded"`
	Record     RecordResponse `json:"record"`
}

type RecordResponse struct {
	In            *int64  `json:"in"`
	Out           *int64  `json:"out"`
	InNote        string  `json:"in_note,omitempty"`
	OutNote       string  `json:"out_note,omitempty"`
	ClockInTime   string  `json:"clock_in_time"`
	ClockOutTime  string  `json:"clock_out_time"`
	ElapsedHours  float64 `json:"elapsed_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// ========================================
// AGGREGATE DTOs
// ========================================

type DailyRow struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Role          string  `json:"role"`
	TargetHours   float64 `json:"target_hours"`
	In            *int64  `json:"in"`
	Out           *int64  `json:"out"`
	InNote        string  `json:"in_note"`
	OutNote       string  `json:"out_note"`
	ElapsedHours  float64 `json:"elapsed_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type DashboardStats struct {
	Date            string `json:"date,omitempty"`
	TotalEmployees  int    `json:"total_employees"`
	PresentToday    int    `json:"present_today"`
	ClockedOutToday int    `json:"clocked_out_today"`
}

type DailyReport struct {
	Date  string         `json:"date"`
	Stats DashboardStats `json:"stats"`
	Rows  []DailyRow     `json:"rows"`
}

type RangeFilter struct {
	From string `json:"date_from"`
	To   string `json:"date_to"`
}

func (f *RangeFilter) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(f.From); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: "date_from must be in YYYY-MM-DD format",
		})
	}
	if _, ok := validator.IsValidDate(f.To); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date_to",
			Message: "date_to must be in YYYY-MM-DD format",
		})
	}
	if len(errs) == 0 && !validator.IsValidDayRange(f.From, f.To) {
		errs = append(errs, validator.ValidationError{
			Field:   "date_from",
			Message: ErrInvalidDateRange.Error(),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RangeRow is one (date, employee) pair that has a record.
type RangeRow struct {
	Date          string  `json:"date"`
	EmployeeID    string  `json:"employee_id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Role          string  `json:"role"`
	In            *int64  `json:"in"`
	Out           *int64  `json:"out"`
	InNote        string  `json:"in_note,omitempty"`
	OutNote       string  `json:"out_note,omitempty"`
	ElapsedHours  float64 `json:"elapsed_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type WeekDay struct {
	Date          string  `json:"date"`
	In            *int64  `json:"in"`
	Out           *int64  `json:"out"`
	InNote        string  `json:"in_note,omitempty"`
	OutNote       string  `json:"out_note,omitempty"`
	ElapsedHours  float64 `json:"elapsed_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type WeekReport struct {
	EmployeeID  string    `json:"employee_id"`
	WeekStart   string    `json:"week_start"`
	Days        []WeekDay `json:"days"`
	TotalHours  float64   `json:"total_hours"`
	TargetHours float64   `json:"target_hours"`
}
