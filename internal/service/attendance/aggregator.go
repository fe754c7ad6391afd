package attendance

import (
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
)

// Aggregator reduces the ledger into rows and counts. It never fails: an
// empty roster or ledger gives empty results.
type Aggregator struct {
	calendar worktime.Calendar
}

func NewAggregator(calendar worktime.Calendar) *Aggregator {
	return &Aggregator{calendar: calendar}
}

// DailyRows returns one row per employee in roster order.
func (a *Aggregator) DailyRows(employees []employee.Employee, day attendance.Day) []attendance.DailyRow {
	rows := make([]attendance.DailyRow, 0, len(employees))
	for _, e := range employees {
		rec := day[e.ID]
		target := e.DailyTarget()
		elapsed := worktime.ElapsedHours(rec.In, rec.Out)
		rows = append(rows, attendance.DailyRow{
			ID:            e.ID,
			Name:          e.Name,
			Role:          string(e.Role),
			TargetHours:   target,
			In:            rec.In,
			Out:           rec.Out,
			InNote:        rec.InNote,
			OutNote:       rec.OutNote,
			ElapsedHours:  elapsed,
			OvertimeHours: worktime.Overtime(elapsed, target, rec.Closed()),
		})
	}
	return rows
}

// DashboardStats counts the roster and how many of it clocked in and out.
func (a *Aggregator) DashboardStats(employees []employee.Employee, day attendance.Day) attendance.DashboardStats {
	stats := attendance.DashboardStats{TotalEmployees: len(employees)}
	for _, e := range employees {
		rec, ok := day[e.ID]
		if !ok {
			continue
		}
		if rec.HasIn() {
			stats.PresentToday++
		}
		if rec.HasOut() {
			stats.ClockedOutToday++
		}
	}
	return stats
}

// RangeRows flattens every record with fromKey <= day <= toKey, ascending by
// day and in roster order within a day. Records of unknown employees are skipped.
func (a *Aggregator) RangeRows(ledger attendance.Ledger, employees []employee.Employee, fromKey, toKey string) []attendance.RangeRow {
	rows := make([]attendance.RangeRow, 0)
	if len(employees) == 0 {
		return rows
	}

	for _, key := range ledger.KeysBetween(fromKey, toKey) {
		day := ledger[key]
		for _, e := range employees {
			rec, ok := day[e.ID]
			if !ok {
				continue
			}
			elapsed := worktime.ElapsedHours(rec.In, rec.Out)
			rows = append(rows, attendance.RangeRow{
				Date:          key,
				EmployeeID:    e.ID,
				Name:          e.Name,
				Email:         e.Email,
				Role:          string(e.Role),
				In:            rec.In,
				Out:           rec.Out,
				InNote:        rec.InNote,
				OutNote:       rec.OutNote,
				ElapsedHours:  elapsed,
				OvertimeHours: worktime.Overtime(elapsed, e.DailyTarget(), rec.Closed()),
			})
		}
	}
	return rows
}

// WeeklyHours sums the elapsed hours of the Monday-aligned week containing date.
func (a *Aggregator) WeeklyHours(ledger attendance.Ledger, employeeID string, date time.Time) float64 {
	total := 0.0
	for _, key := range a.calendar.WeekDays(date) {
		rec := ledger.Day(key)[employeeID]
		total += worktime.ElapsedHours(rec.In, rec.Out)
	}
	return total
}
