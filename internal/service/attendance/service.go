package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

type AttendanceServiceImpl struct {
	store *kv.Store
	attendance.AttendanceRepository
	employee.EmployeeRepository
	notificationSvc notification.Service
	aggregator      *Aggregator
	calendar        worktime.Calendar
	now             func() time.Time
}

func NewAttendanceService(
	store *kv.Store,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	notificationSvc notification.Service,
	calendar worktime.Calendar,
	now func() time.Time,
) attendance.AttendanceService {
	if now == nil {
		now = time.Now
	}
	return &AttendanceServiceImpl{
		store:                store,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		notificationSvc:      notificationSvc,
		aggregator:           NewAggregator(calendar),
		calendar:             calendar,
		now:                  now,
	}
}

func (a *AttendanceServiceImpl) dayKey(date string, now time.Time) string {
	if date == "" {
		return a.calendar.DayKey(now)
	}
	return date
}

func (a *AttendanceServiceImpl) recordResponse(rec attendance.Record, target float64) attendance.RecordResponse {
	elapsed := worktime.ElapsedHours(rec.In, rec.Out)
	return attendance.RecordResponse{
		In:            rec.In,
		Out:           rec.Out,
		InNote:        rec.InNote,
		OutNote:       rec.OutNote,
		ClockInTime:   a.calendar.ClockTime(rec.In),
		ClockOutTime:  a.calendar.ClockTime(rec.Out),
		ElapsedHours:  elapsed,
		OvertimeHours: worktime.Overtime(elapsed, target, rec.Closed()),
	}
}

// clock runs one clock event atomically. mutate reports whether it changed the record.
func (a *AttendanceServiceImpl) clock(
	ctx context.Context,
	req attendance.ClockRequest,
	mutate func(rec *attendance.Record, stamp int64, note string) bool,
) (attendance.ClockResult, employee.Employee, error) {
	if err := req.Validate(); err != nil {
		return attendance.ClockResult{}, employee.Employee{}, err
	}

	now := a.now()
	dayKey := a.dayKey(req.Date, now)

	var (
		result attendance.ClockResult
		emp    employee.Employee
	)
	err := a.store.Update(ctx, func(ctx context.Context) error {
		var err error
		emp, err = a.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		day, err := a.AttendanceRepository.GetDay(ctx, dayKey)
		if err != nil {
			return fmt.Errorf("failed to get attendance day: %w", err)
		}

		rec := day[req.EmployeeID]
		recorded := mutate(&rec, now.UnixMilli(), req.Note)
		if recorded {
			if err := a.AttendanceRepository.SaveRecord(ctx, dayKey, req.EmployeeID, rec); err != nil {
				return fmt.Errorf("failed to save attendance record: %w", err)
			}
		}

		result = attendance.ClockResult{
			EmployeeID: req.EmployeeID,
			Date:       dayKey,
			Recorded:   recorded,
			Record:     a.recordResponse(rec, emp.DailyTarget()),
		}
		return nil
	})
	if err != nil {
		return attendance.ClockResult{}, employee.Employee{}, err
	}
	return result, emp, nil
}

// ClockIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockIn(ctx context.Context, req attendance.ClockRequest) (attendance.ClockResult, error) {
	result, emp, err := a.clock(ctx, req, func(rec *attendance.Record, stamp int64, note string) bool {
		if rec.HasIn() {
			return false
		}
		rec.In = &stamp
		if note != "" {
			rec.InNote = note
		}
		return true
	})
	if err != nil {
		return attendance.ClockResult{}, err
	}

	if result.Recorded {
		slog.Info("Employee clocked in", "employee_id", emp.ID, "date", result.Date)
		a.notify(ctx, notification.TypeAttendanceClockIn, emp, result,
			fmt.Sprintf("%s clock in pukul %s", emp.Name, result.Record.ClockInTime))
	}
	return result, nil
}

// ClockOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ClockOut(ctx context.Context, req attendance.ClockRequest) (attendance.ClockResult, error) {
	result, emp, err := a.clock(ctx, req, func(rec *attendance.Record, stamp int64, note string) bool {
		if !rec.HasIn() || rec.HasOut() {
			return false
		}
		rec.Out = &stamp
		if note != "" {
			rec.OutNote = note
		}
		return true
	})
	if err != nil {
		return attendance.ClockResult{}, err
	}

	if result.Recorded {
		slog.Info("Employee clocked out", "employee_id", emp.ID, "date", result.Date)
		a.notify(ctx, notification.TypeAttendanceClockOut, emp, result,
			fmt.Sprintf("%s clock out pukul %s (%s jam)", emp.Name, result.Record.ClockOutTime, worktime.FormatHours(result.Record.ElapsedHours)))
	}
	return result, nil
}

func (a *AttendanceServiceImpl) notify(ctx context.Context, t notification.NotificationType, emp employee.Employee, result attendance.ClockResult, message string) {
	if a.notificationSvc == nil {
		return
	}
	title := "Clock in"
	if t == notification.TypeAttendanceClockOut {
		title = "Clock out"
	}
	err := a.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		EmployeeID: emp.ID,
		Type:       t,
		Title:      title,
		Message:    message,
		Data: map[string]interface{}{
			"date":   result.Date,
			"record": result.Record,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue clock notification", "employee_id", emp.ID, "error", err)
	}
}

func (a *AttendanceServiceImpl) scopedEmployees(ctx context.Context, caps user.Capabilities) ([]employee.Employee, error) {
	employees, err := a.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if !caps.SelfOnly {
		return employees, nil
	}
	scoped := make([]employee.Employee, 0, 1)
	for _, e := range employees {
		if caps.Allows(e.ID) {
			scoped = append(scoped, e)
		}
	}
	return scoped, nil
}

func validateDate(date string) error {
	if date == "" {
		return nil
	}
	if _, ok := validator.IsValidDate(date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

// GetDaily implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetDaily(ctx context.Context, caps user.Capabilities, date string) (attendance.DailyReport, error) {
	if err := validateDate(date); err != nil {
		return attendance.DailyReport{}, err
	}
	dayKey := a.dayKey(date, a.now())

	var report attendance.DailyReport
	err := a.store.View(ctx, func(ctx context.Context) error {
		employees, err := a.scopedEmployees(ctx, caps)
		if err != nil {
			return err
		}
		day, err := a.AttendanceRepository.GetDay(ctx, dayKey)
		if err != nil {
			return fmt.Errorf("failed to get attendance day: %w", err)
		}

		stats := a.aggregator.DashboardStats(employees, day)
		stats.Date = dayKey
		report = attendance.DailyReport{
			Date:  dayKey,
			Stats: stats,
			Rows:  a.aggregator.DailyRows(employees, day),
		}
		return nil
	})
	return report, err
}

// GetStats implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetStats(ctx context.Context, date string) (attendance.DashboardStats, error) {
	if err := validateDate(date); err != nil {
		return attendance.DashboardStats{}, err
	}
	dayKey := a.dayKey(date, a.now())

	var stats attendance.DashboardStats
	err := a.store.View(ctx, func(ctx context.Context) error {
		employees, err := a.EmployeeRepository.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		day, err := a.AttendanceRepository.GetDay(ctx, dayKey)
		if err != nil {
			return fmt.Errorf("failed to get attendance day: %w", err)
		}
		stats = a.aggregator.DashboardStats(employees, day)
		stats.Date = dayKey
		return nil
	})
	return stats, err
}

// GetRange implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetRange(ctx context.Context, caps user.Capabilities, filter attendance.RangeFilter) ([]attendance.RangeRow, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	var rows []attendance.RangeRow
	err := a.store.View(ctx, func(ctx context.Context) error {
		employees, err := a.scopedEmployees(ctx, caps)
		if err != nil {
			return err
		}
		ledger, err := a.AttendanceRepository.GetLedger(ctx)
		if err != nil {
			return fmt.Errorf("failed to get attendance ledger: %w", err)
		}
		rows = a.aggregator.RangeRows(ledger, employees, filter.From, filter.To)
		return nil
	})
	return rows, err
}

// GetWeek implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetWeek(ctx context.Context, employeeID string, date string) (attendance.WeekReport, error) {
	if err := validateDate(date); err != nil {
		return attendance.WeekReport{}, err
	}
	ref, err := a.calendar.ParseDayKey(a.dayKey(date, a.now()))
	if err != nil {
		return attendance.WeekReport{}, err
	}

	var report attendance.WeekReport
	err = a.store.View(ctx, func(ctx context.Context) error {
		emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		ledger, err := a.AttendanceRepository.GetLedger(ctx)
		if err != nil {
			return fmt.Errorf("failed to get attendance ledger: %w", err)
		}

		keys := a.calendar.WeekDays(ref)
		days := make([]attendance.WeekDay, 0, len(keys))
		for _, key := range keys {
			rec := ledger.Day(key)[emp.ID]
			elapsed := worktime.ElapsedHours(rec.In, rec.Out)
			days = append(days, attendance.WeekDay{
				Date:          key,
				In:            rec.In,
				Out:           rec.Out,
				InNote:        rec.InNote,
				OutNote:       rec.OutNote,
				ElapsedHours:  elapsed,
				OvertimeHours: worktime.Overtime(elapsed, emp.DailyTarget(), rec.Closed()),
			})
		}

		report = attendance.WeekReport{
			EmployeeID:  emp.ID,
			WeekStart:   keys[0],
			Days:        days,
			TotalHours:  a.aggregator.WeeklyHours(ledger, emp.ID, ref),
			TargetHours: emp.WeeklyTarget(),
		}
		return nil
	})
	return report, err
}
