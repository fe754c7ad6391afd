package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	attendanceService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/attendance"
)

// Policy tunes the review workflow.
type Policy struct {
	// StrictReview only lets Pending weeks be approved or rejected
	StrictReview bool
	// RefreshOnResubmit restamps SubmittedAt when a Pending week is submitted again
	RefreshOnResubmit bool
}

func DefaultPolicy() Policy {
	return Policy{StrictReview: true}
}

type TimesheetServiceImpl struct {
	store *kv.Store
	timesheet.TimesheetRepository
	attendance.AttendanceRepository
	employee.EmployeeRepository
	notificationSvc notification.Service
	aggregator      *attendanceService.Aggregator
	calendar        worktime.Calendar
	policy          Policy
	now             func() time.Time
}

func NewTimesheetService(
	store *kv.Store,
	timesheetRepo timesheet.TimesheetRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	notificationSvc notification.Service,
	calendar worktime.Calendar,
	policy Policy,
	now func() time.Time,
) timesheet.TimesheetService {
	if now == nil {
		now = time.Now
	}
	return &TimesheetServiceImpl{
		store:                store,
		TimesheetRepository:  timesheetRepo,
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		notificationSvc:      notificationSvc,
		aggregator:           attendanceService.NewAggregator(calendar),
		calendar:             calendar,
		policy:               policy,
		now:                  now,
	}
}

func (s *TimesheetServiceImpl) monday(date string) (time.Time, error) {
	if date == "" {
		return s.calendar.MondayOf(s.now()), nil
	}
	ref, err := s.calendar.ParseDayKey(date)
	if err != nil {
		return time.Time{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return s.calendar.MondayOf(ref), nil
}

// build assembles the week view; it must run inside a store transaction.
func (s *TimesheetServiceImpl) build(ctx context.Context, emp employee.Employee, monday time.Time, approval timesheet.Approval) (timesheet.WeeklyTimesheet, error) {
	ledger, err := s.AttendanceRepository.GetLedger(ctx)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, fmt.Errorf("failed to get attendance ledger: %w", err)
	}
	mondayKey := s.calendar.DayKey(monday)
	return timesheet.WeeklyTimesheet{
		EmployeeID:   emp.ID,
		EmployeeName: emp.Name,
		WeekKey:      timesheet.WeekKey(emp.ID, mondayKey),
		WeekStart:    mondayKey,
		WeekEnd:      s.calendar.DayKey(monday.AddDate(0, 0, 6)),
		Status:       approval.StatusOrDraft(),
		SubmittedAt:  approval.SubmittedAt,
		ApprovedBy:   approval.ApprovedBy,
		ApprovedAt:   approval.ApprovedAt,
		TotalHours:   s.aggregator.WeeklyHours(ledger, emp.ID, monday),
		TargetHours:  emp.WeeklyTarget(),
	}, nil
}

// GetWeek implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) GetWeek(ctx context.Context, employeeID string, date string) (timesheet.WeeklyTimesheet, error) {
	monday, err := s.monday(date)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	var week timesheet.WeeklyTimesheet
	err = s.store.View(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, employeeID)
		if err != nil {
			return err
		}
		approval, err := s.TimesheetRepository.Get(ctx, timesheet.WeekKey(emp.ID, s.calendar.DayKey(monday)))
		if err != nil {
			return fmt.Errorf("failed to get timesheet: %w", err)
		}
		week, err = s.build(ctx, emp, monday, approval)
		return err
	})
	return week, err
}

// Submit implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Submit(ctx context.Context, req timesheet.SubmitRequest) (timesheet.WeeklyTimesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}
	monday, err := s.monday(req.WeekStart)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	var (
		week    timesheet.WeeklyTimesheet
		changed bool
	)
	err = s.store.Update(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		key := timesheet.WeekKey(emp.ID, s.calendar.DayKey(monday))
		approval, err := s.TimesheetRepository.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to get timesheet: %w", err)
		}

		switch approval.StatusOrDraft() {
		case timesheet.StatusApproved:
			return timesheet.ErrTimesheetAlreadyApproved
		case timesheet.StatusPending:
			changed = s.policy.RefreshOnResubmit
		default:
			changed = true
		}

		if changed {
			stamp := s.now().UnixMilli()
			approval = timesheet.Approval{Status: timesheet.StatusPending, SubmittedAt: &stamp}
			if err := s.TimesheetRepository.Save(ctx, key, approval); err != nil {
				return fmt.Errorf("failed to save timesheet: %w", err)
			}
		}

		week, err = s.build(ctx, emp, monday, approval)
		return err
	})
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	if changed {
		slog.Info("Timesheet submitted", "employee_id", week.EmployeeID, "week", week.WeekStart)
		s.notify(ctx, notification.TypeTimesheetSubmitted, week,
			"Timesheet diajukan",
			fmt.Sprintf("%s mengajukan timesheet minggu %s (%s jam)", week.EmployeeName, week.WeekStart, worktime.FormatHours(week.TotalHours)))
	}
	return week, nil
}

// Review implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Review(ctx context.Context, req timesheet.ReviewRequest, reviewer user.Session) (timesheet.WeeklyTimesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}
	monday, err := s.monday(req.WeekStart)
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	var week timesheet.WeeklyTimesheet
	err = s.store.Update(ctx, func(ctx context.Context) error {
		emp, err := s.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}
		key := timesheet.WeekKey(emp.ID, s.calendar.DayKey(monday))
		approval, err := s.TimesheetRepository.Get(ctx, key)
		if err != nil {
			return fmt.Errorf("failed to get timesheet: %w", err)
		}
		if s.policy.StrictReview && approval.StatusOrDraft() != timesheet.StatusPending {
			return timesheet.ErrTimesheetNotPending
		}

		stamp := s.now().UnixMilli()
		approval.Status = timesheet.StatusRejected
		if *req.Approve {
			approval.Status = timesheet.StatusApproved
		}
		approval.ApprovedBy = reviewer.ReviewerName()
		approval.ApprovedAt = &stamp
		if err := s.TimesheetRepository.Save(ctx, key, approval); err != nil {
			return fmt.Errorf("failed to save timesheet: %w", err)
		}

		week, err = s.build(ctx, emp, monday, approval)
		return err
	})
	if err != nil {
		return timesheet.WeeklyTimesheet{}, err
	}

	slog.Info("Timesheet reviewed", "employee_id", week.EmployeeID, "week", week.WeekStart, "status", week.Status, "reviewer", week.ApprovedBy)
	t, verb := notification.TypeTimesheetRejected, "ditolak"
	if week.Status == timesheet.StatusApproved {
		t, verb = notification.TypeTimesheetApproved, "disetujui"
	}
	s.notify(ctx, t, week, "Timesheet "+verb,
		fmt.Sprintf("Timesheet minggu %s %s oleh %s", week.WeekStart, verb, week.ApprovedBy))
	return week, nil
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, caps user.Capabilities, filter timesheet.TimesheetFilter) ([]timesheet.WeeklyTimesheet, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	weeks := make([]timesheet.WeeklyTimesheet, 0)
	err := s.store.View(ctx, func(ctx context.Context) error {
		approvals, err := s.TimesheetRepository.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		employees, err := s.EmployeeRepository.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list employees: %w", err)
		}
		byID := make(map[string]employee.Employee, len(employees))
		for _, e := range employees {
			byID[e.ID] = e
		}

		for key, approval := range approvals {
			employeeID, mondayKey, ok := timesheet.SplitWeekKey(key)
			if !ok {
				continue
			}
			emp, exists := byID[employeeID]
			if !exists || !caps.Allows(employeeID) {
				continue
			}
			if filter.EmployeeID != nil && *filter.EmployeeID != employeeID {
				continue
			}
			if filter.Status != nil && string(approval.StatusOrDraft()) != *filter.Status {
				continue
			}
			monday, err := s.calendar.ParseDayKey(mondayKey)
			if err != nil {
				continue
			}
			week, err := s.build(ctx, emp, monday, approval)
			if err != nil {
				return err
			}
			weeks = append(weeks, week)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Newest week first, then by employee name
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].WeekStart != weeks[j].WeekStart {
			return weeks[i].WeekStart > weeks[j].WeekStart
		}
		return weeks[i].EmployeeName < weeks[j].EmployeeName
	})
	return weeks, nil
}

func (s *TimesheetServiceImpl) notify(ctx context.Context, t notification.NotificationType, week timesheet.WeeklyTimesheet, title, message string) {
	if s.notificationSvc == nil {
		return
	}
	err := s.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		EmployeeID: week.EmployeeID,
		Type:       t,
		Title:      title,
		Message:    message,
		Data: map[string]interface{}{
			"week_key":    week.WeekKey,
			"week_start":  week.WeekStart,
			"status":      week.Status,
			"total_hours": week.TotalHours,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue timesheet notification", "employee_id", week.EmployeeID, "error", err)
	}
}
