package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	attendanceService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/attendance"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	attendanceService attendance.AttendanceService
	attendanceRepo    attendance.AttendanceRepository
	employeeRepo      employee.EmployeeRepository
	timesheetRepo     timesheet.TimesheetRepository
	leaveRepo         leave.LeaveRequestRepository
	aggregator        *attendanceService.Aggregator
	calendar          worktime.Calendar
	now               func() time.Time
}

func NewDashboardService(
	attendanceSvc attendance.AttendanceService,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	timesheetRepo timesheet.TimesheetRepository,
	leaveRepo leave.LeaveRequestRepository,
	calendar worktime.Calendar,
	now func() time.Time,
) dashboard.DashboardService {
	if now == nil {
		now = time.Now
	}
	return &DashboardServiceImpl{
		attendanceService: attendanceSvc,
		attendanceRepo:    attendanceRepo,
		employeeRepo:      employeeRepo,
		timesheetRepo:     timesheetRepo,
		leaveRepo:         leaveRepo,
		aggregator:        attendanceService.NewAggregator(calendar),
		calendar:          calendar,
		now:               now,
	}
}

// GetDashboard returns combined dashboard data using parallel goroutines
func (s *DashboardServiceImpl) GetDashboard(ctx context.Context, caps user.Capabilities, date string) (dashboard.DashboardResponse, error) {
	ref := s.now()
	if date != "" {
		parsed, err := s.calendar.ParseDayKey(date)
		if err != nil {
			return dashboard.DashboardResponse{}, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
		}
		ref = parsed
	}
	dayKey := s.calendar.DayKey(ref)

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return dashboard.DashboardResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}
	scoped := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if caps.Allows(e.ID) {
			scoped = append(scoped, e)
		}
	}

	var (
		attendanceStats attendance.DashboardStats
		roster          dashboard.RosterSummaryResponse
		pending         dashboard.PendingSummaryResponse
		week            dashboard.WeekSummaryResponse
	)

	g, gCtx := errgroup.WithContext(ctx)

	// 1. Attendance counts for the day
	g.Go(func() error {
		daily, err := s.attendanceService.GetDaily(gCtx, caps, dayKey)
		if err != nil {
			return err
		}
		attendanceStats = daily.Stats
		return nil
	})

	// 2. Roster summary
	g.Go(func() error {
		roster = dashboard.RosterSummaryResponse{Total: len(scoped), ByRole: map[string]int{}}
		for _, e := range scoped {
			roster.ByRole[string(e.Role)]++
			if e.IsIntern() && e.InternStatusOrDefault() == employee.InternStatusActive {
				roster.ActiveInterns++
			}
		}
		return nil
	})

	// 3. Pending timesheets
	g.Go(func() error {
		approvals, err := s.timesheetRepo.GetAll(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list timesheets: %w", err)
		}
		for key, a := range approvals {
			if a.StatusOrDraft() != timesheet.StatusPending {
				continue
			}
			for _, e := range scoped {
				if isWeekOf(key, e.ID) {
					pending.Timesheets++
					break
				}
			}
		}
		return nil
	})

	// 4. Pending leave requests
	g.Go(func() error {
		requests, err := s.leaveRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("failed to list leave requests: %w", err)
		}
		for _, r := range requests {
			if r.IsPending() && caps.Allows(r.EmployeeID) {
				pending.Leaves++
			}
		}
		return nil
	})

	// 5. Weekly hours against target
	g.Go(func() error {
		ledger, err := s.attendanceRepo.GetLedger(gCtx)
		if err != nil {
			return fmt.Errorf("failed to get attendance ledger: %w", err)
		}
		week.WeekStart = s.calendar.DayKey(s.calendar.MondayOf(ref))
		for _, e := range scoped {
			hours := s.aggregator.WeeklyHours(ledger, e.ID, ref)
			target := e.WeeklyTarget()
			week.TotalHours += hours
			week.TargetHours += target
			if hours < target {
				week.BelowTarget++
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.DashboardResponse{}, err
	}

	return dashboard.DashboardResponse{
		Date:       dayKey,
		Attendance: attendanceStats,
		Roster:     roster,
		Pending:    pending,
		Week:       week,
	}, nil
}

// isWeekOf reports whether key is employeeID_<day-key>.
func isWeekOf(key, employeeID string) bool {
	prefix := employeeID + "_"
	return strings.HasPrefix(key, prefix) && len(key)-len(prefix) == len(worktime.DayKeyLayout)
}
