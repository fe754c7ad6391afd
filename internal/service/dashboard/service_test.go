package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	attendanceService "github.com/cmlabs-hris/hrkecil-backend-go/internal/service/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

func newTestService(t *testing.T) dashboard.DashboardService {
	t.Helper()
	ctx := context.Background()
	store := kv.NewStore(memory.NewBackend())
	employees := kv.NewEmployeeRepository(store)
	ledger := kv.NewAttendanceRepository(store)
	timesheets := kv.NewTimesheetRepository(store)
	leaves := kv.NewLeaveRequestRepository(store)
	calendar := worktime.NewCalendar(wib)
	now := func() time.Time { return time.Date(2024, 1, 17, 12, 0, 0, 0, wib) }

	for _, e := range []employee.Employee{
		{ID: "m1", Name: "Budi", Role: employee.RoleManager, TargetHours: 8},
		{ID: "s1", Name: "Citra", Role: employee.RoleStaff, TargetHours: 8},
		{ID: "i1", Name: "Dewi", Role: employee.RoleIntern, TargetHours: 4},
		{ID: "i2", Name: "Eko", Role: employee.RoleIntern, Status: employee.InternStatusCompleted},
	} {
		_, err := employees.Create(ctx, e)
		require.NoError(t, err)
	}

	in := time.Date(2024, 1, 17, 8, 0, 0, 0, wib).UnixMilli()
	out := time.Date(2024, 1, 17, 16, 0, 0, 0, wib).UnixMilli()
	require.NoError(t, ledger.SaveRecord(ctx, "2024-01-17", "s1", attendance.Record{In: &in, Out: &out}))
	require.NoError(t, ledger.SaveRecord(ctx, "2024-01-17", "i1", attendance.Record{In: &in}))

	require.NoError(t, timesheets.Save(ctx, "s1_2024-01-08", timesheet.Approval{Status: timesheet.StatusPending}))
	require.NoError(t, timesheets.Save(ctx, "i1_2024-01-08", timesheet.Approval{Status: timesheet.StatusApproved}))
	_, err := leaves.Create(ctx, leave.LeaveRequest{EmployeeID: "i1", Status: leave.LeaveStatusPending})
	require.NoError(t, err)
	_, err = leaves.Create(ctx, leave.LeaveRequest{EmployeeID: "s1", Status: leave.LeaveStatusRejected})
	require.NoError(t, err)

	attendanceSvc := attendanceService.NewAttendanceService(store, ledger, employees, nil, calendar, now)
	return NewDashboardService(attendanceSvc, ledger, employees, timesheets, leaves, calendar, now)
}

func TestGetDashboard_Elevated(t *testing.T) {
	svc := newTestService(t)

	resp, err := svc.GetDashboard(context.Background(), user.Resolve(user.AdminSession()), "")
	require.NoError(t, err)

	assert.Equal(t, "2024-01-17", resp.Date)
	assert.Equal(t, attendance.DashboardStats{Date: "2024-01-17", TotalEmployees: 4, PresentToday: 2, ClockedOutToday: 1}, resp.Attendance)
	assert.Equal(t, 4, resp.Roster.Total)
	assert.Equal(t, 2, resp.Roster.ByRole["Intern"])
	assert.Equal(t, 1, resp.Roster.ActiveInterns)
	assert.Equal(t, dashboard.PendingSummaryResponse{Timesheets: 1, Leaves: 1}, resp.Pending)
	assert.Equal(t, "2024-01-15", resp.Week.WeekStart)
	assert.InDelta(t, 8.0, resp.Week.TotalHours, 1e-9)
	assert.Equal(t, 4, resp.Week.BelowTarget)
}

func TestGetDashboard_SelfOnly(t *testing.T) {
	svc := newTestService(t)
	caps := user.Resolve(user.EmployeeSession(employee.Employee{ID: "i1", Role: employee.RoleIntern}))

	resp, err := svc.GetDashboard(context.Background(), caps, "2024-01-17")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Attendance.TotalEmployees)
	assert.Equal(t, 1, resp.Roster.Total)
	assert.Equal(t, 0, resp.Pending.Timesheets)
	assert.Equal(t, 1, resp.Pending.Leaves)
	assert.Equal(t, 20.0, resp.Week.TargetHours)
}

func TestGetDashboard_InvalidDate(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.GetDashboard(context.Background(), user.Unrestricted(), "17/01/2024")
	assert.Error(t, err)
}
