package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/worktime"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*3600)

type testEnv struct {
	svc       attendance.AttendanceService
	ledger    attendance.AttendanceRepository
	employees employee.EmployeeRepository
	now       time.Time
}

func newTestEnv(t *testing.T, roster ...employee.Employee) *testEnv {
	t.Helper()
	store := kv.NewStore(memory.NewBackend())
	env := &testEnv{
		ledger:    kv.NewAttendanceRepository(store),
		employees: kv.NewEmployeeRepository(store),
		now:       time.Date(2024, 1, 15, 8, 0, 0, 0, wib),
	}
	for _, e := range roster {
		_, err := env.employees.Create(context.Background(), e)
		require.NoError(t, err)
	}
	env.svc = NewAttendanceService(store, env.ledger, env.employees, nil, worktime.NewCalendar(wib), func() time.Time { return env.now })
	return env
}

func TestClockIn_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, employee.Employee{ID: "e1", Name: "Ayu", TargetHours: 8})

	first, err := env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "e1", Note: "WFO"})
	require.NoError(t, err)
	assert.True(t, first.Recorded)
	assert.Equal(t, "2024-01-15", first.Date)
	assert.Equal(t, "08:00", first.Record.ClockInTime)

	env.now = env.now.Add(30 * time.Minute)
	second, err := env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "e1", Note: "again"})
	require.NoError(t, err)
	assert.False(t, second.Recorded)
	assert.Equal(t, *first.Record.In, *second.Record.In)

	day, err := env.ledger.GetDay(ctx, "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, env.now.Add(-30*time.Minute).UnixMilli(), *day["e1"].In)
	assert.Equal(t, "WFO", day["e1"].InNote)
}

func TestClockOut_RequiresOpenDay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, employee.Employee{ID: "e1", Name: "Ayu", TargetHours: 8})

	res, err := env.svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.False(t, res.Recorded)

	ledger, err := env.ledger.GetLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger.Day("2024-01-15"), "clock-out without clock-in must not create a record")

	_, err = env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "e1"})
	require.NoError(t, err)

	env.now = env.now.Add(8*time.Hour + 30*time.Minute)
	res, err = env.svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "e1", Note: "done"})
	require.NoError(t, err)
	assert.True(t, res.Recorded)
	assert.InDelta(t, 8.5, res.Record.ElapsedHours, 1e-9)
	assert.InDelta(t, 0.5, res.Record.OvertimeHours, 1e-9)
	assert.Equal(t, "16:30", res.Record.ClockOutTime)

	env.now = env.now.Add(time.Hour)
	again, err := env.svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "e1"})
	require.NoError(t, err)
	assert.False(t, again.Recorded)
	assert.Equal(t, *res.Record.Out, *again.Record.Out)
	assert.GreaterOrEqual(t, *again.Record.Out, *again.Record.In)
}

func TestClock_UnknownEmployee(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "ghost"})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	ledger, err := env.ledger.GetLedger(context.Background())
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestClock_ValidatesRequest(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ClockIn(context.Background(), attendance.ClockRequest{EmployeeID: "", Date: "15-01-2024"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 2)
}

func TestGetDaily_ScopesToSelf(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t,
		employee.Employee{ID: "m1", Name: "Budi", Role: employee.RoleManager, TargetHours: 8},
		employee.Employee{ID: "s1", Name: "Citra", Role: employee.RoleStaff, TargetHours: 8},
	)
	_, err := env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "s1"})
	require.NoError(t, err)

	all, err := env.svc.GetDaily(ctx, user.Resolve(user.AdminSession()), "2024-01-15")
	require.NoError(t, err)
	require.Len(t, all.Rows, 2)
	assert.Equal(t, "m1", all.Rows[0].ID)
	assert.Nil(t, all.Rows[0].In)
	assert.Equal(t, 2, all.Stats.TotalEmployees)
	assert.Equal(t, 1, all.Stats.PresentToday)

	staff := user.Resolve(user.EmployeeSession(employee.Employee{ID: "s1", Role: employee.RoleStaff}))
	own, err := env.svc.GetDaily(ctx, staff, "2024-01-15")
	require.NoError(t, err)
	require.Len(t, own.Rows, 1)
	assert.Equal(t, "s1", own.Rows[0].ID)
	assert.Equal(t, 1, own.Stats.TotalEmployees)

	public, err := env.svc.GetDaily(ctx, user.Resolve(user.PublicSession()), "2024-01-15")
	require.NoError(t, err)
	assert.Empty(t, public.Rows)
}

func TestGetStats_UsesWholeRoster(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t,
		employee.Employee{ID: "a", Name: "A"},
		employee.Employee{ID: "b", Name: "B"},
		employee.Employee{ID: "c", Name: "C"},
	)
	_, _ = env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "a"})
	_, _ = env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "b"})
	env.now = env.now.Add(time.Hour)
	_, _ = env.svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "b"})

	stats, err := env.svc.GetStats(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, attendance.DashboardStats{Date: "2024-01-15", TotalEmployees: 3, PresentToday: 2, ClockedOutToday: 1}, stats)
}

func TestGetRange_ValidatesOrder(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.GetRange(context.Background(), user.Unrestricted(), attendance.RangeFilter{From: "2024-01-20", To: "2024-01-10"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestGetWeek_RollsUpMondayAlignedWeek(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, employee.Employee{ID: "e1", Name: "Ayu", TargetHours: 8})

	// Monday to Wednesday, 8 hours each
	for d := 0; d < 3; d++ {
		env.now = time.Date(2024, 1, 15+d, 8, 0, 0, 0, wib)
		_, err := env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "e1"})
		require.NoError(t, err)
		env.now = env.now.Add(8 * time.Hour)
		_, err = env.svc.ClockOut(ctx, attendance.ClockRequest{EmployeeID: "e1"})
		require.NoError(t, err)
	}

	week, err := env.svc.GetWeek(ctx, "e1", "2024-01-18")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", week.WeekStart)
	assert.Len(t, week.Days, 7)
	assert.InDelta(t, 24.0, week.TotalHours, 1e-9)
	assert.Equal(t, 40.0, week.TargetHours)
	assert.Equal(t, "2024-01-21", week.Days[6].Date)
}

func TestGetDaily_ConcurrentWithClockIn(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t,
		employee.Employee{ID: "e1", Name: "Ayu", TargetHours: 8},
		employee.Employee{ID: "e2", Name: "Budi", TargetHours: 8},
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				for n := 0; n < 50; n++ {
					_, err := env.svc.GetDaily(ctx, user.Unrestricted(), "2024-01-15")
					assert.NoError(t, err)
				}
			}()
			go func() {
				defer wg.Done()
				for n := 0; n < 50; n++ {
					_, err := env.svc.ClockIn(ctx, attendance.ClockRequest{EmployeeID: "e1"})
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()
	}()

	select {
	case <-done:
	case <-time.After(20 * time.Second):
		t.Fatal("daily reads and clock-ins did not finish")
	}

	report, err := env.svc.GetDaily(ctx, user.Unrestricted(), "2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Stats.PresentToday)
}
