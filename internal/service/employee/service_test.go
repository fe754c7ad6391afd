package employee

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type testEnv struct {
	svc         employee.EmployeeService
	employees   employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	timesheets  timesheet.TimesheetRepository
	evaluations evaluation.EvaluationRepository
	leaves      leave.LeaveRequestRepository
	logs        learning.LogRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := kv.NewStore(memory.NewBackend())
	env := &testEnv{
		employees:   kv.NewEmployeeRepository(store),
		attendance:  kv.NewAttendanceRepository(store),
		timesheets:  kv.NewTimesheetRepository(store),
		evaluations: kv.NewEvaluationRepository(store),
		leaves:      kv.NewLeaveRequestRepository(store),
		logs:        kv.NewLogRepository(store),
	}
	credentials := kv.NewCredentialStore(env.employees, kv.NewSettingsRepository(store))
	env.svc = NewEmployeeService(store, env.employees, env.attendance, env.timesheets, env.evaluations, env.leaves, env.logs, credentials)
	return env
}

func hours(v float64) *float64 { return &v }

func TestCreateEmployee(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	resp, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:   "  Ayu Lestari ",
		Email:  "ayu@example.com",
		PIN:    "1111",
		School: "ignored for staff",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Ayu Lestari", resp.Name)
	assert.Equal(t, "Staff", resp.Role)
	assert.Equal(t, employee.DefaultTargetHours, resp.TargetHours)
	assert.Empty(t, resp.School)

	stored, err := env.employees.GetByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stored.PIN, "$2"), "pin must be hashed")
}

func TestCreateEmployee_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.CreateEmployee(context.Background(), employee.CreateEmployeeRequest{
		Name:        "A",
		Email:       "not-an-email",
		Role:        "CEO",
		PIN:         "12",
		TargetHours: hours(0),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	fields := verrs.ToMap()
	for _, f := range []string{"name", "email", "role", "pin", "target_hours"} {
		assert.Contains(t, fields, f)
	}

	list, err := env.employees.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateEmployee_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ayu", Email: "ayu@example.com", PIN: "1111"})
	require.NoError(t, err)

	_, err = env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ayu Dua", Email: "AYU@example.com", PIN: "2222"})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestUpdateEmployee(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	a, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ayu", Email: "ayu@example.com", PIN: "1111"})
	require.NoError(t, err)
	_, err = env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Budi", Email: "budi@example.com", PIN: "2222"})
	require.NoError(t, err)

	taken := "budi@example.com"
	_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: a.ID, Email: &taken})
	assert.ErrorIs(t, err, employee.ErrEmailExists)

	same := "AYU@example.com"
	name := "Ayu L"
	updated, err := env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: a.ID, Email: &same, Name: &name, TargetHours: hours(7)})
	require.NoError(t, err)
	assert.Equal(t, "Ayu L", updated.Name)
	assert.Equal(t, 7.0, updated.TargetHours)

	_, err = env.svc.UpdateEmployee(ctx, employee.UpdateEmployeeRequest{ID: "ghost", Name: &name})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestDeleteEmployee_Cascades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, seedEmployee(ctx, env, "e1"))
	require.NoError(t, seedEmployee(ctx, env, "e2"))

	require.NoError(t, env.svc.DeleteEmployee(ctx, "e1"))

	_, err := env.employees.GetByID(ctx, "e1")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	ledger, err := env.attendance.GetLedger(ctx)
	require.NoError(t, err)
	for day, records := range ledger {
		assert.NotContains(t, records, "e1", day)
		assert.Contains(t, records, "e2", day)
	}

	approvals, err := env.timesheets.GetAll(ctx)
	require.NoError(t, err)
	assert.NotContains(t, approvals, "e1_2024-01-15")
	assert.Contains(t, approvals, "e2_2024-01-15")

	bag, err := env.evaluations.GetByEmployeeID(ctx, "e1")
	require.NoError(t, err)
	assert.Empty(t, bag.Records)

	leaves, err := env.leaves.List(ctx)
	require.NoError(t, err)
	require.Len(t, leaves, 1)
	assert.Equal(t, "e2", leaves[0].EmployeeID)

	logs, err := env.logs.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "e2", logs[0].EmployeeID)

	assert.ErrorIs(t, env.svc.DeleteEmployee(ctx, "e1"), employee.ErrEmployeeNotFound)
}

func seedEmployee(ctx context.Context, env *testEnv, id string) error {
	if _, err := env.employees.Create(ctx, employee.Employee{ID: id, Name: id, Email: id + "@example.com", Role: employee.RoleIntern}); err != nil {
		return err
	}
	in := int64(1705280400000)
	for _, day := range []string{"2024-01-15", "2024-01-16"} {
		if err := env.attendance.SaveRecord(ctx, day, id, attendance.Record{In: &in}); err != nil {
			return err
		}
	}
	if err := env.timesheets.Save(ctx, timesheet.WeekKey(id, "2024-01-15"), timesheet.Approval{Status: timesheet.StatusPending}); err != nil {
		return err
	}
	if err := env.evaluations.Save(ctx, id, evaluation.Bag{Records: []evaluation.Evaluation{{Date: "2024-01-15", Discipline: 4, Skill: 4, Communication: 4}}}); err != nil {
		return err
	}
	if _, err := env.leaves.Create(ctx, leave.LeaveRequest{EmployeeID: id, Type: leave.LeaveTypeSick, DateFrom: "2024-01-17", DateTo: "2024-01-17", Status: leave.LeaveStatusPending}); err != nil {
		return err
	}
	_, err := env.logs.Create(ctx, learning.Log{EmployeeID: id, Date: "2024-01-15", Content: "Belajar Go"})
	return err
}

func TestConvertIntern(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	intern, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{
		Name:              "Citra",
		Email:             "citra@example.com",
		Role:              "Intern",
		PIN:               "4444",
		School:            "ITB",
		Mentor:            "Ayu",
		Tasks:             []string{"docs", " "},
		WeeklyTargetHours: hours(20),
	})
	require.NoError(t, err)
	assert.Equal(t, "Aktif", intern.Status)
	assert.Equal(t, []string{"docs"}, intern.Tasks)

	staff, err := env.svc.ConvertIntern(ctx, intern.ID)
	require.NoError(t, err)
	assert.Equal(t, "Staff", staff.Role)

	stored, err := env.employees.GetByID(ctx, intern.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.School)
	assert.Empty(t, stored.Mentor)
	assert.Nil(t, stored.Tasks)
	assert.Nil(t, stored.WeeklyTargetHours)

	_, err = env.svc.ConvertIntern(ctx, intern.ID)
	assert.ErrorIs(t, err, employee.ErrNotAnIntern)
}

func TestListEmployees(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	for _, req := range []employee.CreateEmployeeRequest{
		{Name: "Citra", Email: "citra@example.com", Role: "Intern", PIN: "4444"},
		{Name: "Ayu", Email: "ayu@example.com", Role: "Manager", PIN: "1111"},
		{Name: "Budi", Email: "budi@example.com", Role: "Staff", PIN: "3333"},
	} {
		_, err := env.svc.CreateEmployee(ctx, req)
		require.NoError(t, err)
	}

	page, err := env.svc.ListEmployees(ctx, employee.EmployeeFilter{Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, "1-2 of 3", page.Showing)
	require.Len(t, page.Employees, 2)
	assert.Equal(t, "Ayu", page.Employees[0].Name)
	assert.Equal(t, "Budi", page.Employees[1].Name)

	desc, err := env.svc.ListEmployees(ctx, employee.EmployeeFilter{SortBy: "email", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "citra@example.com", desc.Employees[0].Email)

	query := "intern"
	found, err := env.svc.ListEmployees(ctx, employee.EmployeeFilter{Search: &query})
	require.NoError(t, err)
	require.Len(t, found.Employees, 1)
	assert.Equal(t, "Citra", found.Employees[0].Name)

	interns := false
	staff, err := env.svc.ListEmployees(ctx, employee.EmployeeFilter{Interns: &interns})
	require.NoError(t, err)
	assert.Len(t, staff.Employees, 2)

	beyond, err := env.svc.ListEmployees(ctx, employee.EmployeeFilter{Page: 5})
	require.NoError(t, err)
	assert.Empty(t, beyond.Employees)
}

func TestImportXLSX(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.svc.CreateEmployee(ctx, employee.CreateEmployeeRequest{Name: "Ayu", Email: "ayu@example.com", PIN: "1111"})
	require.NoError(t, err)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Nama", "Email", "Jabatan", "Mulai", "Target Jam/Hari", "PIN"},
		{"Budi", "budi@example.com", "Staff", "2024-01-02", "7,5", "2222"},
		{"Ayu Lagi", "AYU@example.com", "Staff", "", "", "3333"},
		{},
		{"Dewi", "dewi@example.com", "Intern", "", "abc", "4444"},
		{"Eko", "eko@example.com", "", "", "", "55"},
	}
	for i, row := range rows {
		cellName, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellName, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	result, err := env.svc.ImportXLSX(ctx, bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	require.Len(t, result.Imported, 1)
	assert.Equal(t, "budi@example.com", result.Imported[0].Email)
	assert.Equal(t, 7.5, result.Imported[0].TargetHours)

	require.Len(t, result.Skipped, 3)
	assert.Equal(t, 3, result.Skipped[0].Row)
	assert.Equal(t, 5, result.Skipped[1].Row)
	assert.Equal(t, 6, result.Skipped[2].Row)
}

func TestImportXLSX_RejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.svc.ImportXLSX(context.Background(), strings.NewReader("not a workbook"))
	assert.ErrorIs(t, err, employee.ErrInvalidImportFile)
}
