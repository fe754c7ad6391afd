package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/evaluation"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

type EmployeeServiceImpl struct {
	store          *kv.Store
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	timesheetRepo  timesheet.TimesheetRepository
	evaluationRepo evaluation.EvaluationRepository
	leaveRepo      leave.LeaveRequestRepository
	learningRepo   learning.LogRepository
	credentials    auth.CredentialStore
}

func NewEmployeeService(
	store *kv.Store,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	timesheetRepo timesheet.TimesheetRepository,
	evaluationRepo evaluation.EvaluationRepository,
	leaveRepo leave.LeaveRequestRepository,
	learningRepo learning.LogRepository,
	credentials auth.CredentialStore,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		store:          store,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		timesheetRepo:  timesheetRepo,
		evaluationRepo: evaluationRepo,
		leaveRepo:      leaveRepo,
		learningRepo:   learningRepo,
		credentials:    credentials,
	}
}

// ensureEmailFree must run inside a store transaction.
func (s *EmployeeServiceImpl) ensureEmailFree(ctx context.Context, email string, selfID string) error {
	existing, err := s.employeeRepo.GetByEmail(ctx, email)
	if errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if existing.ID != selfID {
		return employee.ErrEmailExists
	}
	return nil
}

func (s *EmployeeServiceImpl) create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	newEmployee := req.ToEmployee()
	hashed, err := s.credentials.HashPIN(newEmployee.PIN)
	if err != nil {
		return employee.Employee{}, err
	}
	newEmployee.PIN = hashed

	var created employee.Employee
	err = s.store.Update(ctx, func(ctx context.Context) error {
		if err := s.ensureEmailFree(ctx, newEmployee.Email, ""); err != nil {
			return err
		}
		created, err = s.employeeRepo.Create(ctx, newEmployee)
		return err
	})
	return created, err
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	matched := make([]employee.Employee, 0, len(employees))
	for _, e := range employees {
		if filter.Interns != nil && e.IsIntern() != *filter.Interns {
			continue
		}
		if filter.Search != nil && !matchesSearch(e, *filter.Search) {
			continue
		}
		matched = append(matched, e)
	}
	sortEmployees(matched, filter.SortBy, filter.SortOrder == "desc")

	total := len(matched)
	start := min((filter.Page-1)*filter.Limit, total)
	end := min(start+filter.Limit, total)

	responses := make([]employee.EmployeeResponse, 0, end-start)
	for _, e := range matched[start:end] {
		responses = append(responses, employee.NewEmployeeResponse(e))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))
	showing := fmt.Sprintf("%d-%d of %d", start+1, end, total)
	if total == 0 || start == end {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return employee.ListEmployeeResponse{
		TotalCount: int64(total),
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Showing:    showing,
		Employees:  responses,
	}, nil
}

func matchesSearch(e employee.Employee, query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, field := range []string{e.Name, e.Email, string(e.Role)} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortEmployees(employees []employee.Employee, sortBy string, desc bool) {
	key := func(e employee.Employee) string {
		switch sortBy {
		case "email":
			return strings.ToLower(e.Email)
		case "role":
			return string(e.Role)
		case "start_date":
			return e.StartDate
		default:
			return strings.ToLower(e.Name)
		}
	}
	sort.SliceStable(employees, func(i, j int) bool {
		if desc {
			return key(employees[i]) > key(employees[j])
		}
		return key(employees[i]) < key(employees[j])
	})
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.NewEmployeeResponse(e), nil
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	created, err := s.create(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee created", "employee_id", created.ID, "role", created.Role)
	return employee.NewEmployeeResponse(created), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if req.PIN != nil {
		hashed, err := s.credentials.HashPIN(*req.PIN)
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		req.PIN = &hashed
	}

	var updated employee.Employee
	err := s.store.Update(ctx, func(ctx context.Context) error {
		current, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if req.Email != nil {
			if err := s.ensureEmailFree(ctx, *req.Email, current.ID); err != nil {
				return err
			}
		}

		req.Apply(&current)
		if !current.IsIntern() {
			current.ClearInternFields()
		}
		if err := s.employeeRepo.Update(ctx, current); err != nil {
			return fmt.Errorf("failed to update employee: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Employee updated", "employee_id", updated.ID)
	return employee.NewEmployeeResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.Delete(ctx, id); err != nil {
			return err
		}
		if err := s.attendanceRepo.DeleteByEmployeeID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete attendance: %w", err)
		}
		if err := s.timesheetRepo.DeleteByEmployeeID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete timesheets: %w", err)
		}
		if err := s.evaluationRepo.DeleteByEmployeeID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete evaluations: %w", err)
		}
		if err := s.leaveRepo.DeleteByEmployeeID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete leave requests: %w", err)
		}
		if err := s.learningRepo.DeleteByEmployeeID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete learning logs: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.Info("Employee deleted", "employee_id", id)
	return nil
}

// ConvertIntern implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ConvertIntern(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	var converted employee.Employee
	err := s.store.Update(ctx, func(ctx context.Context) error {
		e, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if !e.IsIntern() {
			return employee.ErrNotAnIntern
		}
		e.ConvertToStaff()
		if err := s.employeeRepo.Update(ctx, e); err != nil {
			return fmt.Errorf("failed to convert intern: %w", err)
		}
		converted = e
		return nil
	})
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	slog.Info("Intern converted to staff", "employee_id", converted.ID)
	return employee.NewEmployeeResponse(converted), nil
}
