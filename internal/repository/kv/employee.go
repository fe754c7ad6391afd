package kv

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/google/uuid"
)

type employeeRepositoryImpl struct {
	store *Store
}

func NewEmployeeRepository(store *Store) employee.EmployeeRepository {
	return &employeeRepositoryImpl{store: store}
}

func (r *employeeRepositoryImpl) load(ctx context.Context) ([]employee.Employee, error) {
	return load(ctx, r.store, KeyEmployees, func() []employee.Employee { return []employee.Employee{} })
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	var employees []employee.Employee
	err := r.store.View(ctx, func(ctx context.Context) error {
		var err error
		employees, err = r.load(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	if employees == nil {
		employees = []employee.Employee{}
	}
	return employees, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	employees, err := r.List(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	for _, e := range employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string) (employee.Employee, error) {
	employees, err := r.List(ctx)
	if err != nil {
		return employee.Employee{}, err
	}
	for _, e := range employees {
		if employee.SameEmail(e.Email, email) {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	err := r.store.Update(ctx, func(ctx context.Context) error {
		employees, err := r.load(ctx)
		if err != nil {
			return err
		}
		if newEmployee.ID == "" {
			newEmployee.ID = uuid.New().String()
		}
		for _, e := range employees {
			if e.ID == newEmployee.ID {
				return fmt.Errorf("employee with id %s already exists", e.ID)
			}
		}
		return save(ctx, r.store, KeyEmployees, append(employees, newEmployee))
	})
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}
	return newEmployee, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		employees, err := r.load(ctx)
		if err != nil {
			return err
		}
		for i, e := range employees {
			if e.ID == updated.ID {
				employees[i] = updated
				return save(ctx, r.store, KeyEmployees, employees)
			}
		}
		return employee.ErrEmployeeNotFound
	})
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		employees, err := r.load(ctx)
		if err != nil {
			return err
		}
		kept := make([]employee.Employee, 0, len(employees))
		for _, e := range employees {
			if e.ID != id {
				kept = append(kept, e)
			}
		}
		if len(kept) == len(employees) {
			return employee.ErrEmployeeNotFound
		}
		return save(ctx, r.store, KeyEmployees, kept)
	})
}
