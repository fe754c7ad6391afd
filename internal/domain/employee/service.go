package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for roster operations
type EmployeeService interface {
	// ListEmployees searches, sorts and paginates the roster
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)

	// CreateEmployee adds an employee or intern to the roster
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// UpdateEmployee patches an existing employee
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes an employee and every record keyed by its id
	DeleteEmployee(ctx context.Context, id string) error

	// ConvertIntern turns an intern into a Staff employee
	ConvertIntern(ctx context.Context, id string) (EmployeeResponse, error)

	// ImportXLSX bulk-creates employees from the first sheet of a workbook
	ImportXLSX(ctx context.Context, r io.Reader) (ImportResult, error)
}
