package evaluation

import "context"

type EvaluationRepository interface {
	// GetByEmployeeID returns the bag of employeeID, empty when absent
	GetByEmployeeID(ctx context.Context, employeeID string) (Bag, error)
	Save(ctx context.Context, employeeID string, bag Bag) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
