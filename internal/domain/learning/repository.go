package learning

import "context"

type LogRepository interface {
	Create(ctx context.Context, log Log) (Log, error)
	GetByID(ctx context.Context, id string) (Log, error)
	List(ctx context.Context) ([]Log, error)
	Update(ctx context.Context, log Log) error
	Delete(ctx context.Context, id string) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
