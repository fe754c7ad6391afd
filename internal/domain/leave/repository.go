package leave

import (
	"context"
)

// LeaveRequestRepository persists leave requests in creation order
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context) ([]LeaveRequest, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error
	DeleteByEmployeeID(ctx context.Context, employeeID string) error
}
