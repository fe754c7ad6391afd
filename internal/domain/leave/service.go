package leave

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)
	ApproveLeaveRequest(ctx context.Context, requestID string, reviewer user.Session) (LeaveRequestResponse, error)
	RejectLeaveRequest(ctx context.Context, requestID string, reviewer user.Session) (LeaveRequestResponse, error)
	ListLeaveRequest(ctx context.Context, caps user.Capabilities, filter LeaveRequestFilter) ([]LeaveRequestResponse, error)
	GetLeaveRequest(ctx context.Context, requestID string) (LeaveRequestResponse, error)
	DeleteLeaveRequest(ctx context.Context, requestID string) error
}
