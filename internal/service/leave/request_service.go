package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
)

// RequestService owns the state changes of a leave request.
type RequestService struct {
	store *kv.Store
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	now func() time.Time
}

func NewRequestService(store *kv.Store, leaveRequestRepository leave.LeaveRequestRepository, employeeRepository employee.EmployeeRepository, now func() time.Time) *RequestService {
	if now == nil {
		now = time.Now
	}
	return &RequestService{
		store:                  store,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		now:                    now,
	}
}

func (r *RequestService) CreateRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, employee.Employee, error) {
	var (
		created leave.LeaveRequest
		emp     employee.Employee
	)
	err := r.store.Update(ctx, func(ctx context.Context) error {
		var err error
		emp, err = r.EmployeeRepository.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		created, err = r.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
			EmployeeID: emp.ID,
			Type:       leave.LeaveType(req.Type),
			DateFrom:   req.DateFrom,
			DateTo:     req.DateTo,
			Reason:     req.Reason,
			Status:     leave.LeaveStatusPending,
			CreatedAt:  r.now().UnixMilli(),
		})
		return err
	})
	return created, emp, err
}

// Approve marks a pending request approved by approvedBy.
func (r *RequestService) Approve(ctx context.Context, requestID string, approvedBy string) (leave.LeaveRequest, error) {
	return r.decide(ctx, requestID, leave.LeaveStatusApproved, approvedBy)
}

// Reject marks a pending request rejected by rejectedBy.
func (r *RequestService) Reject(ctx context.Context, requestID string, rejectedBy string) (leave.LeaveRequest, error) {
	return r.decide(ctx, requestID, leave.LeaveStatusRejected, rejectedBy)
}

func (r *RequestService) decide(ctx context.Context, requestID string, status leave.LeaveStatus, decidedBy string) (leave.LeaveRequest, error) {
	var request leave.LeaveRequest
	err := r.store.Update(ctx, func(ctx context.Context) error {
		var err error
		request, err = r.LeaveRequestRepository.GetByID(ctx, requestID)
		if err != nil {
			return err
		}
		if !request.IsPending() {
			return leave.ErrLeaveRequestAlreadyProcessed
		}

		decidedAt := r.now().UnixMilli()
		request.Status = status
		request.DecidedBy = decidedBy
		request.DecidedAt = &decidedAt
		if err := r.LeaveRequestRepository.Update(ctx, request); err != nil {
			return fmt.Errorf("failed to update leave request: %w", err)
		}
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return request, nil
}
