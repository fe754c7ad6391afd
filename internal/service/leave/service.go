package leave

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/user"
)

type LeaveServiceImpl struct {
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	requestService  *RequestService
	notificationSvc notification.Service
}

func NewLeaveService(
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	requestService *RequestService,
	notificationSvc notification.Service,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		requestService:         requestService,
		notificationSvc:        notificationSvc,
	}
}

func (l *LeaveServiceImpl) employeeName(ctx context.Context, id string) string {
	emp, err := l.EmployeeRepository.GetByID(ctx, id)
	if err != nil {
		return ""
	}
	return emp.Name
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, requestID string) (leave.LeaveRequestResponse, error) {
	request, err := l.LeaveRequestRepository.GetByID(ctx, requestID)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}
	return leave.NewLeaveRequestResponse(request, l.employeeName(ctx, request.EmployeeID)), nil
}

// ListLeaveRequest implements leave.LeaveService. Newest first.
func (l *LeaveServiceImpl) ListLeaveRequest(ctx context.Context, caps user.Capabilities, filter leave.LeaveRequestFilter) ([]leave.LeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	requests, err := l.LeaveRequestRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	employees, err := l.EmployeeRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.Name
	}

	responses := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, r := range requests {
		if !caps.Allows(r.EmployeeID) {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		resp := leave.NewLeaveRequestResponse(r, names[r.EmployeeID])
		if filter.Status != nil && resp.Status != *filter.Status {
			continue
		}
		responses = append(responses, resp)
	}

	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].CreatedAt > responses[j].CreatedAt
	})
	return responses, nil
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	created, emp, err := l.requestService.CreateRequest(ctx, req)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request created", "leave_request_id", created.ID, "employee_id", emp.ID, "type", created.Type)
	l.notify(ctx, notification.TypeLeaveRequest, created, "Pengajuan izin baru",
		fmt.Sprintf("%s mengajukan %s %s s/d %s", emp.Name, created.Type, created.DateFrom, created.DateTo))

	return leave.NewLeaveRequestResponse(created, emp.Name), nil
}

// ApproveLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeaveRequest(ctx context.Context, requestID string, reviewer user.Session) (leave.LeaveRequestResponse, error) {
	request, err := l.requestService.Approve(ctx, requestID, reviewer.ReviewerName())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request approved", "leave_request_id", request.ID, "approved_by", request.DecidedBy)
	l.notify(ctx, notification.TypeLeaveApproved, request, "Izin disetujui",
		fmt.Sprintf("Pengajuan %s %s s/d %s disetujui oleh %s", request.Type, request.DateFrom, request.DateTo, request.DecidedBy))

	return leave.NewLeaveRequestResponse(request, l.employeeName(ctx, request.EmployeeID)), nil
}

// RejectLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeaveRequest(ctx context.Context, requestID string, reviewer user.Session) (leave.LeaveRequestResponse, error) {
	request, err := l.requestService.Reject(ctx, requestID, reviewer.ReviewerName())
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	slog.Info("Leave request rejected", "leave_request_id", request.ID, "rejected_by", request.DecidedBy)
	l.notify(ctx, notification.TypeLeaveRejected, request, "Izin ditolak",
		fmt.Sprintf("Pengajuan %s %s s/d %s ditolak oleh %s", request.Type, request.DateFrom, request.DateTo, request.DecidedBy))

	return leave.NewLeaveRequestResponse(request, l.employeeName(ctx, request.EmployeeID)), nil
}

// DeleteLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, requestID string) error {
	if err := l.LeaveRequestRepository.Delete(ctx, requestID); err != nil {
		if errors.Is(err, leave.ErrLeaveRequestNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete leave request: %w", err)
	}
	slog.Info("Leave request deleted", "leave_request_id", requestID)
	return nil
}

func (l *LeaveServiceImpl) notify(ctx context.Context, t notification.NotificationType, request leave.LeaveRequest, title, message string) {
	if l.notificationSvc == nil {
		return
	}
	err := l.notificationSvc.QueueNotification(ctx, notification.CreateNotificationRequest{
		EmployeeID: request.EmployeeID,
		Type:       t,
		Title:      title,
		Message:    message,
		Data: map[string]interface{}{
			"leave_request_id": request.ID,
			"type":             request.Type,
			"date_from":        request.DateFrom,
			"date_to":          request.DateTo,
			"status":           request.Status,
		},
	})
	if err != nil {
		slog.Warn("Failed to queue leave notification", "leave_request_id", request.ID, "error", err)
	}
}
