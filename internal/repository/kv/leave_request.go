package kv

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

type leaveRequestRepositoryImpl struct {
	store *Store
}

func NewLeaveRequestRepository(store *Store) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{store: store}
}

func (r *leaveRequestRepositoryImpl) load(ctx context.Context) ([]leave.LeaveRequest, error) {
	return load(ctx, r.store, KeyLeaves, func() []leave.LeaveRequest { return []leave.LeaveRequest{} })
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	err := r.store.Update(ctx, func(ctx context.Context) error {
		requests, err := r.load(ctx)
		if err != nil {
			return err
		}
		if request.ID == "" {
			request.ID = uuid.New().String()
		}
		return save(ctx, r.store, KeyLeaves, append(requests, request))
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	return request, nil
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	requests, err := r.List(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	for _, req := range requests {
		if req.ID == id {
			return req, nil
		}
	}
	return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context) ([]leave.LeaveRequest, error) {
	var requests []leave.LeaveRequest
	err := r.store.View(ctx, func(ctx context.Context) error {
		var err error
		requests, err = r.load(ctx)
		return err
	})
	if requests == nil {
		requests = []leave.LeaveRequest{}
	}
	return requests, err
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		requests, err := r.load(ctx)
		if err != nil {
			return err
		}
		for i, existing := range requests {
			if existing.ID == request.ID {
				requests[i] = request
				return save(ctx, r.store, KeyLeaves, requests)
			}
		}
		return leave.ErrLeaveRequestNotFound
	})
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		requests, err := r.load(ctx)
		if err != nil {
			return err
		}
		kept := make([]leave.LeaveRequest, 0, len(requests))
		for _, req := range requests {
			if req.ID != id {
				kept = append(kept, req)
			}
		}
		if len(kept) == len(requests) {
			return leave.ErrLeaveRequestNotFound
		}
		return save(ctx, r.store, KeyLeaves, kept)
	})
}

// DeleteByEmployeeID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		requests, err := r.load(ctx)
		if err != nil {
			return err
		}
		kept := make([]leave.LeaveRequest, 0, len(requests))
		for _, req := range requests {
			if req.EmployeeID != employeeID {
				kept = append(kept, req)
			}
		}
		if len(kept) == len(requests) {
			return nil
		}
		return save(ctx, r.store, KeyLeaves, kept)
	})
}
