package kv

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/timesheet"
)

type timesheetRepositoryImpl struct {
	store *Store
}

func NewTimesheetRepository(store *Store) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{store: store}
}

func (r *timesheetRepositoryImpl) load(ctx context.Context) (timesheet.Approvals, error) {
	approvals, err := load(ctx, r.store, KeyTimesheets, func() timesheet.Approvals { return timesheet.Approvals{} })
	if err != nil {
		return nil, err
	}
	if approvals == nil {
		approvals = timesheet.Approvals{}
	}
	return approvals, nil
}

// Get implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Get(ctx context.Context, weekKey string) (timesheet.Approval, error) {
	approvals, err := r.GetAll(ctx)
	if err != nil {
		return timesheet.Approval{}, err
	}
	if a, ok := approvals[weekKey]; ok {
		a.Status = a.StatusOrDraft()
		return a, nil
	}
	return timesheet.Draft(), nil
}

// GetAll implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetAll(ctx context.Context) (timesheet.Approvals, error) {
	var approvals timesheet.Approvals
	err := r.store.View(ctx, func(ctx context.Context) error {
		var err error
		approvals, err = r.load(ctx)
		return err
	})
	return approvals, err
}

// Save implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Save(ctx context.Context, weekKey string, approval timesheet.Approval) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		approvals, err := r.load(ctx)
		if err != nil {
			return err
		}
		approvals[weekKey] = approval
		return save(ctx, r.store, KeyTimesheets, approvals)
	})
}

// DeleteByEmployeeID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		approvals, err := r.load(ctx)
		if err != nil {
			return err
		}
		removed := false
		for key := range approvals {
			if id, _, ok := timesheet.SplitWeekKey(key); ok && id == employeeID {
				delete(approvals, key)
				removed = true
			}
		}
		if !removed {
			return nil
		}
		return save(ctx, r.store, KeyTimesheets, approvals)
	})
}
