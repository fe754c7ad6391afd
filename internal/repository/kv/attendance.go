package kv

import (
	"context"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
)

type attendanceRepositoryImpl struct {
	store *Store
}

func NewAttendanceRepository(store *Store) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{store: store}
}

func (r *attendanceRepositoryImpl) load(ctx context.Context) (attendance.Ledger, error) {
	ledger, err := load(ctx, r.store, KeyAttendance, func() attendance.Ledger { return attendance.Ledger{} })
	if err != nil {
		return nil, err
	}
	if ledger == nil {
		ledger = attendance.Ledger{}
	}
	return ledger, nil
}

// GetLedger implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetLedger(ctx context.Context) (attendance.Ledger, error) {
	var ledger attendance.Ledger
	err := r.store.View(ctx, func(ctx context.Context) error {
		var err error
		ledger, err = r.load(ctx)
		return err
	})
	return ledger, err
}

// GetDay implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetDay(ctx context.Context, dayKey string) (attendance.Day, error) {
	ledger, err := r.GetLedger(ctx)
	if err != nil {
		return nil, err
	}
	return ledger.Day(dayKey), nil
}

// SaveRecord implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) SaveRecord(ctx context.Context, dayKey string, employeeID string, record attendance.Record) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		ledger, err := r.load(ctx)
		if err != nil {
			return err
		}
		day := ledger.Day(dayKey)
		day[employeeID] = record
		ledger[dayKey] = day
		return save(ctx, r.store, KeyAttendance, ledger)
	})
}

// DeleteByEmployeeID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		ledger, err := r.load(ctx)
		if err != nil {
			return err
		}
		if !ledger.RemoveEmployee(employeeID) {
			return nil
		}
		return save(ctx, r.store, KeyAttendance, ledger)
	})
}
