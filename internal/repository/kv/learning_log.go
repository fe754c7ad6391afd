package kv

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/learning"
	"github.com/google/uuid"
)

type logRepositoryImpl struct {
	store *Store
}

func NewLogRepository(store *Store) learning.LogRepository {
	return &logRepositoryImpl{store: store}
}

func (r *logRepositoryImpl) load(ctx context.Context) ([]learning.Log, error) {
	return load(ctx, r.store, KeyLearningLogs, func() []learning.Log { return []learning.Log{} })
}

// Create implements learning.LogRepository.
func (r *logRepositoryImpl) Create(ctx context.Context, entry learning.Log) (learning.Log, error) {
	err := r.store.Update(ctx, func(ctx context.Context) error {
		logs, err := r.load(ctx)
		if err != nil {
			return err
		}
		if entry.ID == "" {
			entry.ID = uuid.New().String()
		}
		return save(ctx, r.store, KeyLearningLogs, append(logs, entry))
	})
	if err != nil {
		return learning.Log{}, fmt.Errorf("failed to create learning log: %w", err)
	}
	return entry, nil
}

// GetByID implements learning.LogRepository.
func (r *logRepositoryImpl) GetByID(ctx context.Context, id string) (learning.Log, error) {
	logs, err := r.List(ctx)
	if err != nil {
		return learning.Log{}, err
	}
	for _, entry := range logs {
		if entry.ID == id {
			return entry, nil
		}
	}
	return learning.Log{}, learning.ErrLogNotFound
}

// List implements learning.LogRepository.
func (r *logRepositoryImpl) List(ctx context.Context) ([]learning.Log, error) {
	var logs []learning.Log
	err := r.store.View(ctx, func(ctx context.Context) error {
		var err error
		logs, err = r.load(ctx)
		return err
	})
	if logs == nil {
		logs = []learning.Log{}
	}
	return logs, err
}

// Update implements learning.LogRepository.
func (r *logRepositoryImpl) Update(ctx context.Context, entry learning.Log) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		logs, err := r.load(ctx)
		if err != nil {
			return err
		}
		for i, existing := range logs {
			if existing.ID == entry.ID {
				logs[i] = entry
				return save(ctx, r.store, KeyLearningLogs, logs)
			}
		}
		return learning.ErrLogNotFound
	})
}

// Delete implements learning.LogRepository.
func (r *logRepositoryImpl) Delete(ctx context.Context, id string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		logs, err := r.load(ctx)
		if err != nil {
			return err
		}
		kept := make([]learning.Log, 0, len(logs))
		for _, entry := range logs {
			if entry.ID != id {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(logs) {
			return learning.ErrLogNotFound
		}
		return save(ctx, r.store, KeyLearningLogs, kept)
	})
}

// DeleteByEmployeeID implements learning.LogRepository.
func (r *logRepositoryImpl) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	return r.store.Update(ctx, func(ctx context.Context) error {
		logs, err := r.load(ctx)
		if err != nil {
			return err
		}
		kept := make([]learning.Log, 0, len(logs))
		for _, entry := range logs {
			if entry.EmployeeID != employeeID {
				kept = append(kept, entry)
			}
		}
		if len(kept) == len(logs) {
			return nil
		}
		return save(ctx, r.store, KeyLearningLogs, kept)
	})
}
