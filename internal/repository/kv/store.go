package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Persisted keys, shared with the browser console.
const (
	KeyEmployees    = "hrkecil_employees"
	KeyAttendance   = "hrkecil_attendance"
	KeyEvaluations  = "hrkecil_evaluations"
	KeyAdminPIN     = "hrkecil_admin_pin"
	KeyLeaves       = "hrkecil_leaves"
	KeyLearningLogs = "hrkecil_learning_logs"
	KeyTimesheets   = "hrkecil_timesheets"
)

// Keys lists every key the store owns.
var Keys = []string{
	KeyEmployees,
	KeyAttendance,
	KeyEvaluations,
	KeyAdminPIN,
	KeyLeaves,
	KeyLearningLogs,
	KeyTimesheets,
}

// Backend is a string-keyed blob store.
type Backend interface {
	// Get returns the value and whether the key exists
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Transactor is implemented by backends that can make a group of writes atomic.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ErrWriteInView is returned by Update when called from inside View.
var ErrWriteInView = errors.New("store: update inside a read-only view")

type (
	updateKey struct{}
	viewKey   struct{}
)

// Store is the single owner of persisted state. Every read-modify-write runs
// inside Update, which admits one writer at a time.
type Store struct {
	backend Backend
	mu      sync.RWMutex
}

func NewStore(backend Backend) *Store {
	return &Store{backend: backend}
}

func inUpdate(ctx context.Context) bool {
	v, _ := ctx.Value(updateKey{}).(bool)
	return v
}

func inView(ctx context.Context) bool {
	v, _ := ctx.Value(viewKey{}).(bool)
	return v
}

// Update runs fn as the only writer. Nested calls share the outer lock and transaction.
func (s *Store) Update(ctx context.Context, fn func(ctx context.Context) error) error {
	if inUpdate(ctx) {
		return fn(ctx)
	}
	if inView(ctx) {
		return ErrWriteInView
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ctx = context.WithValue(ctx, updateKey{}, true)
	if tx, ok := s.backend.(Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(ctx)
}

// View runs fn while no writer is active. The read lock is taken once per
// call chain; nested views and views inside Update reuse the held lock.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if inUpdate(ctx) || inView(ctx) {
		return fn(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(context.WithValue(ctx, viewKey{}, true))
}

// Backend exposes the underlying backend for maintenance tasks.
func (s *Store) Backend() Backend {
	return s.backend
}

// load decodes key into a value built by def. Missing or undecodable data
// yields def(); only backend failures are returned.
func load[T any](ctx context.Context, s *Store, key string, def func() T) (T, error) {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return def(), nil
	}

	value := def()
	if err := json.Unmarshal(raw, &value); err != nil {
		slog.Warn("discarding unreadable stored value", "key", key, "error", err)
		return def(), nil
	}
	return value, nil
}

func save(ctx context.Context, s *Store, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}
