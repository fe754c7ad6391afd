package memory

import (
	"context"
	"sync"
)

// Backend keeps values in process memory. Data is lost on restart.
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewBackend() *Backend {
	return &Backend{values: make(map[string][]byte)}
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

func (b *Backend) Set(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	b.values[key] = stored
	return nil
}

func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}

// WithinTx restores the previous values when fn fails.
func (b *Backend) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	b.mu.RLock()
	snapshot := make(map[string][]byte, len(b.values))
	for k, v := range b.values {
		snapshot[k] = v
	}
	b.mu.RUnlock()

	if err := fn(ctx); err != nil {
		b.mu.Lock()
		b.values = snapshot
		b.mu.Unlock()
		return err
	}
	return nil
}
