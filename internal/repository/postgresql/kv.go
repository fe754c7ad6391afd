package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const createKVTable = `
	CREATE TABLE IF NOT EXISTS kv_store (
		key        TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// KVBackend stores each key as one row of kv_store. Values are kept as text
// so that unreadable data survives until it is overwritten.
type KVBackend struct {
	db *database.DB
}

func NewKVBackend(db *database.DB) *KVBackend {
	return &KVBackend{db: db}
}

// EnsureSchema creates the kv_store table when it does not exist.
func (b *KVBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.Exec(ctx, createKVTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (b *KVBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	q := querier(ctx, b.db)

	var value string
	err := q.QueryRow(ctx, `SELECT value FROM kv_store WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get key %s: %w", key, err)
	}
	return []byte(value), true, nil
}

func (b *KVBackend) Set(ctx context.Context, key string, value []byte) error {
	q := querier(ctx, b.db)

	query := `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`
	if _, err := q.Exec(ctx, query, key, string(value)); err != nil {
		return fmt.Errorf("failed to set key %s: %w", key, err)
	}
	return nil
}

func (b *KVBackend) Delete(ctx context.Context, key string) error {
	q := querier(ctx, b.db)

	if _, err := q.Exec(ctx, `DELETE FROM kv_store WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// WithinTx runs fn in one transaction; Get/Set/Delete called with the
// derived context join it.
func (b *KVBackend) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return runInTx(ctx, b.db, fn)
}
