package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBackend(t *testing.T) *KVBackend {
	t.Helper()
	ctx := context.Background()

	db, err := database.NewSQLiteDB(ctx, filepath.Join(t.TempDir(), "hrkecil.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	backend := NewKVBackend(db)
	require.NoError(t, backend.EnsureSchema(ctx))
	return backend
}

func TestKVBackend_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	backend := newTestBackend(t)

	_, ok, err := backend.Get(ctx, kv.KeyEmployees)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, backend.Set(ctx, kv.KeyEmployees, []byte("[]")))
	require.NoError(t, backend.Set(ctx, kv.KeyEmployees, []byte(`[{"id":"e1"}]`)))

	value, ok, err := backend.Get(ctx, kv.KeyEmployees)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `[{"id":"e1"}]`, string(value))

	require.NoError(t, backend.Delete(ctx, kv.KeyEmployees))
	_, ok, err = backend.Get(ctx, kv.KeyEmployees)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVBackend_TransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	store := kv.NewStore(newTestBackend(t))
	repo := kv.NewEmployeeRepository(store)

	_, err := repo.Create(ctx, employee.Employee{ID: "keep", Name: "Keep", Email: "keep@example.com"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Update(ctx, func(ctx context.Context) error {
		_, err := repo.Create(ctx, employee.Employee{ID: "drop", Name: "Drop", Email: "drop@example.com"})
		require.NoError(t, err)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	employees, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 1)
	assert.Equal(t, "keep", employees[0].ID)
}
