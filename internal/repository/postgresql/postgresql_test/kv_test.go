package postgresql_test

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/hrkecil-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/hrkecil-backend-go/internal/repository/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

func TestKVBackend_GetSetDelete(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()

	_, ok, err := setup.Backend.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, setup.Backend.Set(ctx, kv.KeyAdminPIN, []byte("1234")))
	require.NoError(t, setup.Backend.Set(ctx, kv.KeyAdminPIN, []byte("5678")))

	value, ok, err := setup.Backend.Get(ctx, kv.KeyAdminPIN)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5678", string(value))

	require.NoError(t, setup.Backend.Delete(ctx, kv.KeyAdminPIN))
	_, ok, err = setup.Backend.Get(ctx, kv.KeyAdminPIN)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKVBackend_StoreUpdateRollsBack(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	store := kv.NewStore(setup.Backend)
	repo := kv.NewAttendanceRepository(store)

	in := int64(1705284000000)
	boom := errors.New("boom")
	err := store.Update(ctx, func(ctx context.Context) error {
		require.NoError(t, repo.SaveRecord(ctx, "2024-01-15", "e1", attendance.Record{In: &in}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	ledger, err := repo.GetLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestKVBackend_CorruptValueIsEmpty(t *testing.T) {
	setup := setupTestDatabase(t)
	ctx := context.Background()
	require.NoError(t, setup.Backend.Set(ctx, kv.KeyAttendance, []byte("not json")))

	ledger, err := kv.NewAttendanceRepository(kv.NewStore(setup.Backend)).GetLedger(ctx)
	require.NoError(t, err)
	assert.Empty(t, ledger)
}
