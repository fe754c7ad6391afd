package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackend_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()

	_, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, b.Set(ctx, "k", []byte("v")))
	v, ok, err := b.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(v))

	require.NoError(t, b.Delete(ctx, "k"))
	_, ok, _ = b.Get(ctx, "k")
	assert.False(t, ok)
}

func TestBackend_WithinTxRollsBack(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	require.NoError(t, b.Set(ctx, "k", []byte("before")))

	boom := errors.New("boom")
	err := b.WithinTx(ctx, func(ctx context.Context) error {
		require.NoError(t, b.Set(ctx, "k", []byte("after")))
		require.NoError(t, b.Set(ctx, "other", []byte("x")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	v, _, _ := b.Get(ctx, "k")
	assert.Equal(t, "before", string(v))
	_, ok, _ := b.Get(ctx, "other")
	assert.False(t, ok)
}

func TestBackend_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	b := NewBackend()
	value := []byte("abc")
	require.NoError(t, b.Set(ctx, "k", value))
	value[0] = 'z'

	v, _, _ := b.Get(ctx, "k")
	assert.Equal(t, "abc", string(v))
}
