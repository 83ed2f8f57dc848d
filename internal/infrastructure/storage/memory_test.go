package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/farmacia-console/internal/infrastructure/storage"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := storage.NewMemory()

	_, ok, err := m.Get(ctx, "sid:token")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "sid:token", "abc"))
	require.NoError(t, m.Set(ctx, "sid:institutionId", "inst-1"))

	v, ok, err := m.Get(ctx, "sid:token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)

	require.NoError(t, m.Delete(ctx, "sid:token", "sid:institutionId"))
	_, ok, _ = m.Get(ctx, "sid:token")
	assert.False(t, ok)
	_, ok, _ = m.Get(ctx, "sid:institutionId")
	assert.False(t, ok)
}
