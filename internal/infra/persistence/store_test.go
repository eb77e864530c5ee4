package persistence

import (
	"context"
	"testing"

	"fuelflow/internal/infra/persistence/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixedStore_IsolatesEnvironments(t *testing.T) {
	ctx := context.Background()
	backend := memory.NewStore()
	dev := NewPrefixedStore(backend, "dev/")
	stage := NewPrefixedStore(backend, "/stage")

	require.NoError(t, dev.Set(ctx, "productList/P1", map[string]string{"name": "dev"}))
	require.NoError(t, stage.Set(ctx, "productList/P1", map[string]string{"name": "stage"}))

	var raw map[string]string
	require.NoError(t, backend.Get(ctx, "dev/productList/P1", &raw))
	assert.Equal(t, "dev", raw["name"])

	require.NoError(t, stage.Get(ctx, "productList/P1", &raw))
	assert.Equal(t, "stage", raw["name"])

	require.NoError(t, dev.Delete(ctx, "productList/P1"))
	raw = nil
	require.NoError(t, dev.Get(ctx, "productList/P1", &raw))
	assert.Nil(t, raw)
}

func TestNewPrefixedStore_EmptyPrefix(t *testing.T) {
	backend := memory.NewStore()

	assert.Same(t, backend, NewPrefixedStore(backend, ""))
}
