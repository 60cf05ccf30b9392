package inmemory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fortuneworks/fortune/pkg/cache"
)

func TestCache_GetSet(t *testing.T) {
	c, err := NewCache(nil)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = c.Get(ctx, "1")
	require.ErrorIs(t, err, cache.ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "1", "hello"))

	msg, err := c.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "hello", msg)

	// Overwrite, last write wins.
	require.NoError(t, c.Set(ctx, "1", "replaced"))
	msg, err = c.Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "replaced", msg)
}

func TestCache_ListAll(t *testing.T) {
	c, err := NewCache(&Config{})
	require.NoError(t, err)
	ctx := context.Background()

	entries, err := c.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, entries)

	require.NoError(t, c.Set(ctx, "1", "one"))
	require.NoError(t, c.Set(ctx, "2", "two"))

	entries, err = c.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1": "one", "2": "two"}, entries)
}
