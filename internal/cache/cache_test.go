package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "lower.db"))
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCache_PutThenGet(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "abc123", "lowered output"))

	out, ok, err := c.Get(ctx, "abc123")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "lowered output", out)
}

func TestCache_MissReturnsNotFound(t *testing.T) {
	c := openTestCache(t)

	out, ok, err := c.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out)
}

func TestCache_PutIsIdempotent(t *testing.T) {
	c := openTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Put(ctx, "h", "first"))
	require.NoError(t, c.Put(ctx, "h", "second"))

	// The first write wins; the duplicate is silently ignored.
	out, ok, err := c.Get(ctx, "h")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "first", out)
}

func TestCache_OpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lower.db")

	first, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, first.Put(context.Background(), "h", "out"))
	require.NoError(t, first.Close())

	second, err := Open(path)
	require.NoError(t, err)
	defer second.Close()

	out, ok, err := second.Get(context.Background(), "h")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "out", out)
}

func TestCache_CloseNilSafe(t *testing.T) {
	var c Cache
	assert.NoError(t, c.Close())
}
