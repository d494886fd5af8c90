package loader

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Load(t *testing.T) {
	ctx := context.Background()
	cache := NewCache(slog.Default(), NewLoader(slog.Default(), 0), nil)

	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte("title\nPaper A\n"), 0o644))

	t.Run("unchanged file served from cache", func(t *testing.T) {
		first, err := cache.Load(ctx, path)
		require.NoError(t, err)
		second, err := cache.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("touched but unchanged file is not reloaded", func(t *testing.T) {
		future := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(path, future, future))

		ds, err := cache.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("changed content forces reload", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("title\nPaper A\nPaper B\n"), 0o644))

		ds, err := cache.Load(ctx, path)
		require.NoError(t, err)
		assert.Equal(t, 2, ds.Len())
	})

	t.Run("invalidate forces re-read", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("title\nPaper C\n"), 0o644))
		cache.Invalidate(path)

		ds, err := cache.Load(ctx, path)
		require.NoError(t, err)
		require.Equal(t, 1, ds.Len())
		assert.Equal(t, "Paper C", ds.Records[0]["title"])
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := cache.Load(ctx, filepath.Join(t.TempDir(), "gone.csv"))
		assert.Error(t, err)
	})
}

type countingMetrics struct {
	hits   int
	misses int
}

func (m *countingMetrics) CacheHit(context.Context)  { m.hits++ }
func (m *countingMetrics) CacheMiss(context.Context) { m.misses++ }

func TestCache_Metrics(t *testing.T) {
	ctx := context.Background()
	metrics := &countingMetrics{}
	cache := NewCache(slog.Default(), NewLoader(slog.Default(), 0), metrics)

	path := filepath.Join(t.TempDir(), "metadata.csv")
	require.NoError(t, os.WriteFile(path, []byte("title\nPaper A\n"), 0o644))

	_, err := cache.Load(ctx, path)
	require.NoError(t, err)
	_, err = cache.Load(ctx, path)
	require.NoError(t, err)

	assert.Equal(t, 1, metrics.misses)
	assert.Equal(t, 1, metrics.hits)
}
