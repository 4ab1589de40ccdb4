package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"fridgechef/internal/infrastructure/config"
	"fridgechef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	common.Logger = zap.NewNop()
}

func testConfig() *config.Config {
	return &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         3,
			TTL:             time.Minute,
			CleanupInterval: time.Hour,
		},
	}
}

func TestManagerDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.Enabled = false

	m := NewManager(cfg)
	assert.Nil(t, m)

	// A nil manager is a pass-through, not a panic.
	_, err := m.Get(context.Background(), "prompt", "")
	assert.ErrorIs(t, err, common.ErrCacheDisabled)
	assert.NoError(t, m.Set(context.Background(), "prompt", "", "value"))
	assert.Equal(t, map[string]interface{}{"enabled": false}, m.GetStats())
	assert.NoError(t, m.Close())
}

func TestManagerSetGet(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "list ingredients", "img-a", "eggs, milk"))

	got, err := m.Get(ctx, "list ingredients", "img-a")
	require.NoError(t, err)
	assert.Equal(t, "eggs, milk", got)

	// Same prompt, different image: distinct entry.
	_, err = m.Get(ctx, "list ingredients", "img-b")
	assert.Error(t, err)
}

func TestManagerExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Cache.TTL = 10 * time.Millisecond
	m := NewManager(cfg)
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "prompt", "", "value"))
	time.Sleep(20 * time.Millisecond)

	_, err := m.Get(ctx, "prompt", "")
	assert.Error(t, err)
}

func TestManagerLRUEviction(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, m.Set(ctx, fmt.Sprintf("prompt-%d", i), "", "v"))
	}

	// Touch prompt-0 and prompt-1 so prompt-2 is the LRU candidate.
	_, err := m.Get(ctx, "prompt-0", "")
	require.NoError(t, err)
	_, err = m.Get(ctx, "prompt-1", "")
	require.NoError(t, err)

	require.NoError(t, m.Set(ctx, "prompt-3", "", "v"))

	_, err = m.Get(ctx, "prompt-2", "")
	assert.Error(t, err)
	got, err := m.Get(ctx, "prompt-0", "")
	require.NoError(t, err)
	assert.Equal(t, "v", got)
}

func TestManagerStats(t *testing.T) {
	m := NewManager(testConfig())
	defer m.Close()
	ctx := context.Background()

	require.NoError(t, m.Set(ctx, "p", "", "v"))
	_, _ = m.Get(ctx, "p", "")
	_, _ = m.Get(ctx, "absent", "")

	stats := m.GetStats()
	assert.Equal(t, true, stats["enabled"])
	assert.Equal(t, int64(1), stats["hits"])
	assert.Equal(t, int64(1), stats["misses"])
	assert.Equal(t, 0.5, stats["hit_ratio"])
}
