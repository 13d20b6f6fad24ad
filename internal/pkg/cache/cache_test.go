package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedShift struct {
	Name      string  `json:"name"`
	WorkHours float64 `json:"work_hours"`
}

func TestNoopCache_AlwaysMisses(t *testing.T) {
	var c Cache = NoopCache{}
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "shift:day", cachedShift{Name: "Day"}))

	var got cachedShift
	found, err := c.Get(ctx, "shift:day", &got)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Delete(ctx, "shift:day"))
}

func TestRedisCache_RoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	c, err := NewRedisCache(ctx, RedisOptions{Addr: addr, Prefix: "payroll-test:", TTL: time.Minute})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	require.NoError(t, c.Set(ctx, "shift:day", cachedShift{Name: "Day", WorkHours: 9}))

	var got cachedShift
	found, err := c.Get(ctx, "shift:day", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, cachedShift{Name: "Day", WorkHours: 9}, got)

	require.NoError(t, c.Delete(ctx, "shift:day"))
	found, err = c.Get(ctx, "shift:day", &got)
	require.NoError(t, err)
	assert.False(t, found)
}
