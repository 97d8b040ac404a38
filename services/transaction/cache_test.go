package transaction

import (
	"context"
	"os"
	"testing"
	"time"

	"emjay/models"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testStatsCache connects to REDIS_TEST_ADDR and uses a scratch database.
func testStatsCache(t *testing.T) *RedisStatsCache {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.FlushDB(context.Background()).Err())
	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})
	return NewRedisStatsCache(client, time.Minute)
}

func Test_RedisStatsCache_SetAfterInvalidateIsOrphaned(t *testing.T) {
	c := testStatsCache(t)
	ctx := context.Background()
	stale := &models.Statistics{Income: []models.IncomePeriod{{Period: "2026-03-10", GrossIncome: 100}}}

	_, key, ok := c.Get(ctx, models.FilterDaily, "2026-03-10")
	require.False(t, ok)
	require.NotEmpty(t, key)

	c.Invalidate(ctx)
	c.Set(ctx, key, stale)

	_, fresh, ok := c.Get(ctx, models.FilterDaily, "2026-03-10")
	assert.False(t, ok, "entry written under the old generation is not served")
	assert.NotEqual(t, key, fresh)

	c.Set(ctx, fresh, stale)
	got, _, ok := c.Get(ctx, models.FilterDaily, "2026-03-10")
	require.True(t, ok)
	assert.Equal(t, stale.Income, got.Income)
}
