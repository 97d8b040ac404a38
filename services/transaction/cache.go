package transaction

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"emjay/models"
	"emjay/utils"

	"github.com/go-redis/redis/v8"
)

// StatsCache stores computed statistics. Invalidate drops every entry.
//
// Get returns the key that was current at lookup time; a miss is filled by
// passing that key to Set, so results computed across an Invalidate land
// under the orphaned generation. An empty key means the cache is unavailable.
type StatsCache interface {
	Get(ctx context.Context, filter models.StatisticsFilter, end string) (stats *models.Statistics, key string, ok bool)
	Set(ctx context.Context, key string, stats *models.Statistics)
	Invalidate(ctx context.Context)
}

// RedisStatsCache keys entries by a generation counter; bumping it orphans old entries until they expire.
type RedisStatsCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) *RedisStatsCache {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &RedisStatsCache{Client: client, TTL: ttl}
}

func generationKey() string { return utils.StatsCachePrefix + "generation" }

func (c *RedisStatsCache) entryKey(ctx context.Context, filter models.StatisticsFilter, end string) (string, error) {
	gen, err := c.Client.Get(ctx, generationKey()).Result()
	if errors.Is(err, redis.Nil) {
		gen = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s:%s:%s", utils.StatsCachePrefix, gen, filter, end), nil
}

func (c *RedisStatsCache) Get(ctx context.Context, filter models.StatisticsFilter, end string) (*models.Statistics, string, bool) {
	key, err := c.entryKey(ctx, filter, end)
	if err != nil {
		utils.GetLogger().Sugar().Warnf("stats cache: generation lookup failed: %v", err)
		return nil, "", false
	}
	raw, err := c.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, key, false
	}
	var stats models.Statistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, key, false
	}
	return &stats, key, true
}

func (c *RedisStatsCache) Set(ctx context.Context, key string, stats *models.Statistics) {
	if key == "" {
		return
	}
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, key, raw, c.TTL).Err(); err != nil {
		utils.GetLogger().Sugar().Warnf("stats cache: set %s failed: %v", key, err)
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	if err := c.Client.Incr(ctx, generationKey()).Err(); err != nil {
		utils.GetLogger().Sugar().Warnf("stats cache: invalidate failed: %v", err)
	}
}
