package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"workout-generator-be/internal/entity"
	"workout-generator-be/internal/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// RedisCache shares the snapshot between instances. Redis failures degrade
// to cache misses.
type RedisCache struct {
	rdb    redis.UniversalClient
	ttl    time.Duration
	logger logger.ILogger
}

func NewRedisCache(rdb redis.UniversalClient, ttl time.Duration, log logger.ILogger) *RedisCache {
	return &RedisCache{
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

func (c *RedisCache) Get(ctx context.Context) ([]*entity.Exercise, bool) {
	raw, err := c.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("CACHE", "Failed to read snapshot from Redis", map[string]interface{}{"error": err.Error()})
		}
		return nil, false
	}

	var exercises []*entity.Exercise
	if err := json.Unmarshal(raw, &exercises); err != nil {
		c.logger.Warn("CACHE", "Discarding undecodable snapshot", map[string]interface{}{"error": err.Error()})
		c.Invalidate(ctx)
		return nil, false
	}
	return exercises, true
}

func (c *RedisCache) Set(ctx context.Context, exercises []*entity.Exercise) {
	raw, err := json.Marshal(exercises)
	if err != nil {
		c.logger.Error("CACHE", "Failed to encode snapshot", map[string]interface{}{"error": err.Error()})
		return
	}
	if err := c.rdb.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("CACHE", "Failed to write snapshot to Redis", map[string]interface{}{"error": err.Error()})
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Del(ctx, snapshotKey).Err(); err != nil {
		c.logger.Warn("CACHE", "Failed to invalidate snapshot", map[string]interface{}{"error": err.Error()})
	}
}
