package cache

import (
	"context"
	"time"

	"workout-generator-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	cache *cache.Cache
}

// NewMemoryCache creates an in-process cache whose snapshot expires after
// ttl; expired items are purged every 2*ttl.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *MemoryCache) Get(ctx context.Context) ([]*entity.Exercise, bool) {
	if x, found := c.cache.Get(snapshotKey); found {
		return cloneAll(x.([]*entity.Exercise)), true
	}
	return nil, false
}

func (c *MemoryCache) Set(ctx context.Context, exercises []*entity.Exercise) {
	c.cache.Set(snapshotKey, cloneAll(exercises), cache.DefaultExpiration)
}

func (c *MemoryCache) Invalidate(ctx context.Context) {
	c.cache.Delete(snapshotKey)
}
