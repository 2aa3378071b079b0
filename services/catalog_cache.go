package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/storecraft/admin-api/logger"
)

// CatalogCache caches serialized public product listings in redis. The cache
// is optional: a nil *CatalogCache is a valid no-op cache, so the API runs
// unchanged without redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache connects to redis using a redis:// URL.
func NewCatalogCache(redisURL string, ttl time.Duration) (*CatalogCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	return &CatalogCache{
		client: redis.NewClient(opts),
		ttl:    ttl,
	}, nil
}

// ProductListKey builds a deterministic key for a store's filtered listing.
func (c *CatalogCache) ProductListKey(storeID string, filters map[string]string) string {
	if c == nil {
		return ""
	}

	parts := make([]string, 0, len(filters))
	for k, v := range filters {
		if v != "" {
			parts = append(parts, k+"="+v)
		}
	}
	sort.Strings(parts)
	return "products:" + storeID + ":" + strings.Join(parts, "&")
}

// Get returns the cached bytes for the key, if present.
func (c *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.L().Warn("Cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}
	return val, true
}

// Set stores the bytes under the key with the cache TTL.
func (c *CatalogCache) Set(ctx context.Context, key string, val []byte) {
	if c == nil {
		return
	}

	if err := c.client.Set(ctx, key, val, c.ttl).Err(); err != nil {
		logger.L().Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateStore drops every cached listing for the store. Called by all
// product mutations so public reads never serve stale catalog data longer
// than one round trip.
func (c *CatalogCache) InvalidateStore(ctx context.Context, storeID string) {
	if c == nil {
		return
	}

	keys, err := c.client.Keys(ctx, "products:"+storeID+":*").Result()
	if err != nil {
		logger.L().Warn("Cache invalidation scan failed", zap.String("store_id", storeID), zap.Error(err))
		return
	}
	if len(keys) == 0 {
		return
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.L().Warn("Cache invalidation failed", zap.String("store_id", storeID), zap.Error(err))
	}
}

// Close releases the redis connection.
func (c *CatalogCache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}
