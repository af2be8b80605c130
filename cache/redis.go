package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "views:"

// RedisViewCache is a ViewCache backed by a shared Redis instance. Purges
// issued by one process are visible to every process sharing the same
// Redis, which makes it the backend of choice when the service runs as
// multiple instances.
type RedisViewCache struct {
	client *redis.Client
}

// NewRedisViewCache wraps an existing Redis client.
func NewRedisViewCache(client *redis.Client) *RedisViewCache {
	return &RedisViewCache{client: client}
}

func redisKey(key string) string {
	return redisKeyPrefix + key
}

// GetOrCompute implements ViewCache. Concurrent misses on the same key may
// each invoke produce; cross-process coordination is not attempted.
func (c *RedisViewCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, produce func() ([]byte, error)) ([]byte, error) {
	val, err := c.client.Get(ctx, redisKey(key)).Bytes()
	if err == nil {
		return val, nil
	}
	if err != redis.Nil {
		return nil, fmt.Errorf("cache get %s: %w", key, err)
	}

	value, err := produce()
	if err != nil {
		return nil, err
	}
	if err := c.client.Set(ctx, redisKey(key), value, ttl).Err(); err != nil {
		return nil, fmt.Errorf("cache set %s: %w", key, err)
	}
	return value, nil
}

// Purge implements ViewCache.
func (c *RedisViewCache) Purge(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, redisKey(key)).Err(); err != nil {
		return fmt.Errorf("cache del %s: %w", key, err)
	}
	return nil
}
