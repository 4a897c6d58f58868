// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rm-entrenador/backend/internal/application/adapter"
)

// Redis keys used by the stats cache. Everything lives under one prefix so
// Invalidate can drop the lot with a single scan.
const statsKeyPrefix = "stats:"

// redisStatsCache implements the adapter.StatsCache interface on Redis.
type redisStatsCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStatsCache creates a new Redis-backed stats cache instance.
func NewRedisStatsCache(client *redis.Client, ttl time.Duration) adapter.StatsCache {
	return &redisStatsCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached payload for key, or ok=false on a miss.
func (c *redisStatsCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := c.client.Get(ctx, statsKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores payload under key for the configured TTL.
func (c *redisStatsCache) Set(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, statsKeyPrefix+key, payload, c.ttl).Err()
}

// Invalidate drops every cached overview.
func (c *redisStatsCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, statsKeyPrefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
