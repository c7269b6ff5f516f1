// Package cache shields the admin revenue table from being recomputed on
// every poll of the dashboard. Backed by Redis when REDIS_ADDR is set,
// otherwise a noop that always misses.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"nipco-portal/internal/analytics"

	redis "github.com/redis/go-redis/v9"
)

// ReportCache stores computed revenue tables keyed by date.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]analytics.RevenueRow, bool, error)
	Set(ctx context.Context, key string, rows []analytics.RevenueRow, ttl time.Duration) error
}

// NoopCache always misses. Used when Redis is not configured and in tests.
type NoopCache struct{}

func (NoopCache) Get(context.Context, string) ([]analytics.RevenueRow, bool, error) {
	return nil, false, nil
}

func (NoopCache) Set(context.Context, string, []analytics.RevenueRow, time.Duration) error {
	return nil
}

// RedisCache stores revenue tables as JSON blobs.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(addr, password string, db int) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisCache{client: client}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]analytics.RevenueRow, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rows []analytics.RevenueRow
	if err := json.Unmarshal([]byte(val), &rows); err != nil {
		return nil, false, err
	}
	return rows, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, rows []analytics.RevenueRow, ttl time.Duration) error {
	payload, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
