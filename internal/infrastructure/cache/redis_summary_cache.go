package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eventhub/backend/internal/application/summary"
	"github.com/eventhub/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

const summaryKeyPrefix = "summary:"

// RedisSummaryCache implements summary.Cache using Redis. Expiry is handled
// server-side via key TTLs, so state is shared across instances.
type RedisSummaryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSummaryCache creates a Redis-based summary cache and verifies the
// connection before returning.
func NewRedisSummaryCache(cfg config.RedisConfig, ttl time.Duration) (*RedisSummaryCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisSummaryCache{client: client, ttl: ttl}, nil
}

// NewRedisSummaryCacheWithClient creates a cache with an existing Redis client.
// Useful for testing or sharing a client across components.
func NewRedisSummaryCacheWithClient(client *redis.Client, ttl time.Duration) *RedisSummaryCache {
	return &RedisSummaryCache{client: client, ttl: ttl}
}

// Get returns the cached text for a fingerprint
func (c *RedisSummaryCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	text, err := c.client.Get(ctx, summaryKeyPrefix+fingerprint).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read summary from redis: %w", err)
	}
	return text, true, nil
}

// Set stores the text under the fingerprint with the configured TTL
func (c *RedisSummaryCache) Set(ctx context.Context, fingerprint, text string) error {
	if err := c.client.Set(ctx, summaryKeyPrefix+fingerprint, text, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write summary to redis: %w", err)
	}
	return nil
}

// Invalidate removes the entry for a fingerprint; absent keys are a no-op
func (c *RedisSummaryCache) Invalidate(ctx context.Context, fingerprint string) error {
	if err := c.client.Del(ctx, summaryKeyPrefix+fingerprint).Err(); err != nil {
		return fmt.Errorf("failed to invalidate summary in redis: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisSummaryCache) Close() error {
	return c.client.Close()
}

// Ensure RedisSummaryCache implements summary.Cache
var _ summary.Cache = (*RedisSummaryCache)(nil)
