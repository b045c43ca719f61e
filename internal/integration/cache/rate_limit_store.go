// Package cache implements adapter interfaces backed by Redis.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/retail-backoffice/backend/internal/application/adapter"
)

const rateLimitKeyPrefix = "ratelimit:"

// redisRateLimitStore is a fixed-window counter shared by every API instance.
type redisRateLimitStore struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisRateLimitStore creates a new Redis-backed rate limit store.
func NewRedisRateLimitStore(client *redis.Client, maxAttempts int, window time.Duration) adapter.RateLimitStore {
	return &redisRateLimitStore{
		client:      client,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Allow increments the counter of key and reports whether it is within the limit.
// The window is opened and the counter incremented in one MULTI/EXEC so a
// counter never exists without a TTL.
func (s *redisRateLimitStore) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := rateLimitKeyPrefix + key

	var incr *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		// SET NX only creates the key; INCR keeps the TTL of an existing key
		pipe.SetNX(ctx, redisKey, 0, s.window)
		incr = pipe.Incr(ctx, redisKey)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return incr.Val() <= int64(s.maxAttempts), nil
}
