package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitStore_Allow(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRateLimitStore(client, 2, time.Minute)

	for i, want := range []bool{true, true, false} {
		allowed, err := store.Allow(ctx, "generate:user-1")
		require.NoError(t, err)
		assert.Equal(t, want, allowed, "attempt %d", i+1)
	}

	allowed, err := store.Allow(ctx, "generate:user-2")
	require.NoError(t, err)
	assert.True(t, allowed, "keys are independent")

	assert.Equal(t, time.Minute, server.TTL(rateLimitKeyPrefix+"generate:user-1"))

	server.FastForward(time.Minute + time.Second)
	allowed, err = store.Allow(ctx, "generate:user-1")
	require.NoError(t, err)
	assert.True(t, allowed, "window reset")
}

func TestRedisRateLimitStore_Unavailable(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	store := NewRedisRateLimitStore(client, 2, time.Minute)
	_, err := store.Allow(context.Background(), "generate:user-1")
	assert.Error(t, err)
}

func TestRedisRateLimitStore_WindowTTL(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRedisRateLimitStore(client, 5, time.Minute)
	key := rateLimitKeyPrefix + "generate:user-1"

	t.Run("first attempt opens the window", func(t *testing.T) {
		_, err := store.Allow(ctx, "generate:user-1")
		require.NoError(t, err)
		assert.Equal(t, time.Minute, server.TTL(key))
		value, err := server.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "1", value)
	})

	t.Run("later attempts keep the original expiry", func(t *testing.T) {
		server.FastForward(20 * time.Second)
		_, err := store.Allow(ctx, "generate:user-1")
		require.NoError(t, err)
		assert.Equal(t, 40*time.Second, server.TTL(key))
		value, err := server.Get(key)
		require.NoError(t, err)
		assert.Equal(t, "2", value)
	})
}
