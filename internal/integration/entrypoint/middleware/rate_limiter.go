// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/retail-backoffice/backend/internal/application/adapter"
	domainerror "github.com/retail-backoffice/backend/internal/domain/error"
	"github.com/retail-backoffice/backend/internal/integration/entrypoint/dto"
)

const (
	// defaultMaxAttempts is the default number of allowed attempts per window.
	defaultMaxAttempts = 30
	// defaultWindowDuration is the default time window for rate limiting.
	defaultWindowDuration = 1 * time.Minute
	// maxTrackedKeys bounds the in-memory store before expired keys are swept.
	maxTrackedKeys = 10000
)

// RateLimiter limits generate/confirm calls per authenticated user. It uses
// the shared store when one is configured and falls back to an in-process
// counter when the store fails.
type RateLimiter struct {
	store    adapter.RateLimitStore
	fallback *MemoryRateLimitStore
	scope    string
}

// NewRateLimiter creates a new rate limiter. store may be nil.
func NewRateLimiter(scope string, store adapter.RateLimitStore, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		store:    store,
		fallback: NewMemoryRateLimitStore(maxAttempts, window),
		scope:    scope,
	}
}

// Middleware returns a Gin middleware handler that enforces rate limiting.
// It must run after Authenticate.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := rl.scope + ":" + c.ClientIP()
		if userID, ok := GetUserIDFromContext(c); ok {
			key = rl.scope + ":" + userID.String()
		}

		if !rl.allow(c.Request.Context(), key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many requests. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

func (rl *RateLimiter) allow(ctx context.Context, key string) bool {
	if rl.store == nil {
		allowed, _ := rl.fallback.Allow(ctx, key)
		return allowed
	}

	allowed, err := rl.store.Allow(ctx, key)
	if err != nil {
		slog.Warn("Rate limit store unavailable, using in-process limiter", "error", err)
		allowed, _ = rl.fallback.Allow(ctx, key)
	}
	return allowed
}

// rateLimitEntry tracks rate limit data for a single key.
type rateLimitEntry struct {
	attempts  int
	resetTime time.Time
}

// MemoryRateLimitStore is a fixed-window adapter.RateLimitStore kept in process memory.
type MemoryRateLimitStore struct {
	mu             sync.Mutex
	entries        map[string]*rateLimitEntry
	maxAttempts    int
	windowDuration time.Duration
	now            func() time.Time
}

// NewMemoryRateLimitStore creates a new in-memory store. Non-positive values
// select the defaults.
func NewMemoryRateLimitStore(maxAttempts int, window time.Duration) *MemoryRateLimitStore {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindowDuration
	}
	return &MemoryRateLimitStore{
		entries:        make(map[string]*rateLimitEntry),
		maxAttempts:    maxAttempts,
		windowDuration: window,
		now:            time.Now,
	}
}

// Allow records an attempt for key and reports whether it is within the limit.
func (s *MemoryRateLimitStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	entry, exists := s.entries[key]
	if !exists || now.After(entry.resetTime) {
		s.entries[key] = &rateLimitEntry{
			attempts:  1,
			resetTime: now.Add(s.windowDuration),
		}
		return true, nil
	}

	if entry.attempts < s.maxAttempts {
		entry.attempts++
		return true, nil
	}

	return false, nil
}

// sweepLocked drops expired entries once the map grows past maxTrackedKeys.
func (s *MemoryRateLimitStore) sweepLocked(now time.Time) {
	if len(s.entries) < maxTrackedKeys {
		return
	}
	for key, entry := range s.entries {
		if now.After(entry.resetTime) {
			delete(s.entries, key)
		}
	}
}
