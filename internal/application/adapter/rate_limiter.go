// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "context"

// RateLimitStore counts attempts per key within a fixed window.
type RateLimitStore interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
