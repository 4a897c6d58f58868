// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
)

// StatsCache caches the rendered dashboard overview between mutations.
// Implementations must treat a cache miss as a normal condition, not an error.
type StatsCache interface {
	// Get returns the cached payload for key, or ok=false on a miss.
	Get(ctx context.Context, key string) (payload []byte, ok bool, err error)

	// Set stores payload under key for the cache's configured TTL.
	Set(ctx context.Context, key string, payload []byte) error

	// Invalidate drops every cached overview. Called after any client or
	// payment mutation.
	Invalidate(ctx context.Context) error
}
