package cache

import (
	"context"
	"time"
)

// Stats is a point-in-time snapshot of a store's entry count and access
// counters. HitRate is hits / (hits + misses), and 0 before the first access.
type Stats struct {
	Size    int     `json:"size"`
	Hits    int64   `json:"hits"`
	Misses  int64   `json:"misses"`
	HitRate float64 `json:"hit_rate"`
}

// Store is the cache contract the welfare engine reads through and the
// invalidation coordinator evicts against.
//
// A lookup on an absent or expired key is a miss, never an error; expired
// entries are purged lazily on the access that observes them. Implementations
// must be safe for concurrent use within a single process but provide no
// cross-process coherence.
type Store interface {
	// Set stores value under key. A non-positive ttl selects the store's
	// configured default. Any existing entry under the same key is replaced.
	Set(key string, value any, ttl time.Duration)

	// Get returns the live value for key. Every call increments either the
	// hit or the miss counter.
	Get(key string) (any, bool)

	// Invalidate removes every entry whose key matches the regular
	// expression pattern, regardless of remaining TTL, and reports how many
	// entries were removed. An uncompilable pattern is the only error.
	Invalidate(pattern string) (int, error)

	// Clear removes all entries and resets the hit/miss counters.
	Clear()

	// Stats reports the current size and access counters.
	Stats() Stats
}

// FetchFn is the function signature GetOrFetch expects when fetching from the
// source of truth on a miss.
type FetchFn[T any] func(ctx context.Context) (T, error)

// GetOrFetch is the read-through helper used for every cached read: return
// the cached value when present, otherwise fetch, store under ttl, and return
// the fresh value. Fetch errors are returned without populating the store so
// the next read retries the source.
//
// A cached value of the wrong dynamic type is treated as a miss rather than
// an error; it can only happen when two callers share a key across types.
func GetOrFetch[T any](ctx context.Context, store Store, key string, ttl time.Duration, fetchFn FetchFn[T]) (T, error) {
	if cached, ok := store.Get(key); ok {
		if typed, ok := cached.(T); ok {
			return typed, nil
		}
	}

	value, err := fetchFn(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	store.Set(key, value, ttl)
	return value, nil
}
