// Package cache defines the caching contract and key construction used by the
// welfare-cycle engine.
//
// # Overview
//
// This package exports the Store interface and two helpers:
//
//   - Store: a TTL key/value store with regex-pattern invalidation and
//     hit/miss accounting
//   - GetOrFetch: a generic read-through wrapper over any Store
//   - Key: deterministic construction of namespaced cache keys
//
// The default Store implementation lives in internal/memstore and is wired in
// by pkg/di; this package carries no implementation so alternate backends can
// satisfy the same contract.
//
// # Key Namespaces
//
// The engine keeps its key families flat and enumerable so that pattern
// invalidation stays auditable:
//
//	employees:welfare              all active employees with derived state
//	employee:<id>:history:<limit>  one employee's activity history
//	dashboard:stats                dashboard aggregates
//	analytics:risk-scores          per-employee risk assessments
//	analytics:executive-summary    executive summary payload
//	analytics:trends:<months>      monthly trend buckets
//
// Keys are built with Key, which joins segments with KeySeparator and
// neutralizes separator characters inside a segment. Because invalidation
// patterns anchor on segment boundaries ("^employee:<id>:history"), stable
// segment layout matters more than compactness here.
//
// # Read-Through Usage
//
//	stats, err := cache.GetOrFetch(ctx, store, cache.Key("dashboard", "stats"), ttl,
//		func(ctx context.Context) (DashboardStats, error) {
//			return buildStats(ctx)
//		})
//
// A miss (absent, expired, or wrong dynamic type under the key) falls through
// to the fetch function; fetch failures are returned to the caller without
// writing to the store, so a flapping source is retried on the next read
// instead of caching its error window.
//
// # Expiry Semantics
//
// An entry is logically expired once now - insertion > TTL. Expired entries
// are deleted lazily by the Get that observes them and counted as misses;
// there is no background eviction, so Stats().Size can include entries that
// would expire on their next access.
package cache
