package memstore

import (
	"regexp"
	"time"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-welfare-cycle/cache"
)

// Config holds the configuration for the in-memory store.
type Config struct {
	// DefaultTTL is applied when Set is called with a non-positive TTL.
	// Must be greater than 0.
	DefaultTTL time.Duration

	// Clock supplies the current time for insertion stamps and expiry
	// checks. Nil selects time.Now; tests inject a fixed clock so expiry
	// boundaries can be asserted without sleeping.
	Clock func() time.Time
}

// DefaultConfig returns a Config with sensible defaults for most use cases.
func DefaultConfig() Config {
	return Config{
		DefaultTTL: 5 * time.Minute,
	}
}

// Validate checks if the configuration values are valid.
func (c Config) Validate() error {
	if c.DefaultTTL <= 0 {
		return &ConfigError{Field: "DefaultTTL", Message: "must be greater than 0"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}

// entry pairs a cached value with its insertion stamp and TTL. An entry is
// expired once now - storedAt > ttl; equality is still live.
type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

func (e entry) expired(now time.Time) bool {
	return now.Sub(e.storedAt) > e.ttl
}

// Interface assertion to ensure Store implements cache.Store
var _ cache.Store = (*Store)(nil)

// Store is the in-memory cache.Store implementation. Entries carry their own
// TTL and are purged lazily by the Get that observes them; Invalidate matches
// a regular expression against every stored key. The xsync primitives keep
// concurrent mutation within one process from corrupting internal state, but
// no cross-process coherence is provided.
type Store struct {
	entries    *xsync.MapOf[string, entry]
	hits       *xsync.Counter
	misses     *xsync.Counter
	defaultTTL time.Duration
	now        func() time.Time
}

// New creates a Store from the provided configuration.
func New(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	now := cfg.Clock
	if now == nil {
		now = time.Now
	}

	return &Store{
		entries:    xsync.NewMapOf[string, entry](),
		hits:       xsync.NewCounter(),
		misses:     xsync.NewCounter(),
		defaultTTL: cfg.DefaultTTL,
		now:        now,
	}, nil
}

// Set stores value under key, replacing any existing entry. A non-positive
// ttl selects the configured default.
func (s *Store) Set(key string, value any, ttl time.Duration) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}
	s.entries.Store(key, entry{value: value, storedAt: s.now(), ttl: ttl})
}

// Get returns the live value for key. An absent key is a miss; an expired
// entry is deleted and reported as a miss.
func (s *Store) Get(key string) (any, bool) {
	e, ok := s.entries.Load(key)
	if !ok {
		s.misses.Inc()
		return nil, false
	}

	if e.expired(s.now()) {
		s.entries.Delete(key)
		s.misses.Inc()
		return nil, false
	}

	s.hits.Inc()
	return e.value, true
}

// Invalidate removes every entry whose key matches pattern, regardless of
// remaining TTL, and reports how many entries were removed.
func (s *Store) Invalidate(pattern string) (int, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return 0, err
	}

	removed := 0
	s.entries.Range(func(key string, _ entry) bool {
		if re.MatchString(key) {
			s.entries.Delete(key)
			removed++
		}
		return true
	})
	return removed, nil
}

// Clear removes all entries and resets the hit/miss counters.
func (s *Store) Clear() {
	s.entries.Clear()
	s.hits.Reset()
	s.misses.Reset()
}

// Stats reports the current size and access counters.
func (s *Store) Stats() cache.Stats {
	hits := s.hits.Value()
	misses := s.misses.Value()

	var hitRate float64
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return cache.Stats{
		Size:    s.entries.Size(),
		Hits:    hits,
		Misses:  misses,
		HitRate: hitRate,
	}
}
