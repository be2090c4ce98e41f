package weather

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"golang.org/x/text/cases"
)

// DefaultCacheTTL is how long a successful lookup is reused.
const DefaultCacheTTL = 10 * time.Minute

// CacheStats counts lookups served from and past the cache.
type CacheStats struct {
	Hits   int
	Misses int
}

// CachedProvider is a Provider that remembers successful lookups for a fixed time.
type CachedProvider interface {
	Provider

	// Stats returns the hit and miss counters.
	Stats() CacheStats

	// Purge drops every cached report.
	Purge()
}

// CacheOption configures a CachedProvider.
type CacheOption func(*cachedProvider)

type cacheEntry struct {
	report  Report
	fetched time.Time
}

type cachedProvider struct {
	mu      *sync.Mutex
	source  Provider
	entries map[string]cacheEntry
	ttl     time.Duration
	clock   func() time.Time
	stats   CacheStats
	logging bool
}

var _ CachedProvider = &cachedProvider{}

// WithCacheClock replaces the wall clock used to age entries.
func WithCacheClock(clock func() time.Time) CacheOption {
	return func(c *cachedProvider) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithCacheLogging logs every hit and miss.
func WithCacheLogging(enabled bool) CacheOption {
	return func(c *cachedProvider) {
		c.logging = enabled
	}
}

// NewCachedProvider wraps a provider with a per-location cache.
// Locations are compared case-insensitively after trimming. Failed lookups are not cached.
//
// Parameters:
//   - source: the provider to forward cache misses to
//   - ttl: entry lifetime, DefaultCacheTTL when non-positive
//   - options: optional clock and logging overrides
//
// Returns:
//   - CachedProvider: the caching provider
func NewCachedProvider(source Provider, ttl time.Duration, options ...CacheOption) CachedProvider {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	c := &cachedProvider{
		mu:      &sync.Mutex{},
		source:  source,
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		clock:   time.Now,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func cacheKey(location string) string {
	return cases.Fold().String(strings.TrimSpace(location))
}

func (c *cachedProvider) Name() string {
	return c.source.Name() + " [Cached]"
}

func (c *cachedProvider) Current(ctx context.Context, location string) (Report, error) {
	key := cacheKey(location)
	if key == "" {
		return Report{}, ErrEmptyLocation
	}

	now := c.clock()
	c.mu.Lock()
	entry, found := c.entries[key]
	if found && now.Sub(entry.fetched) < c.ttl {
		c.stats.Hits++
		c.mu.Unlock()
		if c.logging {
			log.Printf("[Weather] cache hit for %q from %s (age %s)", location, c.source.Name(), now.Sub(entry.fetched).Round(time.Second))
		}
		return entry.report, nil
	}
	if found {
		delete(c.entries, key)
	}
	c.stats.Misses++
	c.mu.Unlock()

	if c.logging {
		log.Printf("[Weather] cache miss for %q from %s", location, c.source.Name())
	}

	report, err := c.source.Current(ctx, location)
	if err != nil {
		return Report{}, err
	}

	fetched := c.clock()
	c.mu.Lock()
	c.sweep(fetched)
	c.entries[key] = cacheEntry{report: report, fetched: fetched}
	c.mu.Unlock()
	return report, nil
}

func (c *cachedProvider) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// sweep drops every entry older than the TTL. Callers hold c.mu.
func (c *cachedProvider) sweep(now time.Time) {
	for key, entry := range c.entries {
		if now.Sub(entry.fetched) >= c.ttl {
			delete(c.entries, key)
		}
	}
}

func (c *cachedProvider) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}
