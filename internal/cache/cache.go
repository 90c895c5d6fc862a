// Package cache provides a read-through byte cache for query results.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/geodirhq/geodir/internal/metrics"
)

// Cache defines the interface for cached query results. A miss is reported
// as (nil, nil), never as an error.
type Cache interface {
	// Get retrieves a cached value, or nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value.
	Delete(ctx context.Context, key string) error
}

// entry is an internal cache entry.
type entry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache is an in-memory cache implementation. Suitable for development
// or single-instance deployments; Redis backs multi-instance ones.
type MemoryCache struct {
	mu         sync.Mutex
	entries    map[string]entry
	maxEntries int
}

// NewMemoryCache creates a new in-memory cache bounded to maxEntries.
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryCache{
		entries:    make(map[string]entry),
		maxEntries: maxEntries,
	}
}

// Get retrieves a cached value, or nil on a miss.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		metrics.CacheHits.WithLabelValues("miss").Inc()
		return nil, nil
	}
	metrics.CacheHits.WithLabelValues("hit").Inc()
	return e.value, nil
}

// Set stores a value with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = entry{value: value, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Delete removes a cached value.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
	return nil
}

// evictOldest removes the entry closest to expiry. Called with c.mu held.
func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.expiresAt.Before(oldest) {
			oldestKey = k
			oldest = e.expiresAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}
