package enrich

import (
	"sync"
	"time"

	"threadjuice/internal/giphy"
)

// Cache stores resolved GIF lookups keyed by emotion+term. It is injected
// into enrichers rather than held as a process-wide singleton so tests can
// start from a fresh cache; implementations must be safe for concurrent use
// since multiple jobs enrich at once.
type Cache interface {
	Get(key string) (*giphy.GIF, bool)
	Set(key string, g *giphy.GIF)
}

type cacheEntry struct {
	gif     *giphy.GIF
	expires time.Time
}

// MemoryCache is a TTL-evicting in-memory Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

// NewMemoryCache creates a cache whose entries expire after ttl. A zero ttl
// keeps entries for the lifetime of the process.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{ttl: ttl, entries: make(map[string]cacheEntry)}
}

func (c *MemoryCache) Get(key string) (*giphy.GIF, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expires.IsZero() && time.Now().After(e.expires) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.gif, true
}

func (c *MemoryCache) Set(key string, g *giphy.GIF) {
	var expires time.Time
	if c.ttl > 0 {
		expires = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.entries[key] = cacheEntry{gif: g, expires: expires}
	c.mu.Unlock()
}
