package dashboard

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"sync"
	"time"
)

// DefaultChartCacheEntries bounds a ChartCache built by NewChartCache.
const DefaultChartCacheEntries = 64

// RenderCache memoizes rendered chart HTML.
type RenderCache interface {
	GetOrRender(key string, render func() (string, error)) (string, error)
}

// ChartCache is a bounded in-memory TTL cache for rendered charts. Keys embed
// a hash of the plotted dataset, so after a store mutation the old entry is
// never hit again; expired entries are swept whenever the cache is full and
// the entry closest to expiry is evicted after that.
type ChartCache struct {
	ttl        time.Duration
	maxEntries int
	now        func() time.Time

	mu      sync.Mutex
	entries map[string]cachedChart
}

type cachedChart struct {
	html    string
	expires time.Time
}

// NewChartCache builds a cache with the provided TTL. A non-positive TTL
// disables caching.
func NewChartCache(ttl time.Duration) *ChartCache {
	return &ChartCache{
		ttl:        ttl,
		maxEntries: DefaultChartCacheEntries,
		now:        time.Now,
		entries:    make(map[string]cachedChart),
	}
}

// WithLimit caps the number of stored charts. Values below one are ignored.
func (c *ChartCache) WithLimit(n int) *ChartCache {
	if n > 0 {
		c.maxEntries = n
	}
	return c
}

// GetOrRender returns a live entry or renders and stores a new one. Render
// errors are not cached.
func (c *ChartCache) GetOrRender(key string, render func() (string, error)) (string, error) {
	if c == nil || c.ttl <= 0 {
		return render()
	}
	now := c.now()
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && now.Before(entry.expires) {
		return entry.html, nil
	}

	html, err := render()
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictLocked(now)
	}
	c.entries[key] = cachedChart{html: html, expires: now.Add(c.ttl)}
	return html, nil
}

// Len reports the number of stored entries, expired ones included until the
// next sweep.
func (c *ChartCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ChartCache) evictLocked(now time.Time) {
	for key, entry := range c.entries {
		if !now.Before(entry.expires) {
			delete(c.entries, key)
		}
	}
	if len(c.entries) < c.maxEntries {
		return
	}
	var (
		oldestKey string
		oldest    time.Time
	)
	for key, entry := range c.entries {
		if oldestKey == "" || entry.expires.Before(oldest) {
			oldestKey, oldest = key, entry.expires
		}
	}
	delete(c.entries, oldestKey)
}

// datasetHash returns a deterministic hash for a chart dataset.
func datasetHash(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return "invalid"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
