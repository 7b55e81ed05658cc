package cache

import (
	"context"
	"sync"
	"time"

	"github.com/eventhub/backend/internal/application/summary"
)

// entry holds a cached summary text with its expiration
type entry struct {
	text      string
	expiresAt time.Time
}

// InMemorySummaryCache implements summary.Cache using an in-memory map.
// Entries expire after a fixed TTL, enforced lazily: a stale entry is
// evicted the first time it is read. Suitable for single-instance
// deployments and testing.
type InMemorySummaryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewInMemorySummaryCache creates a new in-memory summary cache
func NewInMemorySummaryCache(ttl time.Duration) *InMemorySummaryCache {
	return &InMemorySummaryCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Get returns the cached text for a fingerprint. An entry past its TTL is
// evicted and reported as absent.
func (c *InMemorySummaryCache) Get(ctx context.Context, fingerprint string) (string, bool, error) {
	c.mu.RLock()
	e, exists := c.entries[fingerprint]
	c.mu.RUnlock()

	if !exists {
		return "", false, nil
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock, a Set may have raced the eviction.
		if cur, ok := c.entries[fingerprint]; ok && time.Now().After(cur.expiresAt) {
			delete(c.entries, fingerprint)
		}
		c.mu.Unlock()
		return "", false, nil
	}

	return e.text, true, nil
}

// Set stores the text under the fingerprint, resetting its TTL
func (c *InMemorySummaryCache) Set(ctx context.Context, fingerprint, text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[fingerprint] = entry{
		text:      text,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes the entry for a fingerprint; absent entries are a no-op
func (c *InMemorySummaryCache) Invalidate(ctx context.Context, fingerprint string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, fingerprint)
	return nil
}

// Close releases resources; the in-memory backend has none
func (c *InMemorySummaryCache) Close() error {
	return nil
}

// Size returns the number of entries in the cache (for testing/monitoring)
func (c *InMemorySummaryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Ensure InMemorySummaryCache implements summary.Cache
var _ summary.Cache = (*InMemorySummaryCache)(nil)
