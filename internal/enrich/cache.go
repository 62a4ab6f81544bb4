package enrich

import (
	"sync"
	"time"

	"github.com/optica-labs/frame-intake/internal/entity"
)

// Outcome is the applied enrichment result for one product key: the matched
// variant (nil when the source confirmed not-found) plus the match verdict.
// Caching the whole outcome means a cache hit replays exactly what the
// original lookup produced, with no re-derivation.
type Outcome struct {
	Variant   *entity.Variant
	Score     int
	Validated bool
	Reason    string
	Failed    bool
}

// CacheEntry is one stored resolution.
type CacheEntry struct {
	Outcome  Outcome
	StoredAt time.Time
}

// Cache is the run-scoped product-key store that keeps repeated frames from
// re-triggering slow network calls. Insert-only: entries are never mutated
// or evicted within a process lifetime. The mutex makes it safe for
// concurrent pipeline runs sharing one Processor; a duplicate lookup racing
// on the same key is wasteful but not incorrect.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]CacheEntry
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]CacheEntry)}
}

// Get returns the stored entry for a product key.
func (c *Cache) Get(productKey string) (CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[productKey]
	return e, ok
}

// Put stores an outcome for a product key. First write wins; later writes
// for the same key are dropped so a stored resolution never changes.
func (c *Cache) Put(productKey string, oc Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[productKey]; exists {
		return
	}
	c.entries[productKey] = CacheEntry{Outcome: oc, StoredAt: time.Now().UTC()}
}

// Len reports the number of stored keys.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
