package names

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type cacheEntry struct {
	checked time.Time
	name    string
}

// Cache remembers when each item was last resolved and, if known, its name.
// It is bounded (least recently used entries are evicted) and process-local.
type Cache struct {
	entries *lru.Cache
	ttl     time.Duration
}

// NewCache creates a cache holding at most size entries, each fresh for ttl.
func NewCache(size int, ttl time.Duration) (*Cache, error) {
	entries, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("failed to create name cache: %w", err)
	}
	return &Cache{entries: entries, ttl: ttl}, nil
}

// Fresh reports whether itemID was checked less than ttl before now, and the name
// recorded by that check ("" when the check did not produce one).
func (c *Cache) Fresh(itemID int64, now time.Time) (string, bool) {
	v, ok := c.entries.Get(itemID)
	if !ok {
		return "", false
	}
	entry := v.(cacheEntry)
	if now.Sub(entry.checked) >= c.ttl {
		return "", false
	}
	return entry.name, true
}

// Touch records a resolution attempt that has not produced a name yet.
func (c *Cache) Touch(itemID int64, now time.Time) {
	c.entries.Add(itemID, cacheEntry{checked: now})
}

// Remember records the name produced by the attempt started at checked.
func (c *Cache) Remember(itemID int64, name string, checked time.Time) {
	c.entries.Add(itemID, cacheEntry{checked: checked, name: name})
}

// Len returns the number of cached items.
func (c *Cache) Len() int {
	return c.entries.Len()
}
