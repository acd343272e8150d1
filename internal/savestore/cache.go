package savestore

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedDocument wraps an encoded save document with version metadata for cache invalidation.
// Documents are cached encoded so every reader decodes its own private copy.
type cachedDocument struct {
	Version  string
	Data     []byte
	CachedAt time.Time
}

// documentCache keeps recently loaded or saved documents per slot
// with time-based expiration and version-based invalidation.
type documentCache struct {
	lru *expirable.LRU[string, *cachedDocument]
}

func newDocumentCache(size int, ttl time.Duration) *documentCache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &documentCache{
		lru: expirable.NewLRU[string, *cachedDocument](size, nil, ttl),
	}
}

// Get returns the encoded document for a slot.
// Entries with a mismatched schema version are removed and reported as misses.
func (c *documentCache) Get(slot string) ([]byte, bool) {
	entry, found := c.lru.Get(slot)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(slot)
		return nil, false
	}
	return entry.Data, true
}

// Set stores an encoded document for a slot
func (c *documentCache) Set(slot string, data []byte) {
	c.lru.Add(slot, &cachedDocument{
		Version:  CacheSchemaVersion,
		Data:     data,
		CachedAt: time.Now(),
	})
}

// Invalidate drops a slot's entry
func (c *documentCache) Invalidate(slot string) {
	c.lru.Remove(slot)
}

// Clear removes all entries from the cache
func (c *documentCache) Clear() {
	c.lru.Purge()
}
