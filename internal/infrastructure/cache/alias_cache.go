package cache

import "sync"

// AliasCache is a concurrency-safe alias → canonical domain map. Entries are
// learned lazily, are idempotent once learned, and live for the process
// lifetime; last-writer-wins under contention is acceptable.
type AliasCache struct {
	mu       sync.RWMutex
	mappings map[string]string
}

// NewAliasCache creates an empty alias cache.
func NewAliasCache() *AliasCache {
	return &AliasCache{
		mappings: make(map[string]string),
	}
}

// Lookup returns the canonical domain for an alias, if known.
func (c *AliasCache) Lookup(alias string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	canonical, ok := c.mappings[alias]
	return canonical, ok
}

// Store records alias → canonical.
func (c *AliasCache) Store(alias, canonical string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mappings[alias] = canonical
}

// StoreIdentity records canonical → canonical.
func (c *AliasCache) StoreIdentity(canonical string) {
	c.Store(canonical, canonical)
}

// Len reports the number of learned mappings.
func (c *AliasCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.mappings)
}
