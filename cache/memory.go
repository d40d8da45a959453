package cache

import (
	"sync"
	"time"
)

// InMemoryCache memoizes translations for the lifetime of a process. Combined
// with an Exporter/Importer pair it persists between runs.
type InMemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoEntry struct {
	text    string
	expires time.Time // zero: never
}

// NewInMemoryCache creates an empty cache whose entries live for ttl.
// A ttl of zero or less keeps entries forever.
func NewInMemoryCache(ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]memoEntry),
		ttl:     max(ttl, 0),
		now:     time.Now,
	}
}

func (e memoEntry) live(now time.Time) bool {
	return e.expires.IsZero() || now.Before(e.expires)
}

// Get returns the translation stored under key. Expired entries are dropped.
func (c *InMemoryCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}
	if !entry.live(c.now()) {
		delete(c.entries, key)
		return "", false
	}
	return entry.text, true
}

// Set stores a translation, restarting its lifetime.
func (c *InMemoryCache) Set(key string, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := memoEntry{text: value}
	if c.ttl > 0 {
		entry.expires = c.now().Add(c.ttl)
	}
	c.entries[key] = entry
	return nil
}

// Len returns the number of stored entries, expired ones included until
// they are looked up or pruned.
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Prune drops expired entries and returns how many were removed.
func (c *InMemoryCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if !entry.live(now) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Entries returns a copy of the live entries.
func (c *InMemoryCache) Entries() (map[string]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	out := make(map[string]string, len(c.entries))
	for key, entry := range c.entries {
		if entry.live(now) {
			out[key] = entry.text
		}
	}
	return out, nil
}

var _ ExportableCache = (*InMemoryCache)(nil)
