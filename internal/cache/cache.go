// Package cache provides a bounded in-memory TTL cache for model responses.
//
// Expired entries are purged lazily on read. When the cache grows past its
// capacity, Set drops the oldest half of the entries by insertion order
// regardless of expiry or recency. This is a naive policy, not LRU.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spigell/careerlens/internal/utils"
)

const DefaultCapacity = 256

type entry struct {
	expiry time.Time
	value  any
}

// Cache is safe for concurrent use.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string
	capacity int
	now      func() time.Time
}

type Option func(*Cache)

// WithClock overrides the time source used to compute and check expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a cache holding roughly capacity entries.
// Non-positive capacity falls back to DefaultCapacity.
func New(capacity int, opts ...Option) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	c := &Cache{
		entries:  make(map[string]entry),
		capacity: capacity,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Get returns the value stored under key unless it is absent or expired.
func (c *Cache) Get(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if !c.now().Before(e.expiry) {
		c.remove(key)
		return nil, false
	}

	return e.value, true
}

// Set stores value under key for ttl. It never fails; the cache is best-effort.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	defer func() { _ = recover() }()

	if len(c.entries) > c.capacity {
		c.evictHalf()
	}

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = entry{expiry: c.now().Add(ttl), value: value}
}

// Len returns the number of stored entries, including expired ones not yet purged.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// evictHalf removes the oldest half of the entries. Callers hold c.mu.
func (c *Cache) evictHalf() {
	n := len(c.order) / 2
	for _, key := range c.order[:n] {
		delete(c.entries, key)
	}
	c.order = append([]string(nil), c.order[n:]...)
}

// remove deletes key from the map and the insertion order. Callers hold c.mu.
func (c *Cache) remove(key string) {
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

// Key builds a stable cache key from the namespace and request parameters.
// Parameters are trimmed, lowercased and have inner whitespace collapsed so
// that logically identical requests share a slot.
func Key(namespace string, parts ...string) string {
	h := sha256.New()
	for _, part := range parts {
		part = strings.ToLower(utils.CollapseSpace(part))
		// Length prefixes keep ("a|b", "c") and ("a", "b|c") apart.
		fmt.Fprintf(h, "%d:%s|", len(part), part)
	}

	return namespace + "|" + hex.EncodeToString(h.Sum(nil))
}
