// Package cache holds rendered API results for a short time so that repeated
// list and search requests skip filtering and index lookups.
package cache

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache of handler results keyed by route and query.
type Cache struct {
	store *gocache.Cache
}

// New creates a cache whose entries live for ttl. Expired entries are swept
// every cleanupInterval.
func New(ttl, cleanupInterval time.Duration) *Cache {
	return &Cache{store: gocache.New(ttl, cleanupInterval)}
}

// Key joins route and query into a cache key.
func Key(route, rawQuery string) string {
	var b strings.Builder
	b.WriteString(route)
	if rawQuery != "" {
		b.WriteByte('?')
		b.WriteString(rawQuery)
	}
	return b.String()
}

// Get returns the value stored under key.
func (c *Cache) Get(key string) (any, bool) {
	return c.store.Get(key)
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.store.Set(key, value, gocache.DefaultExpiration)
}

// Remember returns the value under key, computing and storing it with load
// on a miss. Errors are not cached.
func (c *Cache) Remember(key string, load func() (any, error)) (any, error) {
	if v, ok := c.store.Get(key); ok {
		return v, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	c.store.Set(key, v, gocache.DefaultExpiration)
	return v, nil
}

// Clear drops every entry.
func (c *Cache) Clear() {
	c.store.Flush()
}

// ItemCount returns the number of entries, including expired ones not yet swept.
func (c *Cache) ItemCount() int {
	return c.store.ItemCount()
}
