package text

import (
	"sync"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/npillmayer/tambo/core/dimen"
)

// Cache is a read-through cache of text measurements, in front of another
// measurer. Entries are evicted in insertion order once the cache is full.
// A cache belongs to one engine instance and is safe for concurrent use.
type Cache struct {
	sync.Mutex
	m        Measurer
	entries  *linkedhashmap.Map // key → []Fragment
	capacity int
	hits     int
	misses   int
}

// DefaultCacheSize is the capacity of caches created with capacity ≤ 0.
const DefaultCacheSize = 4096

// NewCache creates a measurement cache in front of m.
func NewCache(m Measurer, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Cache{m: m, entries: linkedhashmap.New(), capacity: capacity}
}

type cacheKey struct {
	s         string
	font      string
	available dimen.Dimen
}

// Measure is part of interface Measurer.
func (c *Cache) Measure(s string, font FontSpec, available dimen.Dimen) []Fragment {
	key := cacheKey{s: s, font: font.Key(), available: available}
	c.Lock()
	defer c.Unlock()
	if v, found := c.entries.Get(key); found {
		c.hits++
		return v.([]Fragment)
	}
	c.misses++
	frags := c.m.Measure(s, font, available)
	if c.entries.Size() >= c.capacity {
		it := c.entries.Iterator()
		if it.First() {
			c.entries.Remove(it.Key())
		}
	}
	c.entries.Put(key, frags)
	return frags
}

// Metrics is part of interface Measurer.
func (c *Cache) Metrics(font FontSpec) (dimen.Dimen, dimen.Dimen) {
	return c.m.Metrics(font)
}

// Stats returns the number of cache hits and misses.
func (c *Cache) Stats() (hits, misses int) {
	c.Lock()
	defer c.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached measurements.
func (c *Cache) Len() int {
	c.Lock()
	defer c.Unlock()
	return c.entries.Size()
}

var _ Measurer = &Cache{}
