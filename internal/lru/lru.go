// Package lru is a small fixed-capacity least-recently-used cache, the same
// shape the go-trafilatura port exposes (NewCache/Get/Clear) for its
// duplicate-text cache. internal/dedup uses it to bound memory while
// tracking recently seen paragraph fingerprints.
package lru

import "container/list"

type entry struct {
	key   string
	value int
}

// Cache is a fixed-capacity LRU cache mapping string keys to int counters
// (the Deduplicator only needs a seen-count per fingerprint).
type Cache struct {
	capacity int
	ll       *list.List
	items    map[string]*list.Element
}

// NewCache creates a cache holding at most capacity entries.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = 1
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the stored value for key and whether it was present,
// promoting key to most-recently-used.
func (c *Cache) Get(key string) (int, bool) {
	if el, ok := c.items[key]; ok {
		c.ll.MoveToFront(el)
		return el.Value.(*entry).value, true
	}
	return 0, false
}

// Add inserts or updates key's value, evicting the least-recently-used
// entry if the cache is at capacity.
func (c *Cache) Add(key string, value int) {
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).value = value
		c.ll.MoveToFront(el)
		return
	}
	el := c.ll.PushFront(&entry{key: key, value: value})
	c.items[key] = el
	if c.ll.Len() > c.capacity {
		c.evictOldest()
	}
}

func (c *Cache) evictOldest() {
	oldest := c.ll.Back()
	if oldest == nil {
		return
	}
	c.ll.Remove(oldest)
	delete(c.items, oldest.Value.(*entry).key)
}

// Len returns the number of entries currently cached.
func (c *Cache) Len() int { return c.ll.Len() }

// Clear empties the cache.
func (c *Cache) Clear() {
	c.ll = list.New()
	c.items = make(map[string]*list.Element, c.capacity)
}
