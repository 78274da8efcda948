// Package cache provides a fixed-capacity, mutex-guarded LRU store for
// pipeline results. One instance is constructed at process start and
// shared by reference across requests; nothing survives process restart.
package cache

import (
	"container/list"
	"sync"
)

// Cache is a least-recently-used store bounded to a fixed number of
// entries. Safe for concurrent use. Recency is refreshed on both Get and
// Put; inserting a new key at capacity evicts the least-recent entry.
type Cache[V any] struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recent
	items    map[string]*list.Element
}

type entry[V any] struct {
	key   string
	value V
}

// New creates a Cache holding at most capacity entries. Capacity below 1
// is treated as 1.
func New[V any](capacity int) *Cache[V] {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache[V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the value for key if present, refreshing its recency.
// A miss is not an error; it simply returns false.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry[V]).value, true
}

// Put stores value under key. An existing key is overwritten and
// refreshed; a new key at capacity evicts the least-recently-used entry
// first.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*entry[V]).value = value
		c.order.MoveToFront(el)
		return
	}

	if c.order.Len() >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry[V]).key)
		}
	}

	c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value})
}

// Len reports the number of entries currently stored.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
