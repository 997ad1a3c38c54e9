// ReelMatch - Taste-Driven Movie and Series Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package cache provides a thread-safe LRU cache with per-entry TTL, used to
// hold external catalog responses between recommendation runs.
package cache

import (
	"sync"
	"time"

	"github.com/tomtom215/reelmatch/internal/metrics"
)

type entry[V any] struct {
	key       string
	value     V
	prev      *entry[V]
	next      *entry[V]
	expiresAt time.Time
}

// LRU is a thread-safe Least Recently Used cache with TTL support.
//
// Get, Add and Remove are O(1). Expired entries are dropped lazily on access
// and in bulk by CleanupExpired.
type LRU[V any] struct {
	mu sync.Mutex

	name     string
	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*entry[V]

	// head.next is the most recently used, tail.prev the least.
	head *entry[V]
	tail *entry[V]

	hits   int64
	misses int64
}

// Option configures an LRU.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// NewLRU creates a cache holding at most capacity entries for ttl each.
// The name is used as the cache_type metrics label.
func NewLRU[V any](name string, capacity int, ttl time.Duration, opts ...Option) *LRU[V] {
	if capacity <= 0 {
		capacity = 1000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	c := &LRU[V]{
		name:     name,
		capacity: capacity,
		ttl:      ttl,
		now:      o.now,
		items:    make(map[string]*entry[V], capacity),
		head:     &entry[V]{},
		tail:     &entry[V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the cached value for key if present and not expired.
// A hit moves the entry to the front.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	e, ok := c.items[key]
	if !ok {
		c.recordMiss()
		return zero, false
	}
	if c.now().After(e.expiresAt) {
		c.removeEntry(e)
		metrics.CacheEvictions.WithLabelValues(c.name).Inc()
		c.recordMiss()
		return zero, false
	}

	c.moveToFront(e)
	c.hits++
	metrics.CacheHits.WithLabelValues(c.name).Inc()
	return e.value, true
}

// Add inserts or refreshes key. When the cache is full the least recently
// used entry is evicted.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
	metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
}

// Remove deletes key. Returns true if it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok {
		c.removeEntry(e)
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
		return true
	}
	return false
}

// Len returns the current number of entries, expired or not.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes all entries.
func (c *LRU[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*entry[V], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	metrics.CacheSize.WithLabelValues(c.name).Set(0)
}

// CleanupExpired removes all expired entries and returns how many were dropped.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			c.removeEntry(e)
			removed++
		}
		e = prev
	}

	if removed > 0 {
		metrics.CacheEvictions.WithLabelValues(c.name).Add(float64(removed))
		metrics.CacheSize.WithLabelValues(c.name).Set(float64(len(c.items)))
	}
	return removed
}

// Stats returns hit/miss counters and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// Name returns the metrics label of the cache.
func (c *LRU[V]) Name() string {
	return c.name
}

// Internal methods (must be called with lock held)

func (c *LRU[V]) recordMiss() {
	c.misses++
	metrics.CacheMisses.WithLabelValues(c.name).Inc()
}

func (c *LRU[V]) addToFront(e *entry[V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[V]) moveToFront(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	c.addToFront(e)
}

func (c *LRU[V]) removeEntry(e *entry[V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
	delete(c.items, e.key)
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
	metrics.CacheEvictions.WithLabelValues(c.name).Inc()
}
