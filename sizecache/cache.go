package sizecache

import (
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/policy"
	"github.com/IvanBrykalov/cellsize/policy/lru"
)

// Cache maps one kind of key to stored sizes. The key type fixes the cache's
// mode for its whole lifetime: a Cache[geom.Position] can never hold identity
// keys and vice versa.
//
// A Cache has a single owner and does no locking.
type Cache[K comparable] struct {
	m    map[K]*entry[K]
	head *entry[K]
	tail *entry[K]
	len  int
	cap  int

	pol policy.Tracker[K]
	opt Options[K]

	hits   uint64
	misses uint64

	reported int // entry count last passed to Metrics.Resize
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// New constructs a Cache. See Options for defaults.
func New[K comparable](opt Options[K]) *Cache[K] {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New[K]()
	}
	c := &Cache[K]{
		m:   make(map[K]*entry[K]),
		cap: opt.Capacity,
		opt: opt,
	}
	c.pol = opt.Policy.Bind(hooks[K]{c: c})
	return c
}

// Get returns the stored size for k. Hits promote k according to the policy.
func (c *Cache[K]) Get(k K) (geom.Size, bool) {
	e, ok := c.m[k]
	if !ok {
		c.misses++
		c.opt.Metrics.Miss()
		return geom.Size{}, false
	}
	c.pol.Accessed(e)
	c.hits++
	c.opt.Metrics.Hit()
	return e.size, true
}

// Contains reports whether k is resident without touching counters or order.
func (c *Cache[K]) Contains(k K) bool {
	_, ok := c.m[k]
	return ok
}

// Put adjusts raw, stores the result under k and returns it.
func (c *Cache[K]) Put(k K, raw geom.Size) geom.Size {
	s := raw
	if c.opt.Adjust != nil {
		s = c.opt.Adjust(raw)
	}

	if e, ok := c.m[k]; ok {
		e.size = s
		c.pol.Replaced(e)
		c.report()
		return s
	}

	e := &entry[K]{key: k, size: s}
	c.m[k] = e
	if victim := c.pol.Admitted(e); victim != nil && c.cap > 0 {
		c.drop(victim.(*entry[K]), RemoveCapacity)
	}
	c.trim()
	return s
}

// Remove deletes k and reports whether it was present.
func (c *Cache[K]) Remove(k K) bool {
	e, ok := c.m[k]
	if !ok {
		return false
	}
	c.drop(e, RemoveInvalidated)
	c.report()
	return true
}

// RemoveAll deletes every listed key and returns how many were present.
func (c *Cache[K]) RemoveAll(keys []K) int {
	n := 0
	for _, k := range keys {
		if e, ok := c.m[k]; ok {
			c.drop(e, RemoveInvalidated)
			n++
		}
	}
	c.report()
	return n
}

// RemoveFunc deletes every key for which pred returns true.
func (c *Cache[K]) RemoveFunc(pred func(K) bool) int {
	var doomed []*entry[K]
	for k, e := range c.m {
		if pred(k) {
			doomed = append(doomed, e)
		}
	}
	for _, e := range doomed {
		c.drop(e, RemoveInvalidated)
	}
	c.report()
	return len(doomed)
}

// Clear drops every entry and returns how many there were.
// The policy is rebound so no ordering state survives.
func (c *Cache[K]) Clear() int {
	n := c.len
	if cb := c.opt.OnRemove; cb != nil {
		for k, e := range c.m {
			cb(k, e.size, RemoveCleared)
		}
	}
	c.m = make(map[K]*entry[K])
	c.head, c.tail, c.len = nil, nil, 0
	c.pol = c.opt.Policy.Bind(hooks[K]{c: c})
	if n > 0 {
		c.opt.Metrics.Remove(RemoveCleared, n)
	}
	c.report()
	return n
}

// Len returns the number of resident entries.
func (c *Cache[K]) Len() int { return c.len }

// Keys returns the resident keys, most recently used first.
func (c *Cache[K]) Keys() []K {
	keys := make([]K, 0, c.len)
	for e := c.head; e != nil; e = e.next {
		keys = append(keys, e.key)
	}
	return keys
}

// Stats returns hit/miss counters and the current size.
func (c *Cache[K]) Stats() Stats {
	return Stats{Hits: c.hits, Misses: c.misses, Entries: c.len}
}

// -------------------- internals --------------------

func (c *Cache[K]) drop(e *entry[K], reason RemoveReason) {
	c.pol.Dropped(e)
	c.unlink(e)
	delete(c.m, e.key)
	c.opt.Metrics.Remove(reason, 1)
	if cb := c.opt.OnRemove; cb != nil {
		cb(e.key, e.size, reason)
	}
}

// report sends the change in entry count since the last report.
func (c *Cache[K]) report() {
	if d := c.len - c.reported; d != 0 {
		c.reported = c.len
		c.opt.Metrics.Resize(d)
	}
}

// trim enforces Capacity by dropping from the tail.
func (c *Cache[K]) trim() {
	if c.cap > 0 {
		for c.len > c.cap && c.tail != nil {
			c.drop(c.tail, RemoveCapacity)
		}
	}
	c.report()
}

func (c *Cache[K]) pushFront(e *entry[K]) {
	e.prev = nil
	e.next = c.head
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
	c.len++
}

func (c *Cache[K]) moveToFront(e *entry[K]) {
	if e == c.head {
		return
	}
	c.unlink(e)
	c.pushFront(e)
}

func (c *Cache[K]) unlink(e *entry[K]) {
	if e.prev == nil && e.next == nil && c.head != e {
		return // not linked
	}
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.head == e {
		c.head = e.next
	}
	if c.tail == e {
		c.tail = e.prev
	}
	e.prev, e.next = nil, nil
	c.len--
}

// -------------------- policy hooks --------------------

type hooks[K comparable] struct{ c *Cache[K] }

func (h hooks[K]) Touch(e policy.Entry[K])  { h.c.moveToFront(e.(*entry[K])) }
func (h hooks[K]) Push(e policy.Entry[K])   { h.c.pushFront(e.(*entry[K])) }
func (h hooks[K]) Unlink(e policy.Entry[K]) { h.c.unlink(e.(*entry[K])) }
func (h hooks[K]) Oldest() policy.Entry[K] {
	if h.c.tail == nil {
		return nil
	}
	return h.c.tail
}
func (h hooks[K]) Len() int { return h.c.len }
