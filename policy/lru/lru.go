// Package lru implements least-recently-used ordering for size caches.
package lru

import "github.com/IvanBrykalov/cellsize/policy"

type lru[K comparable] struct {
	h policy.Hooks[K]
}

type lruPolicy[K comparable] struct{}

// New returns an LRU policy. It is the default when no policy is configured.
func New[K comparable]() policy.Policy[K] { return lruPolicy[K]{} }

// Bind implements policy.Policy.
func (lruPolicy[K]) Bind(h policy.Hooks[K]) policy.Tracker[K] {
	return &lru[K]{h: h}
}

// Admitted links the entry at the head. Capacity trimming is done by the
// cache itself, so LRU never nominates a victim here.
func (p *lru[K]) Admitted(e policy.Entry[K]) policy.Entry[K] {
	p.h.Push(e)
	return nil
}

func (p *lru[K]) Accessed(e policy.Entry[K]) { p.h.Touch(e) }

// Replaced treats a re-measurement as a use.
func (p *lru[K]) Replaced(e policy.Entry[K]) { p.h.Touch(e) }

func (p *lru[K]) Dropped(policy.Entry[K]) {}
