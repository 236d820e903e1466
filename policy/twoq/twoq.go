// Package twoq implements a 2Q ordering for size caches.
//
// Scrolling through a long list touches every slot once. With plain LRU such
// a pass pushes out the handful of slots the user keeps returning to. 2Q keeps
// first-time entries in a bounded probation queue; only entries that are hit
// again (or come back shortly after being dropped) reach the main list.
package twoq

import (
	"container/list"

	"github.com/IvanBrykalov/cellsize/policy"
)

type twoQ[K comparable] struct {
	h policy.Hooks[K]

	probationCap int
	ghostCap     int

	// probation queue, newest at Front
	probation *list.List
	inProb    map[policy.Entry[K]]*list.Element

	// ghosts remember keys recently dropped from probation (keys only)
	ghosts  *list.List
	ghostOf map[K]*list.Element
}

type twoQPolicy[K comparable] struct {
	probationCap int
	ghostCap     int
}

// New returns a 2Q policy. probation bounds the first-time queue and ghosts
// bounds the memory of dropped keys; both are clamped to at least 1.
// A probation of about a screenful of items works well for list scrolling.
func New[K comparable](probation, ghosts int) policy.Policy[K] {
	if probation < 1 {
		probation = 1
	}
	if ghosts < 1 {
		ghosts = 1
	}
	return twoQPolicy[K]{probationCap: probation, ghostCap: ghosts}
}

// Bind implements policy.Policy.
func (p twoQPolicy[K]) Bind(h policy.Hooks[K]) policy.Tracker[K] {
	return &twoQ[K]{
		h:            h,
		probationCap: p.probationCap,
		ghostCap:     p.ghostCap,
		probation:    list.New(),
		inProb:       make(map[policy.Entry[K]]*list.Element),
		ghosts:       list.New(),
		ghostOf:      make(map[K]*list.Element),
	}
}

// Admitted places returning keys straight into the main list and everything
// else into probation. When probation overflows its oldest entry is the victim.
func (q *twoQ[K]) Admitted(e policy.Entry[K]) policy.Entry[K] {
	q.h.Push(e)

	k := e.Key()
	if g, ok := q.ghostOf[k]; ok {
		q.ghosts.Remove(g)
		delete(q.ghostOf, k)
		return nil
	}

	q.inProb[e] = q.probation.PushFront(e)
	if q.probation.Len() > q.probationCap {
		return q.probation.Back().Value.(policy.Entry[K])
	}
	return nil
}

// Accessed promotes a probation entry to the main list.
func (q *twoQ[K]) Accessed(e policy.Entry[K]) {
	if el, ok := q.inProb[e]; ok {
		q.probation.Remove(el)
		delete(q.inProb, e)
	}
	q.h.Touch(e)
}

func (q *twoQ[K]) Replaced(e policy.Entry[K]) { q.Accessed(e) }

// Dropped turns probation entries into ghosts. Main-list entries leave no trace.
func (q *twoQ[K]) Dropped(e policy.Entry[K]) {
	el, ok := q.inProb[e]
	if !ok {
		return
	}
	q.probation.Remove(el)
	delete(q.inProb, e)

	k := e.Key()
	if old, ok := q.ghostOf[k]; ok {
		q.ghosts.Remove(old)
	}
	q.ghostOf[k] = q.ghosts.PushFront(k)

	for q.ghosts.Len() > q.ghostCap {
		tail := q.ghosts.Back()
		delete(q.ghostOf, tail.Value.(K))
		q.ghosts.Remove(tail)
	}
}
