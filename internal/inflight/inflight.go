// Package inflight tracks which keys have a call in progress so that a
// reentrant call for the same key can be refused instead of corrupting
// single-slot state owned by the first call.
package inflight

import "github.com/jmgilman/go/errors"

// ErrBusy is returned by Do when key already has a call in progress.
var ErrBusy = errors.New(errors.CodeConflict, "inflight: call already in progress for key")

// Guard is a set of in-progress keys. The zero value is ready to use.
// A Guard has a single owner and does no locking; it protects against
// reentrancy, not against concurrent goroutines.
type Guard[K comparable] struct {
	m map[K]struct{}
}

// Do runs fn with key marked busy. If key is already busy, fn is not run
// and ErrBusy is returned. The mark is cleared even if fn panics.
func (g *Guard[K]) Do(key K, fn func() error) error {
	if g.m == nil {
		g.m = make(map[K]struct{})
	}
	if _, busy := g.m[key]; busy {
		return ErrBusy
	}
	g.m[key] = struct{}{}
	defer delete(g.m, key)

	return fn()
}

// Busy reports whether key has a call in progress.
func (g *Guard[K]) Busy(key K) bool {
	_, ok := g.m[key]
	return ok
}
