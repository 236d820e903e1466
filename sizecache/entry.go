package sizecache

import "github.com/IvanBrykalov/cellsize/geom"

// entry is an intrusive recency-list element owned by a Cache.
type entry[K comparable] struct {
	key  K
	size geom.Size

	// head is most recent, tail is the trim candidate
	prev *entry[K]
	next *entry[K]
}

// Key implements policy.Entry.
func (e *entry[K]) Key() K { return e.key }
