// Package policy defines the ordering contract a size cache uses when it is
// bounded by a capacity. Unbounded caches still feed the policy so that
// switching a capacity on later needs no special casing.
package policy

// Entry is the minimal view of a cached measurement a policy needs.
type Entry[K comparable] interface {
	Key() K
}

// Hooks expose O(1) operations on the cache's recency list.
// The cache provides the implementation; the list head is the most recently
// used entry and the tail is the eviction candidate.
//
// Hooks only manage the list. The cache owns the key->entry map.
type Hooks[K comparable] interface {
	// Touch moves the entry to the head.
	Touch(Entry[K])
	// Push links a freshly admitted entry at the head.
	Push(Entry[K])
	// Unlink detaches the entry from the list.
	Unlink(Entry[K])
	// Oldest returns the tail entry, or nil when the list is empty.
	Oldest() Entry[K]
	// Len returns the number of linked entries.
	Len() int
}

// Tracker is a policy instance bound to one cache.
//
// Semantics:
//   - Admitted may return a victim. The cache removes it and then calls
//     Dropped for it.
//   - Accessed and Replaced usually promote the entry.
//   - Dropped notifies the policy that the cache removed an entry for any
//     reason (invalidation, clear, capacity).
type Tracker[K comparable] interface {
	Admitted(Entry[K]) (victim Entry[K])
	Accessed(Entry[K])
	Replaced(Entry[K])
	Dropped(Entry[K])
}

// Policy builds a Tracker bound to a cache's hooks.
type Policy[K comparable] interface {
	Bind(Hooks[K]) Tracker[K]
}
