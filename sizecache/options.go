package sizecache

import (
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/policy"
)

// Options configures a Cache. Zero values are safe:
//   - Capacity <= 0 => unbounded
//   - nil Policy    => LRU
//   - nil Adjust    => sizes are stored as given
//   - nil Metrics   => NoopMetrics
type Options[K comparable] struct {
	// Capacity bounds the number of resident entries. Lists are usually small
	// enough that the default (no bound) is right.
	Capacity int

	// Policy orders entries for capacity trimming.
	Policy policy.Policy[K]

	// Adjust turns a raw measurement into the value that is stored. It runs
	// exactly once per Put; hits return the stored value untouched.
	Adjust func(raw geom.Size) geom.Size

	// OnRemove is called for every entry that leaves the cache, whatever the reason.
	OnRemove func(k K, s geom.Size, reason RemoveReason)

	Metrics Metrics
}
