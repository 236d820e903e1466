package sizecache

// RemoveReason explains why an entry left the cache.
type RemoveReason int

const (
	// RemoveInvalidated is an explicit removal of one key.
	RemoveInvalidated RemoveReason = iota
	// RemoveCleared is a whole-cache drop.
	RemoveCleared
	// RemoveCapacity is a trim performed to honour Options.Capacity.
	RemoveCapacity
)

// String returns a stable label for the reason.
func (r RemoveReason) String() string {
	switch r {
	case RemoveCleared:
		return "cleared"
	case RemoveCapacity:
		return "capacity"
	default:
		return "invalidated"
	}
}

// Metrics receives cache-level observability signals.
type Metrics interface {
	Hit()
	Miss()
	Remove(reason RemoveReason, n int)
	// Resize reports a change in the number of resident entries. Summing
	// the deltas of several caches gives their combined size.
	Resize(delta int)
}

// NoopMetrics discards every signal. It is the default.
type NoopMetrics struct{}

func (NoopMetrics) Hit()                     {}
func (NoopMetrics) Miss()                    {}
func (NoopMetrics) Remove(RemoveReason, int) {}
func (NoopMetrics) Resize(int)               {}

var _ Metrics = NoopMetrics{}
