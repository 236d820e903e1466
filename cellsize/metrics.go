package cellsize

import (
	"time"

	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
)

// Metrics extends the cache hooks with measurement timing.
// NoopMetrics is used by default; metrics/prom exports to Prometheus.
type Metrics interface {
	sizecache.Metrics
	// Measure is called after every strategy invocation, failed or not.
	Measure(variant strategy.Variant, took time.Duration, err error)
}

// NoopMetrics discards every signal.
type NoopMetrics struct{ sizecache.NoopMetrics }

func (NoopMetrics) Measure(strategy.Variant, time.Duration, error) {}

var _ Metrics = NoopMetrics{}
