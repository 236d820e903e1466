package prom

import (
	"time"

	"github.com/IvanBrykalov/cellsize/cellsize"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
	"github.com/prometheus/client_golang/prometheus"
)

// Adapter implements cellsize.Metrics and exports Prometheus collectors.
// Collectors are goroutine-safe, so one Adapter may serve many managers;
// the entries gauge then holds their combined size.
type Adapter struct {
	hits     prometheus.Counter
	misses   prometheus.Counter
	removals *prometheus.CounterVec
	entries  prometheus.Gauge
	measure  *prometheus.HistogramVec
}

// New constructs a Prometheus metrics adapter.
//   - reg:          registry to register metrics with (nil => prometheus.DefaultRegisterer)
//   - ns, sub:      Prometheus namespace and subsystem
//   - constLabels:  static labels applied to all metrics (may be nil)
func New(reg prometheus.Registerer, ns, sub string, constLabels prometheus.Labels) *Adapter {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	a := &Adapter{
		hits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "hits_total",
			Help:        "Size lookups answered from the cache",
			ConstLabels: constLabels,
		}),
		misses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "misses_total",
			Help:        "Size lookups that required a measurement",
			ConstLabels: constLabels,
		}),
		removals: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "removals_total",
				Help:        "Cached sizes dropped, by reason",
				ConstLabels: constLabels,
			},
			[]string{"reason"},
		),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   ns,
			Subsystem:   sub,
			Name:        "size_entries",
			Help:        "Number of cached sizes across every manager using this adapter",
			ConstLabels: constLabels,
		}),
		measure: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace:   ns,
				Subsystem:   sub,
				Name:        "measure_seconds",
				Help:        "Strategy invocation latency, by variant and outcome",
				ConstLabels: constLabels,
				Buckets:     prometheus.ExponentialBuckets(1e-6, 4, 10),
			},
			[]string{"variant", "status"},
		),
	}
	reg.MustRegister(a.hits, a.misses, a.removals, a.entries, a.measure)
	return a
}

// Hit increments the hit counter.
func (a *Adapter) Hit() { a.hits.Inc() }

// Miss increments the miss counter.
func (a *Adapter) Miss() { a.misses.Inc() }

// Remove adds n to the removal counter for reason.
func (a *Adapter) Remove(r sizecache.RemoveReason, n int) {
	if n <= 0 {
		return
	}
	a.removals.WithLabelValues(r.String()).Add(float64(n))
}

// Resize applies a cache's change in entry count to the entries gauge.
func (a *Adapter) Resize(delta int) { a.entries.Add(float64(delta)) }

// Measure observes one strategy invocation.
func (a *Adapter) Measure(v strategy.Variant, took time.Duration, err error) {
	a.measure.WithLabelValues(v.String(), status(err)).Observe(took.Seconds())
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Compile-time check: ensure Adapter implements cellsize.Metrics.
var _ cellsize.Metrics = (*Adapter)(nil)
