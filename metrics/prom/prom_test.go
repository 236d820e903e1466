package prom

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/IvanBrykalov/cellsize/cellsize"
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestAdapter_Counters(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	a := New(reg, "cellsize", "test", prometheus.Labels{"list": "feed"})

	a.Hit()
	a.Hit()
	a.Miss()
	a.Remove(sizecache.RemoveCleared, 3)
	a.Remove(sizecache.RemoveInvalidated, 0)
	a.Resize(9)
	a.Resize(-2)

	require.Equal(t, 2.0, testutil.ToFloat64(a.hits))
	require.Equal(t, 1.0, testutil.ToFloat64(a.misses))
	require.Equal(t, 3.0, testutil.ToFloat64(a.removals.WithLabelValues("cleared")))
	require.Equal(t, 7.0, testutil.ToFloat64(a.entries))

	want := `
# HELP cellsize_test_removals_total Cached sizes dropped, by reason
# TYPE cellsize_test_removals_total counter
cellsize_test_removals_total{list="feed",reason="cleared"} 3
`
	require.NoError(t, testutil.CollectAndCompare(a.removals, strings.NewReader(want)))
}

func TestAdapter_MeasureLabels(t *testing.T) {
	t.Parallel()

	a := New(prometheus.NewRegistry(), "cellsize", "test", nil)
	a.Measure(strategy.VariantHeight, time.Millisecond, nil)
	a.Measure(strategy.VariantHeight, time.Millisecond, errors.New("x"))
	a.Measure(strategy.VariantConfigure, time.Microsecond, nil)

	require.Equal(t, 3, testutil.CollectAndCount(a.measure))
}

func TestAdapter_WithManager(t *testing.T) {
	t.Parallel()

	a := New(prometheus.NewRegistry(), "cellsize", "test", nil)
	m := cellsize.New(cellsize.Options{Metrics: a})
	cellsize.RegisterDefault(m, strategy.Height(strategy.CellSpec{}, func(strategy.View, any) (float64, error) {
		return 10, nil
	}))

	for i := 0; i < 3; i++ {
		_, err := m.SizeFor(nil, geom.At(0, i))
		require.NoError(t, err)
	}
	_, err := m.SizeFor(nil, geom.At(0, 0))
	require.NoError(t, err)
	m.InvalidateAll()

	require.Equal(t, 1.0, testutil.ToFloat64(a.hits))
	require.Equal(t, 3.0, testutil.ToFloat64(a.misses))
	require.Equal(t, 3.0, testutil.ToFloat64(a.removals.WithLabelValues("cleared")))
	require.Equal(t, 0.0, testutil.ToFloat64(a.entries))
}

func TestAdapter_EntriesSumAcrossManagers(t *testing.T) {
	t.Parallel()

	a := New(prometheus.NewRegistry(), "cellsize", "test", nil)
	height := strategy.Height(strategy.CellSpec{}, func(strategy.View, any) (float64, error) { return 10, nil })

	m1 := cellsize.New(cellsize.Options{Metrics: a})
	m2 := cellsize.New(cellsize.Options{Metrics: a})
	cellsize.RegisterDefault(m1, height)
	cellsize.RegisterDefault(m2, height)

	for i := 0; i < 5; i++ {
		_, err := m1.SizeFor(nil, geom.At(0, i))
		require.NoError(t, err)
	}
	_, err := m2.SizeFor(nil, geom.At(0, 0))
	require.NoError(t, err)
	require.Equal(t, 6.0, testutil.ToFloat64(a.entries))

	require.NoError(t, m1.InvalidatePosition(geom.At(0, 4)))
	require.Equal(t, 5.0, testutil.ToFloat64(a.entries))

	m2.InvalidateAll()
	require.Equal(t, float64(m1.Len()), testutil.ToFloat64(a.entries))

	m1.InvalidateAll()
	require.Zero(t, testutil.ToFloat64(a.entries))
}
