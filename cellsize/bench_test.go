package cellsize

import (
	"testing"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/strategy"
)

func BenchmarkManager_HeightForHit(b *testing.B) {
	m := New(Options{})
	RegisterType[*item](m, strategy.Height(strategy.CellSpec{}, func(_ strategy.View, obj any) (float64, error) {
		return 20 + float64(len(obj.(*item).title)), nil
	}))
	obj := &item{title: "bench"}
	if _, err := m.HeightFor(obj, geom.At(0, 0)); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.HeightFor(obj, geom.At(0, 0))
	}
}

func BenchmarkManager_MeasureMiss(b *testing.B) {
	m := New(Options{})
	RegisterType[*item](m, strategy.Height(strategy.CellSpec{}, func(_ strategy.View, obj any) (float64, error) {
		return 20 + float64(len(obj.(*item).title)), nil
	}))
	obj := &item{title: "bench"}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = m.HeightFor(obj, geom.At(0, i))
	}
}
