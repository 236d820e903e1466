package strategy

import (
	stderrors "errors"
	"testing"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/jmgilman/go/errors"
)

type fakeCell struct {
	text string
}

type fakeFactory struct{ built int }

func (f *fakeFactory) NewView(spec CellSpec) (View, error) {
	f.built++
	return &fakeCell{}, nil
}

// fakeLayout sizes a cell at 10 units per character, wrapping at width.
func fakeLayout(v View, width float64) geom.Size {
	c := v.(*fakeCell)
	w := float64(len(c.text)) * 10
	lines := 1.0
	for width > 0 && w > width {
		w -= width
		lines++
	}
	return geom.Size{Width: width, Height: lines * 20}
}

func TestMeasurer_ConfigureUsesLayoutAndPoolsView(t *testing.T) {
	t.Parallel()

	f := &fakeFactory{}
	m := NewMeasurer(f, LayoutMeasurerFunc(fakeLayout))
	s := Configure(CellSpec{TypeName: "TextCell"}, func(v View, obj any) error {
		v.(*fakeCell).text = obj.(string)
		return nil
	})

	short, err := m.Measure(ForIdentifier("text"), s, "abc", 100)
	if err != nil {
		t.Fatal(err)
	}
	long, err := m.Measure(ForIdentifier("text"), s, "abcdefghijklmnop", 100)
	if err != nil {
		t.Fatal(err)
	}
	if short.Height != 20 || long.Height != 40 {
		t.Fatalf("heights = %v/%v, want 20/40", short.Height, long.Height)
	}
	if f.built != 1 || m.Pooled() != 1 {
		t.Fatalf("views built=%d pooled=%d, want 1/1", f.built, m.Pooled())
	}

	m.Reset()
	if _, err := m.Measure(ForIdentifier("text"), s, "x", 100); err != nil {
		t.Fatal(err)
	}
	if f.built != 2 {
		t.Fatalf("Reset must drop pooled views, built=%d", f.built)
	}
}

func TestMeasurer_HeightTakesContainerWidth(t *testing.T) {
	t.Parallel()

	m := NewMeasurer(nil, nil)
	var seen View = "unset"
	s := Height(CellSpec{}, func(v View, _ any) (float64, error) {
		seen = v
		return 77, nil
	})
	got, err := m.Measure(AnyType(), s, nil, 375)
	if err != nil {
		t.Fatal(err)
	}
	if got != (geom.Size{Width: 375, Height: 77}) {
		t.Fatalf("got %+v", got)
	}
	if seen != nil {
		t.Fatalf("without a factory the view must be nil, got %v", seen)
	}
}

func TestMeasurer_SizeReturnsFunctionResult(t *testing.T) {
	t.Parallel()

	m := NewMeasurer(nil, nil)
	s := Size(CellSpec{}, func(View, any) (geom.Size, error) { return geom.Size{Width: 90, Height: 120}, nil })
	got, err := m.Measure(AnyType(), s, nil, 375)
	if err != nil || got != (geom.Size{Width: 90, Height: 120}) {
		t.Fatalf("got %+v err=%v", got, err)
	}
}

func TestMeasurer_FunctionErrorPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	boom := stderrors.New("model not loaded")
	m := NewMeasurer(nil, nil)
	s := Height(CellSpec{}, func(View, any) (float64, error) { return 0, boom })

	if _, err := m.Measure(AnyType(), s, nil, 0); err != boom {
		t.Fatalf("err = %v, want the function's own error", err)
	}
}

func TestMeasurer_ConfigureWithoutCollaborators(t *testing.T) {
	t.Parallel()

	m := NewMeasurer(nil, nil)
	s := Configure(CellSpec{}, func(View, any) error { return nil })
	_, err := m.Measure(AnyType(), s, nil, 0)
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("err = %v, want ErrMissingCollaborator", err)
	}
}

func TestMeasurer_EmptyStrategy(t *testing.T) {
	t.Parallel()

	_, err := NewMeasurer(nil, nil).Measure(AnyType(), Strategy{}, nil, 0)
	if !errors.Is(err, ErrInvalidStrategy) {
		t.Fatalf("err = %v, want ErrInvalidStrategy", err)
	}
}

func TestMeasurer_FactoryFailure(t *testing.T) {
	t.Parallel()

	nib := stderrors.New("nib missing")
	m := NewMeasurer(ViewFactoryFunc(func(CellSpec) (View, error) { return nil, nib }), nil)
	s := Height(CellSpec{TypeName: "Broken"}, func(View, any) (float64, error) { return 1, nil })

	_, err := m.Measure(AnyType(), s, nil, 0)
	if !errors.Is(err, nib) {
		t.Fatalf("err = %v, want wrapped factory error", err)
	}
	if m.Pooled() != 0 {
		t.Fatal("failed builds must not be pooled")
	}
}

func TestMeasurer_ReentrantSameKindRefused(t *testing.T) {
	t.Parallel()

	m := NewMeasurer(nil, nil)
	kind := ForIdentifier("Row")
	var inner error
	var s Strategy
	s = Height(CellSpec{}, func(View, any) (float64, error) {
		_, inner = m.Measure(kind, s, nil, 0)
		return 1, nil
	})

	if _, err := m.Measure(kind, s, nil, 0); err != nil {
		t.Fatalf("outer: %v", err)
	}
	if !errors.Is(inner, ErrReentrantMeasurement) {
		t.Fatalf("inner err = %v, want ErrReentrantMeasurement", inner)
	}
	if errors.GetCode(inner) != errors.CodeConflict {
		t.Fatalf("code = %v", errors.GetCode(inner))
	}
}

func TestMeasurer_NilObjectPassedThrough(t *testing.T) {
	t.Parallel()

	m := NewMeasurer(nil, nil)
	s := Height(CellSpec{}, func(_ View, obj any) (float64, error) {
		if obj != nil {
			t.Errorf("object = %v, want nil", obj)
		}
		return 44, nil
	})
	if got, err := m.Measure(AnyType(), s, nil, 0); err != nil || got.Height != 44 {
		t.Fatalf("got %+v err=%v", got, err)
	}
}
