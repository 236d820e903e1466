package strategy

import "github.com/IvanBrykalov/cellsize/geom"

// ConfigureFunc populates a scratch view from a model object (which may be nil).
type ConfigureFunc func(view View, object any) error

// HeightFunc computes a height directly. Width comes from the container.
type HeightFunc func(view View, object any) (float64, error)

// SizeFunc computes a full size directly.
type SizeFunc func(view View, object any) (geom.Size, error)

// Variant names the computation mode of a Strategy.
type Variant uint8

const (
	VariantNone Variant = iota
	VariantConfigure
	VariantHeight
	VariantSize
)

func (v Variant) String() string {
	switch v {
	case VariantConfigure:
		return "configure"
	case VariantHeight:
		return "height"
	case VariantSize:
		return "size"
	default:
		return "none"
	}
}

// Strategy is an immutable measurement recipe: how to build the scratch view
// and exactly one function that turns a model object into a size.
// Construct it with Configure, Height or Size.
type Strategy struct {
	cell      CellSpec
	configure ConfigureFunc
	height    HeightFunc
	size      SizeFunc
}

// Configure measures by populating the view and asking the layout pass for
// its natural size. Keep fn cheap; heavy constraint graphs slow down scrolling.
func Configure(cell CellSpec, fn ConfigureFunc) Strategy {
	return Strategy{cell: cell, configure: fn}
}

// Height measures with a function returning only the height.
func Height(cell CellSpec, fn HeightFunc) Strategy {
	return Strategy{cell: cell, height: fn}
}

// Size measures with a function returning width and height.
func Size(cell CellSpec, fn SizeFunc) Strategy {
	return Strategy{cell: cell, size: fn}
}

// Cell returns the view construction info.
func (s Strategy) Cell() CellSpec { return s.cell }

// Variant reports which function the strategy carries.
func (s Strategy) Variant() Variant {
	switch {
	case s.configure != nil:
		return VariantConfigure
	case s.height != nil:
		return VariantHeight
	case s.size != nil:
		return VariantSize
	default:
		return VariantNone
	}
}
