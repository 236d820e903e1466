package strategy

import "github.com/IvanBrykalov/cellsize/geom"

// View is the host toolkit's cell/item view. The core never looks inside it;
// it only hands it to the registered functions and the layout collaborator.
type View any

// CellSpec describes how to build the view for a kind. Only the ViewFactory
// interprets it.
type CellSpec struct {
	// TypeName names the cell class to instantiate. Required by most factories.
	TypeName string
	// NibName is an optional resource to load the cell from.
	NibName string
}

// ViewFactory instantiates scratch views used for measurement.
// The views are never presented.
type ViewFactory interface {
	NewView(spec CellSpec) (View, error)
}

// ViewFactoryFunc adapts a function to ViewFactory.
type ViewFactoryFunc func(spec CellSpec) (View, error)

// NewView implements ViewFactory.
func (f ViewFactoryFunc) NewView(spec CellSpec) (View, error) { return f(spec) }

// LayoutMeasurer is the auto-layout pass. It returns the natural fitting size
// of a configured view for the given width constraint.
type LayoutMeasurer interface {
	MeasureNaturalSize(view View, constrainedWidth float64) geom.Size
}

// LayoutMeasurerFunc adapts a function to LayoutMeasurer.
type LayoutMeasurerFunc func(view View, constrainedWidth float64) geom.Size

// MeasureNaturalSize implements LayoutMeasurer.
func (f LayoutMeasurerFunc) MeasureNaturalSize(view View, w float64) geom.Size { return f(view, w) }
