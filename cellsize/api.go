package cellsize

import (
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
)

// Size and Position are re-exported for callers that only import cellsize.
type (
	Size     = geom.Size
	Position = geom.Position
)

// Manager memoizes item sizes for one list.
//
// A Manager has a single owner: call it from the goroutine that drives the
// list's layout. It does no locking and none of its methods block on anything
// but the registered functions themselves.
type Manager interface {
	// Register inserts or replaces the strategy for kind.
	Register(kind strategy.Kind, s strategy.Strategy)

	// SizeFor returns the size of the item for obj at pos, measuring on a miss.
	// A hit never invokes a strategy.
	SizeFor(obj any, pos Position) (Size, error)
	// SizeForIdentifier is SizeFor with an explicit reuse identifier, which
	// takes precedence over type registrations.
	SizeForIdentifier(obj any, pos Position, identifier string) (Size, error)
	// HeightFor is SizeFor(...).Height.
	HeightFor(obj any, pos Position) (float64, error)
	// HeightForIdentifier is SizeForIdentifier(...).Height.
	HeightForIdentifier(obj any, pos Position, identifier string) (float64, error)

	// InvalidatePosition drops the size at pos (position mode).
	InvalidatePosition(pos Position) error
	// InvalidatePositions drops the sizes at every listed position (position mode).
	InvalidatePositions(ps []Position) error
	// InvalidateObject drops obj's size (identity mode).
	InvalidateObject(obj any) error
	// InvalidateObjects drops the sizes of every listed object (identity mode).
	InvalidateObjects(objs []any) error
	// InvalidateAll drops every cached size.
	InvalidateAll()
	// Apply handles one list mutation event.
	Apply(ev Event) error
	// AutoInvalidate subscribes to list and forwards its changes to Apply.
	// The returned function unsubscribes.
	AutoInvalidate(list ObservableList) (stop func())

	// SetHeightPadding changes the padding used by future measurements.
	// Already cached sizes keep the padding they were stored with; call
	// InvalidateAll to repad everything.
	SetHeightPadding(p float64)
	HeightPadding() float64

	// SetWidthOverride fixes the width used for measurement and storage and
	// drops every cached size. w <= 0 removes the override.
	SetWidthOverride(w float64)
	// ClearWidthOverride removes the override and drops every cached size.
	ClearWidthOverride()
	WidthOverride() (float64, bool)

	// SetContainerWidth records the list's natural width. When no override is
	// set and the width changes, every cached size is dropped.
	SetContainerWidth(w float64)
	ContainerWidth() float64

	Mode() KeyMode
	Len() int
	Stats() sizecache.Stats
}

// RegisterType registers s for model objects whose dynamic type is exactly T.
func RegisterType[T any](m Manager, s strategy.Strategy) {
	m.Register(strategy.ForType[T](), s)
}

// RegisterIdentifier registers s for a reuse identifier.
func RegisterIdentifier(m Manager, identifier string, s strategy.Strategy) {
	m.Register(strategy.ForIdentifier(identifier), s)
}

// RegisterDefault registers the catch-all strategy.
func RegisterDefault(m Manager, s strategy.Strategy) {
	m.Register(strategy.AnyType(), s)
}
