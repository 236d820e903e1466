package cellsize

import (
	"log/slog"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/policy"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
)

// DefaultHeightPadding is added to every measured height unless Options
// says otherwise. Table views draw their separator inside the cell's
// height, so one unit keeps content from being clipped.
const DefaultHeightPadding = 1.0

// KeyMode selects how cached sizes are keyed. It is fixed for a manager's lifetime.
type KeyMode uint8

const (
	// ModePosition keys by list position. Two objects at the same position
	// share a slot.
	ModePosition KeyMode = iota
	// ModeIdentity keys by model-object identity, independent of position.
	ModeIdentity
)

func (m KeyMode) String() string {
	switch m {
	case ModePosition:
		return "position"
	case ModeIdentity:
		return "identity"
	default:
		return "unknown"
	}
}

// Options configures a Manager. Zero values are safe; New applies defaults:
//   - nil HeightPadding    => DefaultHeightPadding
//   - WidthOverride <= 0   => no override
//   - Capacity <= 0        => unbounded cache
//   - nil policies         => LRU (only relevant with a Capacity)
//   - nil Metrics          => NoopMetrics
//   - nil Logger           => discard
type Options struct {
	Mode KeyMode

	// HeightPadding is added to the final height of every measurement.
	// Use Padding(0) for lists without separators.
	HeightPadding *float64

	// WidthOverride replaces the container width both as the layout
	// constraint and as the stored width.
	WidthOverride float64

	// ContainerWidth is the list's natural width, used when no override is set.
	ContainerWidth float64

	// Capacity optionally bounds the number of cached sizes.
	Capacity       int
	PositionPolicy policy.Policy[geom.Position]
	IdentityPolicy policy.Policy[sizecache.Identity]

	// Collaborators for configure strategies. Height and size strategies
	// work without them (their functions then receive a nil view).
	Views  strategy.ViewFactory
	Layout strategy.LayoutMeasurer

	// Strict turns invalidations of the wrong key family into
	// ErrInvalidModeUsage instead of silent no-ops.
	Strict bool

	// Observability
	Metrics Metrics
	Logger  *slog.Logger
}

// Padding returns a pointer to p for Options.HeightPadding.
func Padding(p float64) *float64 { return &p }
