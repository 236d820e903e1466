package cellsize

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
)

type manager struct {
	reg      *strategy.Registry
	measurer *strategy.Measurer
	keys     keyspace
	inv      *invalidator

	padding   float64
	override  float64 // 0 = unset
	container float64

	metrics Metrics
	log     *slog.Logger
}

// New constructs a Manager. It panics on an unknown Options.Mode.
func New(opt Options) Manager {
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Logger == nil {
		opt.Logger = slog.New(slog.DiscardHandler)
	}

	m := &manager{
		reg:       strategy.NewRegistry(),
		measurer:  strategy.NewMeasurer(opt.Views, opt.Layout),
		padding:   DefaultHeightPadding,
		container: opt.ContainerWidth,
		metrics:   opt.Metrics,
		log:       opt.Logger.With("component", "cellsize", "mode", opt.Mode.String()),
	}
	if opt.HeightPadding != nil {
		m.padding = *opt.HeightPadding
	}
	if opt.WidthOverride > 0 {
		m.override = opt.WidthOverride
	}

	switch opt.Mode {
	case ModePosition:
		m.keys = positionKeys{c: sizecache.New(sizecache.Options[geom.Position]{
			Capacity: opt.Capacity,
			Policy:   opt.PositionPolicy,
			Adjust:   m.adjust,
			Metrics:  opt.Metrics,
		})}
	case ModeIdentity:
		m.keys = identityKeys{c: sizecache.NewIdentity(sizecache.Options[sizecache.Identity]{
			Capacity: opt.Capacity,
			Policy:   opt.IdentityPolicy,
			Adjust:   m.adjust,
			Metrics:  opt.Metrics,
		})}
	default:
		panic(fmt.Sprintf("cellsize: unknown key mode %d", opt.Mode))
	}

	m.inv = &invalidator{keys: m.keys, strict: opt.Strict, log: m.log}
	return m
}

// adjust is the single place padding and the width override are applied.
// The cache calls it once per store; hits bypass it.
func (m *manager) adjust(raw geom.Size) geom.Size {
	out := geom.Size{Width: raw.Width, Height: raw.Height + m.padding}
	if m.override > 0 {
		out.Width = m.override
	}
	return out
}

func (m *manager) constrainedWidth() float64 {
	if m.override > 0 {
		return m.override
	}
	return m.container
}

// ---- registration ----

func (m *manager) Register(kind strategy.Kind, s strategy.Strategy) {
	m.reg.Register(kind, s)
	m.log.Debug("registered strategy", "kind", kind.String(), "variant", s.Variant().String(), "cell", s.Cell().TypeName)
}

// ---- queries ----

func (m *manager) SizeFor(obj any, pos Position) (Size, error) {
	return m.sizeFor(obj, pos, "")
}

func (m *manager) SizeForIdentifier(obj any, pos Position, identifier string) (Size, error) {
	return m.sizeFor(obj, pos, identifier)
}

func (m *manager) HeightFor(obj any, pos Position) (float64, error) {
	s, err := m.sizeFor(obj, pos, "")
	return s.Height, err
}

func (m *manager) HeightForIdentifier(obj any, pos Position, identifier string) (float64, error) {
	s, err := m.sizeFor(obj, pos, identifier)
	return s.Height, err
}

func (m *manager) sizeFor(obj any, pos Position, identifier string) (Size, error) {
	// fast path
	if s, ok, err := m.keys.get(obj, pos); err != nil || ok {
		return s, err
	}

	st, kind, err := m.reg.ResolveObject(obj, identifier)
	if err != nil {
		m.log.Warn("no measurement strategy", "type", fmt.Sprintf("%T", obj), "identifier", identifier, "position", pos.String())
		return Size{}, err
	}

	gen := m.inv.gen
	start := time.Now()
	raw, err := m.measurer.Measure(kind, st, obj, m.constrainedWidth())
	took := time.Since(start)
	m.metrics.Measure(st.Variant(), took, err)
	if err != nil {
		m.log.Debug("measurement failed", "kind", kind.String(), "position", pos.String(), "error", err)
		return Size{}, err
	}

	// The strategy invalidated or changed the width while it ran; raw may
	// describe a layout that no longer applies, so it is returned uncached.
	if m.inv.gen != gen {
		m.log.Debug("measurement overtaken by invalidation, not cached", "kind", kind.String(), "position", pos.String())
		return m.adjust(raw), nil
	}

	stored, err := m.keys.put(obj, pos, raw)
	if err != nil {
		return Size{}, err
	}
	m.log.Debug("measured", "kind", kind.String(), "variant", st.Variant().String(), "position", pos.String(),
		"width", stored.Width, "height", stored.Height, "took", took)
	return stored, nil
}

// ---- invalidation ----

func (m *manager) InvalidatePosition(pos Position) error {
	return m.inv.positions([]geom.Position{pos})
}

func (m *manager) InvalidatePositions(ps []Position) error { return m.inv.positions(ps) }

func (m *manager) InvalidateObject(obj any) error { return m.inv.objects([]any{obj}) }

func (m *manager) InvalidateObjects(objs []any) error { return m.inv.objects(objs) }

func (m *manager) InvalidateAll() { m.inv.all("explicit") }

func (m *manager) Apply(ev Event) error { return m.inv.apply(ev) }

// ---- parameters ----

func (m *manager) SetHeightPadding(p float64) {
	m.padding = p
	m.log.Debug("height padding changed", "padding", p, "stale_entries", m.keys.len())
}

func (m *manager) HeightPadding() float64 { return m.padding }

func (m *manager) SetWidthOverride(w float64) {
	if w <= 0 {
		m.ClearWidthOverride()
		return
	}
	m.override = w
	m.inv.all("width override")
}

func (m *manager) ClearWidthOverride() {
	m.override = 0
	m.inv.all("width override")
}

func (m *manager) WidthOverride() (float64, bool) { return m.override, m.override > 0 }

func (m *manager) SetContainerWidth(w float64) {
	if w == m.container {
		return
	}
	m.container = w
	if m.override == 0 {
		m.inv.all("container width")
	}
}

func (m *manager) ContainerWidth() float64 { return m.container }

// ---- introspection ----

func (m *manager) Mode() KeyMode          { return m.keys.mode() }
func (m *manager) Len() int               { return m.keys.len() }
func (m *manager) Stats() sizecache.Stats { return m.keys.stats() }
