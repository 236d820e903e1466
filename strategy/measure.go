package strategy

import (
	stderrors "errors"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/internal/inflight"
	"github.com/jmgilman/go/errors"
)

// Measurer runs strategies. It owns one scratch view per kind, created on
// first use and reused for every later measurement of that kind, and it
// refuses to re-enter a kind that is already being measured.
type Measurer struct {
	factory ViewFactory
	layout  LayoutMeasurer

	views map[Kind]View
	guard inflight.Guard[Kind]
}

// NewMeasurer returns a Measurer. Either collaborator may be nil as long as
// no configure strategy is measured.
func NewMeasurer(factory ViewFactory, layout LayoutMeasurer) *Measurer {
	return &Measurer{
		factory: factory,
		layout:  layout,
		views:   make(map[Kind]View),
	}
}

// Measure produces the raw (unadjusted) size for object using s.
// width is the constraint for the configure variant and the reported width
// for the height variant. Errors from s's function are returned unchanged.
func (m *Measurer) Measure(kind Kind, s Strategy, object any, width float64) (geom.Size, error) {
	var out geom.Size
	err := m.guard.Do(kind, func() error {
		var err error
		out, err = m.measure(kind, s, object, width)
		return err
	})
	if stderrors.Is(err, inflight.ErrBusy) {
		return geom.Size{}, errors.Wrapf(ErrReentrantMeasurement, errors.CodeConflict,
			"%s is already being measured", kind)
	}
	return out, err
}

// Reset forgets every pooled scratch view.
func (m *Measurer) Reset() {
	m.views = make(map[Kind]View)
}

// Pooled returns the number of scratch views currently held.
func (m *Measurer) Pooled() int { return len(m.views) }

func (m *Measurer) measure(kind Kind, s Strategy, object any, width float64) (geom.Size, error) {
	switch s.Variant() {
	case VariantConfigure:
		if m.factory == nil || m.layout == nil {
			return geom.Size{}, errors.Wrapf(ErrMissingCollaborator, errors.CodeInvalidConfig,
				"%s uses a configure strategy", kind)
		}
		v, err := m.view(kind, s.cell)
		if err != nil {
			return geom.Size{}, err
		}
		if err := s.configure(v, object); err != nil {
			return geom.Size{}, err
		}
		return m.layout.MeasureNaturalSize(v, width), nil

	case VariantHeight:
		v, err := m.view(kind, s.cell)
		if err != nil {
			return geom.Size{}, err
		}
		h, err := s.height(v, object)
		if err != nil {
			return geom.Size{}, err
		}
		return geom.Size{Width: width, Height: h}, nil

	case VariantSize:
		v, err := m.view(kind, s.cell)
		if err != nil {
			return geom.Size{}, err
		}
		return s.size(v, object)

	default:
		return geom.Size{}, errors.Wrapf(ErrInvalidStrategy, errors.CodeInvalidInput, "%s", kind)
	}
}

// view returns the pooled scratch view for kind, building it on first use.
// Without a factory the functions receive a nil view.
func (m *Measurer) view(kind Kind, spec CellSpec) (View, error) {
	if v, ok := m.views[kind]; ok {
		return v, nil
	}
	if m.factory == nil {
		return nil, nil
	}
	v, err := m.factory.NewView(spec)
	if err != nil {
		return nil, errors.Wrapf(err, errors.CodeExecutionFailed, "building view %q for %s", spec.TypeName, kind)
	}
	m.views[kind] = v
	return v, nil
}
