package strategy

import (
	"reflect"
	"sort"

	"github.com/jmgilman/go/errors"
)

// Registry maps kinds to strategies. It has a single owner and does no locking.
type Registry struct {
	byKind map[Kind]Strategy
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byKind: make(map[Kind]Strategy)}
}

// Register inserts s under kind, silently replacing any earlier registration.
func (r *Registry) Register(kind Kind, s Strategy) {
	r.byKind[kind] = s
}

// Resolve picks the strategy for a query. Order:
//  1. the identifier registration, when identifier is non-empty;
//  2. the registration for exactly objectType;
//  3. the catch-all;
//  4. ErrStrategyNotFound.
//
// Identifier registrations win over type registrations because naming a
// reuse identifier is the more specific request.
func (r *Registry) Resolve(objectType reflect.Type, identifier string) (Strategy, Kind, error) {
	if identifier != "" {
		k := Kind{basis: ByIdentifier, id: identifier}
		if s, ok := r.byKind[k]; ok {
			return s, k, nil
		}
	}
	if objectType != nil {
		k := Kind{basis: ByType, typ: objectType}
		if s, ok := r.byKind[k]; ok {
			return s, k, nil
		}
	}
	if s, ok := r.byKind[AnyType()]; ok {
		return s, AnyType(), nil
	}
	return Strategy{}, Kind{}, errors.WrapWithContext(ErrStrategyNotFound, errors.CodeNotFound,
		"no strategy for query", map[string]interface{}{
			"type":       typeName(objectType),
			"identifier": identifier,
		})
}

// ResolveObject resolves using the dynamic type of obj (nil skips step 2).
func (r *Registry) ResolveObject(obj any, identifier string) (Strategy, Kind, error) {
	return r.Resolve(reflect.TypeOf(obj), identifier)
}

// Lookup returns the strategy registered under exactly kind.
func (r *Registry) Lookup(kind Kind) (Strategy, bool) {
	s, ok := r.byKind[kind]
	return s, ok
}

// Len returns the number of registrations.
func (r *Registry) Len() int { return len(r.byKind) }

// Kinds returns the registered kinds sorted by their string form.
func (r *Registry) Kinds() []Kind {
	out := make([]Kind, 0, len(r.byKind))
	for k := range r.byKind {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}
