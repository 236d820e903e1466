package strategy

import (
	"reflect"
	"strconv"
)

// Basis says what a Kind is keyed on.
type Basis uint8

const (
	// ByType keys on the model object's dynamic type. A nil type is the catch-all.
	ByType Basis = iota
	// ByIdentifier keys on a caller-chosen reuse identifier.
	ByIdentifier
)

// Kind identifies one registered strategy. It is comparable and used as a
// map key; build it with ForType, AnyType or ForIdentifier.
type Kind struct {
	basis Basis
	typ   reflect.Type
	id    string
}

// ForType returns the Kind for model objects whose dynamic type is exactly T.
// The type descriptor is captured once here, not on every lookup.
func ForType[T any]() Kind {
	return Kind{basis: ByType, typ: reflect.TypeFor[T]()}
}

// TypeOf returns the Kind for the dynamic type of obj.
// A nil obj yields the catch-all.
func TypeOf(obj any) Kind {
	return Kind{basis: ByType, typ: reflect.TypeOf(obj)}
}

// AnyType returns the catch-all Kind used when nothing more specific matches.
func AnyType() Kind { return Kind{basis: ByType} }

// ForIdentifier returns the Kind for a reuse identifier. An empty identifier
// means every cell shares one identifier and maps to the catch-all.
func ForIdentifier(id string) Kind {
	if id == "" {
		return AnyType()
	}
	return Kind{basis: ByIdentifier, id: id}
}

// Basis reports what the Kind is keyed on.
func (k Kind) Basis() Basis { return k.basis }

// Type returns the model type for ByType kinds (nil for the catch-all).
func (k Kind) Type() reflect.Type { return k.typ }

// Identifier returns the reuse identifier for ByIdentifier kinds.
func (k Kind) Identifier() string { return k.id }

// IsCatchAll reports whether k is the catch-all.
func (k Kind) IsCatchAll() bool { return k.basis == ByType && k.typ == nil }

// String is used in log lines and metric labels.
func (k Kind) String() string {
	switch {
	case k.basis == ByIdentifier:
		return "id:" + k.id
	case k.typ == nil:
		return "any"
	default:
		return "type:" + k.typ.String()
	}
}

// GoString makes %#v output readable in test failures.
func (k Kind) GoString() string { return "strategy.Kind(" + strconv.Quote(k.String()) + ")" }
