package sizecache

import (
	"reflect"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/jmgilman/go/errors"
)

// ErrInvalidModeUsage is returned when a query cannot produce a key for the
// cache's mode, e.g. an identity-keyed lookup without a model object.
var ErrInvalidModeUsage = errors.New(errors.CodeInvalidInput, "sizecache: invalid usage for cache mode")

// Identity is an opaque token standing for one model object. Tokens are
// handed out on first store and are never reused within a cache.
type Identity uint64

// Identifier lets value-typed model objects supply their own identity token.
// The returned value must be comparable and non-nil.
type Identifier interface {
	CacheIdentity() any
}

// identityKey is what the side table indexes by. Reference-shaped objects
// contribute their address, Identifiers their token; the dynamic type keeps
// equal tokens of different types apart.
type identityKey struct {
	typ   reflect.Type
	addr  uintptr
	token any
}

func identityKeyOf(obj any) (identityKey, error) {
	if obj == nil {
		return identityKey{}, errors.Wrap(ErrInvalidModeUsage, errors.CodeInvalidInput, "identity-keyed cache requires a model object")
	}
	typ := reflect.TypeOf(obj)

	if id, ok := obj.(Identifier); ok {
		tok := id.CacheIdentity()
		if tok == nil || !reflect.TypeOf(tok).Comparable() {
			return identityKey{}, errors.Wrapf(ErrInvalidModeUsage, errors.CodeInvalidInput,
				"%s returned a nil or non-comparable identity", typ)
		}
		return identityKey{typ: typ, token: tok}, nil
	}

	v := reflect.ValueOf(obj)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.UnsafePointer:
		if v.IsNil() {
			return identityKey{}, errors.Wrapf(ErrInvalidModeUsage, errors.CodeInvalidInput, "nil %s has no identity", typ)
		}
		return identityKey{typ: typ, addr: v.Pointer()}, nil
	default:
		return identityKey{}, errors.Wrapf(ErrInvalidModeUsage, errors.CodeInvalidInput,
			"%s has no identity: pass a pointer or implement Identifier", typ)
	}
}

// tracked pins the object while it has a cached size so that its address
// cannot be recycled for a different object under the same token.
type tracked struct {
	id  Identity
	obj any
}

// IdentityCache is a Cache keyed by model-object identity rather than by
// value equality. Two distinct pointers to equal structs get separate entries.
type IdentityCache struct {
	c    *Cache[Identity]
	ids  map[identityKey]tracked
	keys map[Identity]identityKey
	next Identity
}

// NewIdentity constructs an IdentityCache. opt.OnRemove, if set, still fires
// after the side table has been updated.
func NewIdentity(opt Options[Identity]) *IdentityCache {
	ic := &IdentityCache{
		ids:  make(map[identityKey]tracked),
		keys: make(map[Identity]identityKey),
	}
	user := opt.OnRemove
	opt.OnRemove = func(id Identity, s geom.Size, reason RemoveReason) {
		ic.forget(id)
		if user != nil {
			user(id, s, reason)
		}
	}
	ic.c = New(opt)
	return ic
}

// IdentityOf returns the token currently assigned to obj, if any.
func (ic *IdentityCache) IdentityOf(obj any) (Identity, bool) {
	k, err := identityKeyOf(obj)
	if err != nil {
		return 0, false
	}
	t, ok := ic.ids[k]
	return t.id, ok
}

// Get returns the stored size for obj.
func (ic *IdentityCache) Get(obj any) (geom.Size, bool, error) {
	k, err := identityKeyOf(obj)
	if err != nil {
		return geom.Size{}, false, err
	}
	t, ok := ic.ids[k]
	if !ok {
		ic.c.misses++
		ic.c.opt.Metrics.Miss()
		return geom.Size{}, false, nil
	}
	s, ok := ic.c.Get(t.id)
	return s, ok, nil
}

// Put stores the adjusted size for obj and returns it.
func (ic *IdentityCache) Put(obj any, raw geom.Size) (geom.Size, error) {
	k, err := identityKeyOf(obj)
	if err != nil {
		return geom.Size{}, err
	}
	t, ok := ic.ids[k]
	if !ok {
		ic.next++
		t = tracked{id: ic.next, obj: obj}
		ic.ids[k] = t
		ic.keys[t.id] = k
	}
	return ic.c.Put(t.id, raw), nil
}

// Remove deletes obj's entry and reports whether it was present.
func (ic *IdentityCache) Remove(obj any) (bool, error) {
	k, err := identityKeyOf(obj)
	if err != nil {
		return false, err
	}
	t, ok := ic.ids[k]
	if !ok {
		return false, nil
	}
	return ic.c.Remove(t.id), nil
}

// RemoveAll deletes the entries of every object that has an identity.
// Objects without one are skipped; the first such error is returned after
// the rest have been processed.
func (ic *IdentityCache) RemoveAll(objs []any) (int, error) {
	var (
		n     int
		first error
	)
	for _, obj := range objs {
		ok, err := ic.Remove(obj)
		if err != nil && first == nil {
			first = err
		}
		if ok {
			n++
		}
	}
	return n, first
}

// Clear drops every entry and the whole side table.
func (ic *IdentityCache) Clear() int {
	n := ic.c.Clear()
	ic.ids = make(map[identityKey]tracked)
	ic.keys = make(map[Identity]identityKey)
	return n
}

// Len returns the number of resident entries.
func (ic *IdentityCache) Len() int { return ic.c.Len() }

// Stats returns counters of the underlying cache.
func (ic *IdentityCache) Stats() Stats { return ic.c.Stats() }

func (ic *IdentityCache) forget(id Identity) {
	if k, ok := ic.keys[id]; ok {
		delete(ic.ids, k)
		delete(ic.keys, id)
	}
}
