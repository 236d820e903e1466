package cellsize

import (
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/IvanBrykalov/cellsize/sizecache"
)

// keyspace hides which sizecache a manager was built with. Each
// implementation ignores the half of its inputs that does not apply to
// its mode.
type keyspace interface {
	mode() KeyMode
	get(obj any, pos geom.Position) (geom.Size, bool, error)
	put(obj any, pos geom.Position, raw geom.Size) (geom.Size, error)
	removePositions(ps []geom.Position) int
	removeObjects(objs []any) (int, error)
	removeSections(pred func(section int) bool) int
	clear() int
	len() int
	stats() sizecache.Stats
}

// ---- position-keyed ----

type positionKeys struct {
	c *sizecache.Cache[geom.Position]
}

func (positionKeys) mode() KeyMode { return ModePosition }

func (k positionKeys) get(_ any, pos geom.Position) (geom.Size, bool, error) {
	s, ok := k.c.Get(pos)
	return s, ok, nil
}

func (k positionKeys) put(_ any, pos geom.Position, raw geom.Size) (geom.Size, error) {
	return k.c.Put(pos, raw), nil
}

func (k positionKeys) removePositions(ps []geom.Position) int { return k.c.RemoveAll(ps) }

func (positionKeys) removeObjects([]any) (int, error) { return 0, nil }

func (k positionKeys) removeSections(pred func(int) bool) int {
	return k.c.RemoveFunc(func(p geom.Position) bool { return pred(p.Section) })
}

func (k positionKeys) clear() int             { return k.c.Clear() }
func (k positionKeys) len() int               { return k.c.Len() }
func (k positionKeys) stats() sizecache.Stats { return k.c.Stats() }

// ---- identity-keyed ----

type identityKeys struct {
	c *sizecache.IdentityCache
}

func (identityKeys) mode() KeyMode { return ModeIdentity }

func (k identityKeys) get(obj any, _ geom.Position) (geom.Size, bool, error) {
	return k.c.Get(obj)
}

func (k identityKeys) put(obj any, _ geom.Position, raw geom.Size) (geom.Size, error) {
	return k.c.Put(obj, raw)
}

func (identityKeys) removePositions([]geom.Position) int { return 0 }

func (k identityKeys) removeObjects(objs []any) (int, error) { return k.c.RemoveAll(objs) }

func (identityKeys) removeSections(func(int) bool) int { return 0 }

func (k identityKeys) clear() int             { return k.c.Clear() }
func (k identityKeys) len() int               { return k.c.Len() }
func (k identityKeys) stats() sizecache.Stats { return k.c.Stats() }
