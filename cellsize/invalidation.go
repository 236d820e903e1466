package cellsize

import (
	"log/slog"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/jmgilman/go/errors"
)

// invalidator turns coarse events into precise cache removals.
//
// Calls from the wrong key family are no-ops so that a collaborator wired to
// both paths cannot break the list; with strict set they are reported as
// ErrInvalidModeUsage instead.
type invalidator struct {
	keys   keyspace
	strict bool
	log    *slog.Logger

	// gen advances on every removal request, so a measurement can tell
	// whether the cache changed under it.
	gen uint64
}

func (v *invalidator) wrongFamily(op string) error {
	if !v.strict {
		v.log.Debug("invalidation ignored for key mode", "op", op, "mode", v.keys.mode())
		return nil
	}
	return errors.Wrapf(ErrInvalidModeUsage, errors.CodeInvalidInput,
		"%s on a %s-keyed cache", op, v.keys.mode())
}

func (v *invalidator) positions(ps []geom.Position) error {
	if v.keys.mode() != ModePosition {
		return v.wrongFamily("position invalidation")
	}
	v.gen++
	n := v.keys.removePositions(ps)
	v.log.Debug("invalidated positions", "requested", len(ps), "removed", n)
	return nil
}

func (v *invalidator) objects(objs []any) error {
	if v.keys.mode() != ModeIdentity {
		return v.wrongFamily("object invalidation")
	}
	v.gen++
	n, err := v.keys.removeObjects(objs)
	v.log.Debug("invalidated objects", "requested", len(objs), "removed", n)
	return err
}

func (v *invalidator) all(why string) {
	v.gen++
	n := v.keys.clear()
	v.log.Debug("cleared size cache", "reason", why, "removed", n)
}

// apply handles one list mutation. Position mode drops every slot the event
// touches (both ends of a move); identity mode drops the event's object.
// Events lacking what the mode needs are no-ops.
func (v *invalidator) apply(ev Event) error {
	switch ev.Kind {
	case ChangeInsert, ChangeDelete, ChangeMove, ChangeReload:
	default:
		return errors.Wrapf(ErrUnknownChange, errors.CodeInvalidInput, "change kind %d", ev.Kind)
	}

	switch v.keys.mode() {
	case ModePosition:
		ps := ev.positions()
		if len(ps) == 0 {
			return nil
		}
		v.gen++
		n := v.keys.removePositions(ps)
		v.log.Debug("list change", "kind", ev.Kind, "positions", len(ps), "removed", n)
		return nil
	default:
		if ev.Object == nil {
			return nil
		}
		v.gen++
		n, err := v.keys.removeObjects([]any{ev.Object})
		v.log.Debug("list change", "kind", ev.Kind, "removed", n)
		return err
	}
}

// section handles a whole-section change. Inserting or deleting a section
// shifts every later section, so those slots go too; a reload touches only
// its own section. Identity keys survive section changes.
func (v *invalidator) section(kind ChangeKind, section int) error {
	if v.keys.mode() != ModePosition {
		return nil
	}
	v.gen++
	var n int
	switch kind {
	case ChangeReload:
		n = v.keys.removeSections(func(s int) bool { return s == section })
	case ChangeInsert, ChangeDelete, ChangeMove:
		n = v.keys.removeSections(func(s int) bool { return s >= section })
	default:
		return errors.Wrapf(ErrUnknownChange, errors.CodeInvalidInput, "section change kind %d", kind)
	}
	v.log.Debug("section change", "kind", kind, "section", section, "removed", n)
	return nil
}
