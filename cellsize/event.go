package cellsize

import (
	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/jmgilman/go/errors"
)

// ChangeKind is the kind of a list mutation.
type ChangeKind uint8

const (
	ChangeInsert ChangeKind = iota + 1
	ChangeDelete
	ChangeMove
	ChangeReload
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeInsert:
		return "insert"
	case ChangeDelete:
		return "delete"
	case ChangeMove:
		return "move"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Event is one list mutation as reported by a list-change producer.
// Old and New are optional; inserts usually carry only New, deletes only Old.
type Event struct {
	Kind   ChangeKind
	Object any
	Old    *geom.Position
	New    *geom.Position
}

// Inserted describes obj appearing at at.
func Inserted(obj any, at geom.Position) Event {
	return Event{Kind: ChangeInsert, Object: obj, New: &at}
}

// Deleted describes obj leaving from.
func Deleted(obj any, from geom.Position) Event {
	return Event{Kind: ChangeDelete, Object: obj, Old: &from}
}

// Moved describes obj moving from one position to another.
func Moved(obj any, from, to geom.Position) Event {
	return Event{Kind: ChangeMove, Object: obj, Old: &from, New: &to}
}

// Reloaded describes obj changing in place.
func Reloaded(obj any, at geom.Position) Event {
	return Event{Kind: ChangeReload, Object: obj, Old: &at}
}

// positions returns every position the event touches, old first.
func (e Event) positions() []geom.Position {
	ps := make([]geom.Position, 0, 2)
	if e.Old != nil {
		ps = append(ps, *e.Old)
	}
	if e.New != nil && (e.Old == nil || *e.New != *e.Old) {
		ps = append(ps, *e.New)
	}
	return ps
}

// Fetched-results change codes, as delivered by results-controller style
// producers.
const (
	ResultsInsert = 1
	ResultsDelete = 2
	ResultsMove   = 3
	ResultsUpdate = 4
)

// EventFromResultsChange maps a results-controller change notification onto
// an Event. Positions may be nil when the producer does not supply them.
func EventFromResultsChange(changeType int, oldPos, newPos *geom.Position, obj any) (Event, error) {
	var k ChangeKind
	switch changeType {
	case ResultsInsert:
		k = ChangeInsert
	case ResultsDelete:
		k = ChangeDelete
	case ResultsMove:
		k = ChangeMove
	case ResultsUpdate:
		k = ChangeReload
	default:
		return Event{}, errors.Wrapf(ErrUnknownChange, errors.CodeInvalidInput, "results change type %d", changeType)
	}
	return Event{Kind: k, Object: obj, Old: oldPos, New: newPos}, nil
}
