package cellsize

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/IvanBrykalov/cellsize/geom"
	"github.com/stretchr/testify/require"
)

// fakeList is a minimal ObservableList.
type fakeList struct {
	observers []ListObserver
}

func (l *fakeList) AddObserver(o ListObserver) { l.observers = append(l.observers, o) }

func (l *fakeList) RemoveObserver(o ListObserver) {
	for i, x := range l.observers {
		if x == o {
			l.observers = append(l.observers[:i], l.observers[i+1:]...)
			return
		}
	}
}

func (l *fakeList) batch(fn func(o ListObserver)) {
	for _, o := range l.observers {
		o.WillChangeContent()
		fn(o)
		o.DidChangeContent()
	}
}

func TestAutoInvalidate_ForwardsChanges(t *testing.T) {
	t.Parallel()

	m := filled(t, Options{}, 3, 4)
	list := &fakeList{}
	stop := m.AutoInvalidate(list)
	require.Len(t, list.observers, 1)

	list.batch(func(o ListObserver) {
		o.ObjectChanged(Moved(nil, geom.At(0, 0), geom.At(0, 2)))
		o.ObjectChanged(Deleted(nil, geom.At(1, 3)))
	})
	got := cached(m)
	require.Len(t, got, 9)
	require.False(t, got[geom.At(0, 0)])
	require.False(t, got[geom.At(0, 2)])
	require.False(t, got[geom.At(1, 3)])

	list.batch(func(o ListObserver) { o.SectionChanged(ChangeReload, 2) })
	require.Equal(t, 5, m.Len())

	stop()
	stop()
	require.Empty(t, list.observers)

	list.batch(func(o ListObserver) { o.ObjectChanged(Reloaded(nil, geom.At(0, 1))) })
	require.Equal(t, 5, m.Len())
}

func TestAutoInvalidate_LogsFailures(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	m := filled(t, Options{Logger: logger}, 1, 2)
	list := &fakeList{}
	defer m.AutoInvalidate(list)()

	list.batch(func(o ListObserver) { o.ObjectChanged(Event{Kind: ChangeKind(9)}) })
	require.Contains(t, buf.String(), "list change not applied")
	require.Equal(t, 2, m.Len())
}

func TestAutoInvalidate_NestedBatches(t *testing.T) {
	t.Parallel()

	m := filled(t, Options{}, 1, 3)
	a := &autoInvalidator{m: m.(*manager)}

	a.WillChangeContent()
	a.WillChangeContent()
	a.ObjectChanged(Reloaded(nil, geom.At(0, 0)))
	a.DidChangeContent()
	require.Equal(t, 1, a.nesting)
	a.ObjectChanged(Reloaded(nil, geom.At(0, 1)))
	a.DidChangeContent()
	require.Zero(t, a.nesting)
	require.Equal(t, 2, a.batch)
	require.Equal(t, 1, m.Len())

	// unbalanced close is tolerated
	a.DidChangeContent()
	require.Zero(t, a.nesting)
}
