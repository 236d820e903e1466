package cellsize

// ListObserver receives change notifications from an observable list.
// Calls arrive on the list owner's goroutine, which must be the manager's.
type ListObserver interface {
	// WillChangeContent opens a batch of changes.
	WillChangeContent()
	// ObjectChanged reports one item mutation.
	ObjectChanged(ev Event)
	// SectionChanged reports a whole section being inserted, deleted or reloaded.
	SectionChanged(kind ChangeKind, section int)
	// DidChangeContent closes the batch.
	DidChangeContent()
}

// ObservableList is an ordered collection that notifies observers of changes.
type ObservableList interface {
	AddObserver(o ListObserver)
	RemoveObserver(o ListObserver)
}

// autoInvalidator forwards list notifications to a manager. Notification
// methods cannot return errors, so failures are logged.
type autoInvalidator struct {
	m       *manager
	batch   int // changes seen in the current batch
	nesting int
}

func (a *autoInvalidator) WillChangeContent() {
	if a.nesting == 0 {
		a.batch = 0
	}
	a.nesting++
}

func (a *autoInvalidator) ObjectChanged(ev Event) {
	a.batch++
	if err := a.m.inv.apply(ev); err != nil {
		a.m.log.Warn("list change not applied", "kind", ev.Kind, "error", err)
	}
}

func (a *autoInvalidator) SectionChanged(kind ChangeKind, section int) {
	a.batch++
	if err := a.m.inv.section(kind, section); err != nil {
		a.m.log.Warn("section change not applied", "kind", kind, "section", section, "error", err)
	}
}

func (a *autoInvalidator) DidChangeContent() {
	if a.nesting > 0 {
		a.nesting--
	}
	if a.nesting == 0 {
		a.m.log.Debug("list batch applied", "changes", a.batch, "entries", a.m.keys.len())
	}
}

func (m *manager) AutoInvalidate(list ObservableList) func() {
	a := &autoInvalidator{m: m}
	list.AddObserver(a)
	stopped := false
	return func() {
		if stopped {
			return
		}
		stopped = true
		list.RemoveObserver(a)
	}
}

var _ ListObserver = (*autoInvalidator)(nil)
