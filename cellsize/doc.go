// Package cellsize memoizes the layout size of repeatable list items so a
// list renderer measures each item at most once between invalidations.
//
// Design
//
//   - Strategies: callers register, per item kind, one of three measurement
//     recipes (package strategy): configure a scratch view and let the layout
//     pass size it, compute a height directly, or compute a full size
//     directly. Kinds are a model type, a reuse identifier, or the catch-all.
//     A reuse identifier always wins over a type.
//
//   - Keys: a Manager caches by list position (ModePosition) or by model
//     object identity (ModeIdentity). The mode is fixed at construction.
//     Identity means the same object, not an equal one: pointers, maps and
//     channels use their address, other values must implement
//     sizecache.Identifier.
//
//   - Adjustment: HeightPadding is added to the final height and
//     WidthOverride replaces the width exactly once, when a size is stored.
//     Hits return the stored value untouched.
//
//   - Invalidation: explicit (position, positions, object, objects, all),
//     list events (Apply, AutoInvalidate) and parameter changes. Setting the
//     width override drops everything; changing the padding drops nothing,
//     so entries cached before the change keep the old padding until they
//     are invalidated.
//
//   - Concurrency: none. A Manager belongs to the goroutine that lays out
//     its list. Re-entering the same kind from inside its own strategy
//     returns ErrReentrantMeasurement. A strategy that invalidates or
//     changes the width while it runs gets its result returned but not
//     cached; the next query measures again.
//
// Basic usage
//
//	m := cellsize.New(cellsize.Options{ContainerWidth: 375})
//	cellsize.RegisterIdentifier(m, "Row", strategy.Height(
//	    strategy.CellSpec{TypeName: "RowCell"},
//	    func(_ strategy.View, obj any) (float64, error) {
//	        return 20 + float64(len(obj.(*Row).Title)), nil
//	    },
//	))
//	h, err := m.HeightForIdentifier(row, geom.At(0, 0), "Row")
//
// Identity keys with list events
//
//	m := cellsize.New(cellsize.Options{Mode: cellsize.ModeIdentity})
//	cellsize.RegisterType[*Message](m, strategy.Configure(spec, configure))
//	...
//	_ = m.Apply(cellsize.Moved(msg, geom.At(0, 3), geom.At(0, 7)))
//
// Errors are coded (github.com/jmgilman/go/errors): ErrStrategyNotFound is
// NOT_FOUND, ErrInvalidModeUsage INVALID_INPUT, ErrReentrantMeasurement
// CONFLICT. Errors returned by registered functions are passed through as is.
package cellsize
