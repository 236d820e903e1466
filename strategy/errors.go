package strategy

import "github.com/jmgilman/go/errors"

var (
	// ErrStrategyNotFound is returned when no registration matches a query.
	ErrStrategyNotFound = errors.New(errors.CodeNotFound, "strategy: no measurement strategy registered")

	// ErrInvalidStrategy is returned when a Strategy carries no function.
	ErrInvalidStrategy = errors.New(errors.CodeInvalidInput, "strategy: strategy has no measurement function")

	// ErrMissingCollaborator is returned when a configure strategy runs without
	// a ViewFactory or LayoutMeasurer.
	ErrMissingCollaborator = errors.New(errors.CodeInvalidConfig, "strategy: view factory and layout measurer are required")

	// ErrReentrantMeasurement is returned when a kind is measured again while
	// a measurement of the same kind is in progress.
	ErrReentrantMeasurement = errors.New(errors.CodeConflict, "strategy: reentrant measurement")
)
