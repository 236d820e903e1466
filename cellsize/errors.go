package cellsize

import (
	"github.com/IvanBrykalov/cellsize/sizecache"
	"github.com/IvanBrykalov/cellsize/strategy"
	"github.com/jmgilman/go/errors"
)

// Errors returned by a Manager. All are coded PlatformErrors; test with
// errors.Is and read the code with errors.GetCode.
var (
	ErrStrategyNotFound     = strategy.ErrStrategyNotFound
	ErrInvalidStrategy      = strategy.ErrInvalidStrategy
	ErrMissingCollaborator  = strategy.ErrMissingCollaborator
	ErrReentrantMeasurement = strategy.ErrReentrantMeasurement
	ErrInvalidModeUsage     = sizecache.ErrInvalidModeUsage

	// ErrUnknownChange is returned for list events with an unrecognised kind.
	ErrUnknownChange = errors.New(errors.CodeInvalidInput, "cellsize: unknown list change")
)
