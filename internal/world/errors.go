package world

import "errors"

var (
	ErrInvalidDimensions  = errors.New("world: width and height must be positive")
	ErrInvalidCoordinates = errors.New("world: coordinates out of bounds")
	ErrContradiction      = errors.New("world: contradiction - no candidates left for cell")
	ErrIncomplete         = errors.New("world: generation stopped before every cell collapsed")
	ErrAlreadyCollapsed   = errors.New("world: cell already collapsed")
	ErrNotInDomain        = errors.New("world: variant not in cell domain")
)
