package maze

import "errors"

var (
	// ErrInvalidConfiguration is returned for a size below 1 or wall data that
	// does not describe a perfect maze.
	ErrInvalidConfiguration = errors.New("invalid maze configuration")
	// ErrAlreadyGenerated is returned when Generate is called on a maze that has already been carved.
	ErrAlreadyGenerated = errors.New("maze already generated")
)
