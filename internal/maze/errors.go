package maze

import "errors"

var (
	// ErrInvalidDimensions is returned when rows or columns are not positive.
	ErrInvalidDimensions = errors.New("maze: rows and columns must be positive")
	// ErrInvalidTileSize is returned when the tile size is not positive.
	ErrInvalidTileSize = errors.New("maze: tile size must be positive")
	// ErrUnknownAlgorithm is returned for an algorithm name that is not recognised.
	ErrUnknownAlgorithm = errors.New("maze: unknown algorithm")
	// ErrAlgorithmUnsupported is returned for a recognised but unimplemented algorithm.
	ErrAlgorithmUnsupported = errors.New("maze: algorithm not implemented")
	// ErrNodeOutOfRange is returned when a node id lies outside the grid.
	ErrNodeOutOfRange = errors.New("maze: node id out of range")
	// ErrInvariantViolation signals a carve that repeatedly failed validation.
	// It indicates a builder or carver defect and is not recoverable at runtime.
	ErrInvariantViolation = errors.New("maze: structural invariant violated")
	// ErrNotGenerated is returned by queries issued before the first publication.
	ErrNotGenerated = errors.New("maze: no generation published yet")
	// ErrCarveInFlight is returned when a carve is requested while another one runs.
	ErrCarveInFlight = errors.New("maze: carve already in flight")
)
