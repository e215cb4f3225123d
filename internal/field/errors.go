package field

import "errors"

var (
	// ErrInvalidExtent indicates a grid extent that is zero or negative.
	ErrInvalidExtent = errors.New("field: grid extent must be positive")

	// ErrAllocation indicates the requested array cannot be addressed.
	ErrAllocation = errors.New("field: lane group count exceeds addressable memory")

	// ErrIndex indicates a scalar coordinate outside the grid.
	ErrIndex = errors.New("field: index out of range")
)
