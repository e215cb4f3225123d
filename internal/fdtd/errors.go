package fdtd

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGrid indicates a grid with a zero or negative extent.
	ErrInvalidGrid = errors.New("fdtd: invalid grid extents")

	// ErrNilCoefficients indicates the engine was built without a provider.
	ErrNilCoefficients = errors.New("fdtd: nil coefficient provider")

	// ErrShapeMismatch indicates a coefficient array does not match the grid.
	ErrShapeMismatch = errors.New("fdtd: coefficient array shape mismatch")

	// ErrReleased indicates use of an engine after Reset.
	ErrReleased = errors.New("fdtd: engine storage released")

	// ErrInvalidBoundary indicates an unknown boundary policy name.
	ErrInvalidBoundary = errors.New("fdtd: invalid boundary policy")
)

// ShapeError names the coefficient array that failed validation.
type ShapeError struct {
	Array string
	Pol   Polarization
	Want  Grid
	Got   Grid
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("fdtd: coefficient %s[%s] has shape %v, want %v", e.Array, e.Pol, e.Got, e.Want)
}

func (e *ShapeError) Unwrap() error {
	return ErrShapeMismatch
}
