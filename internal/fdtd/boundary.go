package fdtd

import (
	"fmt"
	"strings"
)

// Policy decides what a finite difference reads when its neighbour lies
// outside the grid.
type Policy uint8

const (
	// Mirror reads the cell itself, so the difference across the face is zero.
	Mirror Policy = iota
	// Zero reads a neighbour value of zero.
	Zero
	// Periodic reads the cell on the opposite face.
	Periodic
	// Skip leaves the face cells untouched by the update that would need the
	// missing neighbour.
	Skip
)

func (p Policy) String() string {
	switch p {
	case Mirror:
		return "mirror"
	case Zero:
		return "zero"
	case Periodic:
		return "periodic"
	case Skip:
		return "skip"
	}
	return fmt.Sprintf("Policy(%d)", uint8(p))
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mirror", "zero-derivative":
		return Mirror, nil
	case "zero", "pec":
		return Zero, nil
	case "periodic":
		return Periodic, nil
	case "skip":
		return Skip, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidBoundary, s)
}

func (p Policy) MarshalText() ([]byte, error) {
	if p > Skip {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBoundary, uint8(p))
	}
	return []byte(p.String()), nil
}

func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Boundary holds the policies of the two faces of one axis. Lower applies to
// the backward differences of UpdateVoltages, Upper to the forward differences
// of UpdateCurrents.
type Boundary struct {
	Lower Policy `yaml:"lower" json:"lower"`
	Upper Policy `yaml:"upper" json:"upper"`
}

type Boundaries struct {
	X Boundary `yaml:"x" json:"x"`
	Y Boundary `yaml:"y" json:"y"`
	Z Boundary `yaml:"z" json:"z"`
}

// DefaultBoundaries reproduces the classic kernel: the lower x and y faces
// have zero derivative, the upper x and y faces are left to the coefficient
// setup, and z reads zero beyond both ends.
func DefaultBoundaries() Boundaries {
	xy := Boundary{Lower: Mirror, Upper: Skip}
	return Boundaries{
		X: xy,
		Y: xy,
		Z: Boundary{Lower: Zero, Upper: Zero},
	}
}

// PeriodicBoundaries wraps every axis.
func PeriodicBoundaries() Boundaries {
	p := Boundary{Lower: Periodic, Upper: Periodic}
	return Boundaries{X: p, Y: p, Z: p}
}

func (b Boundaries) Validate() error {
	for _, p := range []Policy{b.X.Lower, b.X.Upper, b.Y.Lower, b.Y.Upper, b.Z.Lower, b.Z.Upper} {
		if p > Skip {
			return fmt.Errorf("%w: %d", ErrInvalidBoundary, uint8(p))
		}
	}
	return nil
}

// lower resolves the index read at i-1 on an axis of n cells. -1 means the
// neighbour is zero.
func lower(p Policy, i, n int) int {
	if i > 0 {
		return i - 1
	}
	switch p {
	case Mirror:
		return i
	case Periodic:
		return n - 1
	}
	return -1
}

// upper resolves the index read at i+1 on an axis of n cells. -1 means the
// neighbour is zero.
func upper(p Policy, i, n int) int {
	if i < n-1 {
		return i + 1
	}
	switch p {
	case Mirror:
		return i
	case Periodic:
		return 0
	}
	return -1
}
