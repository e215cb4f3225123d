package fdtd

import (
	"fmt"

	"github.com/san-kum/fdtd/internal/field"
)

// Grid holds the number of cells along each axis.
type Grid struct {
	NX int `yaml:"nx" json:"nx"`
	NY int `yaml:"ny" json:"ny"`
	NZ int `yaml:"nz" json:"nz"`
}

func (g Grid) Validate() error {
	if g.NX <= 0 || g.NY <= 0 || g.NZ <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidGrid, g)
	}
	return nil
}

// Groups returns the number of packed lane groups along z.
func (g Grid) Groups() int { return field.Groups(g.NZ) }

func (g Grid) Cells() int { return g.NX * g.NY * g.NZ }

func (g Grid) String() string {
	return fmt.Sprintf("%dx%dx%d", g.NX, g.NY, g.NZ)
}

// NewArray allocates a zeroed packed array covering g.
func (g Grid) NewArray() (*field.Array, error) {
	return field.NewArray(g.NX, g.NY, g.NZ)
}

// GridOf returns the extents of an allocated array.
func GridOf(a *field.Array) Grid {
	if !a.Allocated() {
		return Grid{}
	}
	return Grid{NX: a.NX(), NY: a.NY(), NZ: a.NZ()}
}

type Polarization int

const (
	X Polarization = iota
	Y
	Z
)

// Polarizations lists X, Y, Z in storage order.
var Polarizations = [3]Polarization{X, Y, Z}

func (p Polarization) String() string {
	switch p {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Polarization(%d)", int(p))
}

func ParsePolarization(s string) (Polarization, error) {
	switch s {
	case "x", "X":
		return X, nil
	case "y", "Y":
		return Y, nil
	case "z", "Z":
		return Z, nil
	}
	return 0, fmt.Errorf("fdtd: unknown polarization %q", s)
}
