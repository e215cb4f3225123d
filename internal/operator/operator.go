// Package operator provides a reference coefficient provider for the field
// engine: uniform materials with per-cell overrides and perfect-conductor
// cells. Deriving coefficients from physical geometry is left to callers.
package operator

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/field"
)

// MaxCourant3D is the stability limit of the normalized 3D leapfrog scheme.
var MaxCourant3D = 1 / math.Sqrt(3)

var ErrUnstableCourant = errors.New("operator: courant number outside (0, 1/sqrt(3)]")

func ValidateCourant(s float64) error {
	if s <= 0 || s > MaxCourant3D {
		return fmt.Errorf("%w: %g", ErrUnstableCourant, s)
	}
	return nil
}

// Material is the coefficient set of one cell and polarization.
type Material struct {
	VV, VI, II, IV float32
}

// Lossless has unit decay and the Courant number as update coefficient.
func Lossless(courant float64) Material {
	s := float32(courant)
	return Material{VV: 1, VI: s, II: 1, IV: s}
}

// Damped scales both decay coefficients by decay in (0, 1].
func Damped(courant, decay float64) Material {
	m := Lossless(courant)
	m.VV, m.II = float32(decay), float32(decay)
	return m
}

// PEC zeroes all four coefficients, so every update clears the cell.
var PEC = Material{}

// Operator implements fdtd.Coefficients.
type Operator struct {
	grid fdtd.Grid
	vv   [3]*field.Array
	vi   [3]*field.Array
	ii   [3]*field.Array
	iv   [3]*field.Array
}

// New allocates an operator with every coefficient zero.
func New(grid fdtd.Grid) (*Operator, error) {
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	o := &Operator{grid: grid}
	for _, p := range fdtd.Polarizations {
		for _, dst := range []*[3]*field.Array{&o.vv, &o.vi, &o.ii, &o.iv} {
			a, err := grid.NewArray()
			if err != nil {
				o.Free()
				return nil, err
			}
			dst[p] = a
		}
	}
	return o, nil
}

// NewUniform fills every cell and polarization with m.
func NewUniform(grid fdtd.Grid, m Material) (*Operator, error) {
	o, err := New(grid)
	if err != nil {
		return nil, err
	}
	for _, p := range fdtd.Polarizations {
		o.vv[p].Fill(m.VV)
		o.vi[p].Fill(m.VI)
		o.ii[p].Fill(m.II)
		o.iv[p].Fill(m.IV)
	}
	return o, nil
}

func (o *Operator) Grid() fdtd.Grid                     { return o.grid }
func (o *Operator) VV(p fdtd.Polarization) *field.Array { return o.vv[p] }
func (o *Operator) VI(p fdtd.Polarization) *field.Array { return o.vi[p] }
func (o *Operator) II(p fdtd.Polarization) *field.Array { return o.ii[p] }
func (o *Operator) IV(p fdtd.Polarization) *field.Array { return o.iv[p] }

func (o *Operator) SetCell(p fdtd.Polarization, x, y, z int, m Material) {
	o.vv[p].Set(x, y, z, m.VV)
	o.vi[p].Set(x, y, z, m.VI)
	o.ii[p].Set(x, y, z, m.II)
	o.iv[p].Set(x, y, z, m.IV)
}

func (o *Operator) Cell(p fdtd.Polarization, x, y, z int) Material {
	return Material{
		VV: o.vv[p].At(x, y, z),
		VI: o.vi[p].At(x, y, z),
		II: o.ii[p].At(x, y, z),
		IV: o.iv[p].At(x, y, z),
	}
}

// PECFaces turns every cell on the six faces of the grid into a PEC cell.
// With the default engine boundaries this makes the skipped upper faces and
// the zero-derivative lower faces electrically irrelevant.
func (o *Operator) PECFaces() {
	g := o.grid
	for x := 0; x < g.NX; x++ {
		for y := 0; y < g.NY; y++ {
			for z := 0; z < g.NZ; z++ {
				if !onFace(x, g.NX) && !onFace(y, g.NY) && !onFace(z, g.NZ) {
					continue
				}
				for _, p := range fdtd.Polarizations {
					o.SetCell(p, x, y, z, PEC)
				}
			}
		}
	}
}

func onFace(i, n int) bool { return i == 0 || i == n-1 }

// Free releases all coefficient storage. It is safe to call more than once.
func (o *Operator) Free() {
	for _, p := range fdtd.Polarizations {
		o.vv[p].Free()
		o.vi[p].Free()
		o.ii[p].Free()
		o.iv[p].Free()
	}
}
