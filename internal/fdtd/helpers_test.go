package fdtd

import (
	"math/rand"
	"testing"

	"github.com/san-kum/fdtd/internal/field"
)

// testCoefficients is a minimal in-package coefficient provider.
type testCoefficients struct {
	grid           Grid
	vv, vi, ii, iv [3]*field.Array
}

func newTestCoefficients(t testing.TB, g Grid, decay, update float32) *testCoefficients {
	t.Helper()
	c := &testCoefficients{grid: g}
	for _, p := range Polarizations {
		for _, dst := range []*[3]*field.Array{&c.vv, &c.vi, &c.ii, &c.iv} {
			a, err := g.NewArray()
			if err != nil {
				t.Fatalf("allocate coefficients: %v", err)
			}
			dst[p] = a
		}
		c.vv[p].Fill(decay)
		c.ii[p].Fill(decay)
		c.vi[p].Fill(update)
		c.iv[p].Fill(update)
	}
	return c
}

func (c *testCoefficients) Grid() Grid                     { return c.grid }
func (c *testCoefficients) VV(p Polarization) *field.Array { return c.vv[p] }
func (c *testCoefficients) VI(p Polarization) *field.Array { return c.vi[p] }
func (c *testCoefficients) II(p Polarization) *field.Array { return c.ii[p] }
func (c *testCoefficients) IV(p Polarization) *field.Array { return c.iv[p] }

func randomize(rng *rand.Rand, a *field.Array, lo, hi float32) {
	for x := 0; x < a.NX(); x++ {
		for y := 0; y < a.NY(); y++ {
			for z := 0; z < a.NZ(); z++ {
				a.Set(x, y, z, lo+(hi-lo)*rng.Float32())
			}
		}
	}
}

// snapshot copies an array into a plain [x][y][z] slice.
func snapshot(a *field.Array) [][][]float32 {
	s := make([][][]float32, a.NX())
	for x := range s {
		s[x] = make([][]float32, a.NY())
		for y := range s[x] {
			s[x][y] = make([]float32, a.NZ())
			for z := range s[x][y] {
				s[x][y][z] = a.At(x, y, z)
			}
		}
	}
	return s
}

// reference is an unpacked scalar rendition of both updates.
type reference struct {
	g Grid
	b Boundaries
}

// at reads s at (x, y, z) displaced by d along axis, applying the boundary
// policy of the face that is crossed.
func (r reference) at(s [][][]float32, x, y, z, axis, d int) float32 {
	idx := [3]int{x, y, z}
	n := [3]int{r.g.NX, r.g.NY, r.g.NZ}
	faces := [3]Boundary{r.b.X, r.b.Y, r.b.Z}
	pol := faces[axis].Upper
	if d < 0 {
		pol = faces[axis].Lower
	}
	i := idx[axis] + d
	if i < 0 || i >= n[axis] {
		switch pol {
		case Mirror:
			i = idx[axis]
		case Periodic:
			i = (i + n[axis]) % n[axis]
		default:
			return 0
		}
	}
	idx[axis] = i
	return s[idx[0]][idx[1]][idx[2]]
}

func (r reference) skipped(x, y, z int, lowerFace bool) bool {
	if lowerFace {
		return (r.b.X.Lower == Skip && x == 0) ||
			(r.b.Y.Lower == Skip && y == 0) ||
			(r.b.Z.Lower == Skip && z == 0)
	}
	return (r.b.X.Upper == Skip && x == r.g.NX-1) ||
		(r.b.Y.Upper == Skip && y == r.g.NY-1) ||
		(r.b.Z.Upper == Skip && z == r.g.NZ-1)
}

// voltages returns the expected voltages after UpdateVoltages.
func (r reference) voltages(v, i [3][][][]float32, c Coefficients) [3][][][]float32 {
	var out [3][][][]float32
	for p := range out {
		out[p] = clone(v[p])
	}
	for x := 0; x < r.g.NX; x++ {
		for y := 0; y < r.g.NY; y++ {
			for z := 0; z < r.g.NZ; z++ {
				if r.skipped(x, y, z, true) {
					continue
				}
				ix, iy, iz := i[X], i[Y], i[Z]
				curl := [3]float32{
					(iz[x][y][z] - r.at(iz, x, y, z, 1, -1)) - (iy[x][y][z] - r.at(iy, x, y, z, 2, -1)),
					(ix[x][y][z] - r.at(ix, x, y, z, 2, -1)) - (iz[x][y][z] - r.at(iz, x, y, z, 0, -1)),
					(iy[x][y][z] - r.at(iy, x, y, z, 0, -1)) - (ix[x][y][z] - r.at(ix, x, y, z, 1, -1)),
				}
				for _, p := range Polarizations {
					out[p][x][y][z] = v[p][x][y][z]*c.VV(p).At(x, y, z) + c.VI(p).At(x, y, z)*curl[p]
				}
			}
		}
	}
	return out
}

// currents returns the expected currents after UpdateCurrents.
func (r reference) currents(i, v [3][][][]float32, c Coefficients) [3][][][]float32 {
	var out [3][][][]float32
	for p := range out {
		out[p] = clone(i[p])
	}
	for x := 0; x < r.g.NX; x++ {
		for y := 0; y < r.g.NY; y++ {
			for z := 0; z < r.g.NZ; z++ {
				if r.skipped(x, y, z, false) {
					continue
				}
				vx, vy, vz := v[X], v[Y], v[Z]
				curl := [3]float32{
					(vz[x][y][z] - r.at(vz, x, y, z, 1, 1)) - (vy[x][y][z] - r.at(vy, x, y, z, 2, 1)),
					(vx[x][y][z] - r.at(vx, x, y, z, 2, 1)) - (vz[x][y][z] - r.at(vz, x, y, z, 0, 1)),
					(vy[x][y][z] - r.at(vy, x, y, z, 0, 1)) - (vx[x][y][z] - r.at(vx, x, y, z, 1, 1)),
				}
				for _, p := range Polarizations {
					out[p][x][y][z] = i[p][x][y][z]*c.II(p).At(x, y, z) + c.IV(p).At(x, y, z)*curl[p]
				}
			}
		}
	}
	return out
}

func clone(s [][][]float32) [][][]float32 {
	c := make([][][]float32, len(s))
	for x := range s {
		c[x] = make([][]float32, len(s[x]))
		for y := range s[x] {
			c[x][y] = append([]float32(nil), s[x][y]...)
		}
	}
	return c
}
