package field

import (
	"fmt"
	"math"
)

// MaxGroups bounds the number of lane groups a single Array may hold so that
// the byte size of its storage stays addressable.
const MaxGroups = math.MaxInt / (Lanes * 4)

// Array is one field component over the whole grid, packed along z.
type Array struct {
	nx, ny, nz int
	groups     int
	data       []Vec4
}

// NewArray allocates a zeroed array for an nx × ny × nz grid.
func NewArray(nx, ny, nz int) (*Array, error) {
	if nx <= 0 || ny <= 0 || nz <= 0 {
		return nil, ErrInvalidExtent
	}
	groups := Groups(nz)
	if nx > MaxGroups/ny || nx*ny > MaxGroups/groups {
		return nil, ErrAllocation
	}
	return &Array{
		nx:     nx,
		ny:     ny,
		nz:     nz,
		groups: groups,
		data:   make([]Vec4, nx*ny*groups),
	}, nil
}

func (a *Array) NX() int     { return a.nx }
func (a *Array) NY() int     { return a.ny }
func (a *Array) NZ() int     { return a.nz }
func (a *Array) Groups() int { return a.groups }

// Allocated reports whether the array holds storage. A nil array is never
// allocated.
func (a *Array) Allocated() bool {
	return a != nil && a.data != nil
}

// SameShape reports whether b covers the same grid as a.
func (a *Array) SameShape(b *Array) bool {
	return a.Allocated() && b.Allocated() && a.nx == b.nx && a.ny == b.ny && a.nz == b.nz
}

// TailLanes returns how many lanes of the final group lie inside the grid.
func (a *Array) TailLanes() int {
	return a.nz - (a.groups-1)*Lanes
}

// Free releases the storage. Freeing a nil or already freed array is a no-op.
func (a *Array) Free() {
	if a == nil {
		return
	}
	a.data = nil
}

func (a *Array) offset(x, y int) int {
	return (x*a.ny + y) * a.groups
}

// Row returns the lane groups of column (x, y), ordered by z.
func (a *Array) Row(x, y int) []Vec4 {
	off := a.offset(x, y)
	return a.data[off : off+a.groups : off+a.groups]
}

func (a *Array) Group(x, y, g int) Vec4 {
	return a.data[a.offset(x, y)+g]
}

func (a *Array) SetGroup(x, y, g int, v Vec4) {
	a.data[a.offset(x, y)+g] = v
}

// GroupPtr returns a pointer into the storage for in-place updates.
func (a *Array) GroupPtr(x, y, g int) *Vec4 {
	return &a.data[a.offset(x, y)+g]
}

// Contains reports whether (x, y, z) lies inside the grid. Padding lanes are
// outside.
func (a *Array) Contains(x, y, z int) bool {
	return uint(x) < uint(a.nx) && uint(y) < uint(a.ny) && uint(z) < uint(a.nz)
}

func (a *Array) checkIndex(x, y, z int) {
	if !a.Contains(x, y, z) {
		panic(fmt.Errorf("%w: (%d,%d,%d) in %dx%dx%d", ErrIndex, x, y, z, a.nx, a.ny, a.nz))
	}
}

// At returns the scalar sample at (x, y, z). It panics with ErrIndex outside
// the grid.
func (a *Array) At(x, y, z int) float32 {
	a.checkIndex(x, y, z)
	return a.data[a.offset(x, y)+z/Lanes][z%Lanes]
}

// Set writes the scalar sample at (x, y, z). It panics with ErrIndex outside
// the grid, so padding lanes are never written.
func (a *Array) Set(x, y, z int, v float32) {
	a.checkIndex(x, y, z)
	a.data[a.offset(x, y)+z/Lanes][z%Lanes] = v
}

// Fill sets every sample inside the grid to v. Padding lanes stay zero.
func (a *Array) Fill(v float32) {
	s := Splat(v)
	for i := range a.data {
		a.data[i] = s
	}
	a.ZeroTail()
}

// ZeroTail clears the padding lanes past Nz in every column.
func (a *Array) ZeroTail() {
	tail := a.TailLanes()
	if tail == Lanes {
		return
	}
	for off := a.groups - 1; off < len(a.data); off += a.groups {
		for i := tail; i < Lanes; i++ {
			a.data[off][i] = 0
		}
	}
}

// CopyFrom copies the samples of b, which must have the same shape.
func (a *Array) CopyFrom(b *Array) {
	copy(a.data, b.data)
}

// each visits every in-grid sample.
func (a *Array) each(fn func(v float32)) {
	tail := a.TailLanes()
	for i, g := range a.data {
		n := Lanes
		if (i+1)%a.groups == 0 {
			n = tail
		}
		for l := 0; l < n; l++ {
			fn(g[l])
		}
	}
}

// SumSquares returns the sum of squared samples inside the grid.
func (a *Array) SumSquares() float64 {
	var sum float64
	a.each(func(v float32) {
		f := float64(v)
		sum += f * f
	})
	return sum
}

// MaxAbs returns the largest absolute sample inside the grid.
func (a *Array) MaxAbs() float64 {
	var m float64
	a.each(func(v float32) {
		m = math.Max(m, math.Abs(float64(v)))
	})
	return m
}

// HasNonFinite reports whether any sample inside the grid is NaN or Inf.
func (a *Array) HasNonFinite() bool {
	bad := false
	a.each(func(v float32) {
		f := float64(v)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			bad = true
		}
	})
	return bad
}
