package fdtd

import "github.com/san-kum/fdtd/internal/field"

// UpdateVoltages advances the voltages by one half-step from the curl of the
// currents, using backward differences:
//
//	V[p] = V[p]*VV[p] + VI[p]*curl(I)[p]
//
// It panics with ErrReleased after Reset.
func (e *Engine) UpdateVoltages() {
	e.mustLive()
	x0, y0 := 0, 0
	if e.bounds.X.Lower == Skip {
		x0 = 1
	}
	if e.bounds.Y.Lower == Skip {
		y0 = 1
	}
	e.backend.ParallelFor(e.grid.NX-x0, func(start, end int) {
		for x := x0 + start; x < x0+end; x++ {
			for y := y0; y < e.grid.NY; y++ {
				e.voltageColumn(x, y)
			}
		}
	})
	e.halfSteps++
}

// UpdateCurrents advances the currents by one half-step from the curl of the
// voltages, using forward differences:
//
//	I[p] = I[p]*II[p] + IV[p]*curl(V)[p]
//
// It panics with ErrReleased after Reset.
func (e *Engine) UpdateCurrents() {
	e.mustLive()
	x1, y1 := e.grid.NX, e.grid.NY
	if e.bounds.X.Upper == Skip {
		x1--
	}
	if e.bounds.Y.Upper == Skip {
		y1--
	}
	e.backend.ParallelFor(x1, func(start, end int) {
		for x := start; x < end; x++ {
			for y := 0; y < y1; y++ {
				e.currentColumn(x, y)
			}
		}
	})
	e.halfSteps++
}

func (e *Engine) voltageColumn(x, y int) {
	b, g := &e.bounds, e.grid
	xm := lower(b.X.Lower, x, g.NX)
	ym := lower(b.Y.Lower, y, g.NY)

	ix, iy, iz := e.curr[X].Row(x, y), e.curr[Y].Row(x, y), e.curr[Z].Row(x, y)
	ixYm := e.column(e.curr[X], x, ym)
	iyXm := e.column(e.curr[Y], xm, y)
	izXm := e.column(e.curr[Z], xm, y)
	izYm := e.column(e.curr[Z], x, ym)
	edgeX := lowerEdge(b.Z.Lower, ix, g.NZ)
	edgeY := lowerEdge(b.Z.Lower, iy, g.NZ)

	v := [3][]field.Vec4{e.volt[X].Row(x, y), e.volt[Y].Row(x, y), e.volt[Z].Row(x, y)}
	vvx, vvy, vvz := e.op.VV(X).Row(x, y), e.op.VV(Y).Row(x, y), e.op.VV(Z).Row(x, y)
	vix, viy, viz := e.op.VI(X).Row(x, y), e.op.VI(Y).Row(x, y), e.op.VI(Z).Row(x, y)

	pin := pinPlane(b.Z.Lower == Skip, 0, v)
	vx, vy, vz := v[X], v[Y], v[Z]
	for k := range vx {
		cx := iz[k].Sub(izYm[k]).Sub(iy[k].Sub(field.RowBackward(iy, k, edgeY)))
		cy := ix[k].Sub(field.RowBackward(ix, k, edgeX)).Sub(iz[k].Sub(izXm[k]))
		cz := iy[k].Sub(iyXm[k]).Sub(ix[k].Sub(ixYm[k]))

		vx[k] = vx[k].MulAdd(vvx[k], vix[k].Mul(cx))
		vy[k] = vy[k].MulAdd(vvy[k], viy[k].Mul(cy))
		vz[k] = vz[k].MulAdd(vvz[k], viz[k].Mul(cz))
	}
	pin.restore(v)
	clearTail(v, g.NZ)
}

func (e *Engine) currentColumn(x, y int) {
	b, g := &e.bounds, e.grid
	xp := upper(b.X.Upper, x, g.NX)
	yp := upper(b.Y.Upper, y, g.NY)
	tail := g.NZ - (len(e.zeros)-1)*field.Lanes

	vx, vy, vz := e.volt[X].Row(x, y), e.volt[Y].Row(x, y), e.volt[Z].Row(x, y)
	vxYp := e.column(e.volt[X], x, yp)
	vyXp := e.column(e.volt[Y], xp, y)
	vzXp := e.column(e.volt[Z], xp, y)
	vzYp := e.column(e.volt[Z], x, yp)
	edgeX := upperEdge(b.Z.Upper, vx, g.NZ)
	edgeY := upperEdge(b.Z.Upper, vy, g.NZ)

	c := [3][]field.Vec4{e.curr[X].Row(x, y), e.curr[Y].Row(x, y), e.curr[Z].Row(x, y)}
	iix, iiy, iiz := e.op.II(X).Row(x, y), e.op.II(Y).Row(x, y), e.op.II(Z).Row(x, y)
	ivx, ivy, ivz := e.op.IV(X).Row(x, y), e.op.IV(Y).Row(x, y), e.op.IV(Z).Row(x, y)

	pin := pinPlane(b.Z.Upper == Skip, g.NZ-1, c)
	ix, iy, iz := c[X], c[Y], c[Z]
	for k := range ix {
		cx := vz[k].Sub(vzYp[k]).Sub(vy[k].Sub(field.RowForward(vy, k, edgeY, tail)))
		cy := vx[k].Sub(field.RowForward(vx, k, edgeX, tail)).Sub(vz[k].Sub(vzXp[k]))
		cz := vy[k].Sub(vyXp[k]).Sub(vx[k].Sub(vxYp[k]))

		ix[k] = ix[k].MulAdd(iix[k], ivx[k].Mul(cx))
		iy[k] = iy[k].MulAdd(iiy[k], ivy[k].Mul(cy))
		iz[k] = iz[k].MulAdd(iiz[k], ivz[k].Mul(cz))
	}
	pin.restore(c)
	clearTail(c, g.NZ)
}

// lowerEdge is the value read below z = 0.
func lowerEdge(p Policy, row []field.Vec4, nz int) float32 {
	switch p {
	case Mirror:
		return row[0][0]
	case Periodic:
		return row[(nz-1)/field.Lanes][(nz-1)%field.Lanes]
	}
	return 0
}

// upperEdge is the value read above z = nz-1.
func upperEdge(p Policy, row []field.Vec4, nz int) float32 {
	switch p {
	case Mirror:
		return row[(nz-1)/field.Lanes][(nz-1)%field.Lanes]
	case Periodic:
		return row[0][0]
	}
	return 0
}

// pinned keeps one z plane of three columns unchanged across an update.
type pinned struct {
	on   bool
	g, l int
	v    [3]float32
}

func pinPlane(on bool, z int, cols [3][]field.Vec4) pinned {
	p := pinned{on: on, g: z / field.Lanes, l: z % field.Lanes}
	if on {
		for i, c := range cols {
			p.v[i] = c[p.g][p.l]
		}
	}
	return p
}

func (p pinned) restore(cols [3][]field.Vec4) {
	if !p.on {
		return
	}
	for i, c := range cols {
		c[p.g][p.l] = p.v[i]
	}
}

// clearTail zeroes the padding lanes past nz so they never hold a value.
func clearTail(cols [3][]field.Vec4, nz int) {
	tail := nz % field.Lanes
	if tail == 0 {
		return
	}
	for _, c := range cols {
		last := &c[len(c)-1]
		for i := tail; i < field.Lanes; i++ {
			last[i] = 0
		}
	}
}
