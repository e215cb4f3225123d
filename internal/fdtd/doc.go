// Package fdtd implements the leapfrog time-stepping kernel of a
// finite-difference time-domain field solver on a structured 3D grid.
//
// An [Engine] owns two interleaved vector fields, voltages (E-like) and
// currents (H-like), each stored as three packed [field.Array] values, one
// per [Polarization]. Per-cell coefficients are borrowed from a
// [Coefficients] provider and never modified.
//
// # Example
//
//	op, _ := operator.NewUniform(grid, operator.Lossless(0.5))
//	e, _ := fdtd.New(op)
//	defer e.Reset()
//	for n := 0; n < steps; n++ {
//		e.UpdateVoltages()
//		e.UpdateCurrents()
//	}
//
// Behaviour at the faces of the grid is chosen per axis with [Boundaries].
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. Field readout between updates is
// allowed; readout during an update is undefined.
package fdtd
