// Package field provides the packed storage used for one Cartesian component
// of a field sampled on a structured 3D grid.
//
// Values are packed four at a time along the z axis:
//
//   - [Vec4]: one lane group of four consecutive z samples
//   - [Array]: Nx × Ny × ceil(Nz/4) lane groups with a scalar view on top
//   - [ShiftDown], [ShiftUp]: cross-lane reassembly for z finite differences
//
// Lanes past the true Nz extent in the final group are padding. They are kept
// at zero and are never returned as a neighbour by [Array.Backward] or
// [Array.Forward].
//
// # Thread Safety
//
// Arrays are NOT thread-safe. Concurrent writers must touch disjoint (x, y)
// columns.
package field
