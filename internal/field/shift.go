package field

// ShiftDown reassembles the backward z neighbours of cur: lane i of the result
// is the sample at z-1. Lane 0 comes from lane 3 of prev, the preceding group.
func ShiftDown(cur, prev Vec4) Vec4 {
	return Vec4{prev[Lanes-1], cur[0], cur[1], cur[2]}
}

// ShiftUp reassembles the forward z neighbours of cur: lane i of the result is
// the sample at z+1. Lane 3 comes from lane 0 of next, the following group.
func ShiftUp(cur, next Vec4) Vec4 {
	return Vec4{cur[1], cur[2], cur[3], next[0]}
}

// Backward returns the z-1 neighbours of group g in column (x, y). The lane
// whose neighbour would be z = -1 reads edge instead.
func (a *Array) Backward(x, y, g int, edge float32) Vec4 {
	return RowBackward(a.Row(x, y), g, edge)
}

// Forward returns the z+1 neighbours of group g in column (x, y). The lane
// whose neighbour would be z = Nz reads edge instead, even when that lane is
// not lane 3 of the last group. Lanes past Nz read zero.
func (a *Array) Forward(x, y, g int, edge float32) Vec4 {
	return RowForward(a.Row(x, y), g, edge, a.TailLanes())
}

// RowBackward is [Array.Backward] on a column returned by [Array.Row].
func RowBackward(row []Vec4, g int, edge float32) Vec4 {
	if g == 0 {
		return ShiftDown(row[0], Vec4{Lanes - 1: edge})
	}
	return ShiftDown(row[g], row[g-1])
}

// RowForward is [Array.Forward] on a column returned by [Array.Row]; tail is
// the number of valid lanes in the last group.
func RowForward(row []Vec4, g int, edge float32, tail int) Vec4 {
	if g+1 < len(row) {
		return ShiftUp(row[g], row[g+1])
	}
	out := ShiftUp(row[g], Vec4{})
	out[tail-1] = edge
	for i := tail; i < Lanes; i++ {
		out[i] = 0
	}
	return out
}
