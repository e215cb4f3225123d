package field

import "testing"

func TestShiftDown(t *testing.T) {
	got := ShiftDown(Vec4{1, 2, 3, 4}, Vec4{5, 6, 7, 8})
	if got != (Vec4{8, 1, 2, 3}) {
		t.Errorf("ShiftDown = %v", got)
	}
}

func TestShiftUp(t *testing.T) {
	got := ShiftUp(Vec4{1, 2, 3, 4}, Vec4{5, 6, 7, 8})
	if got != (Vec4{2, 3, 4, 5}) {
		t.Errorf("ShiftUp = %v", got)
	}
}

func column(t *testing.T, nz int) *Array {
	t.Helper()
	a, err := NewArray(1, 1, nz)
	if err != nil {
		t.Fatal(err)
	}
	for z := 0; z < nz; z++ {
		a.Set(0, 0, z, float32(z+1))
	}
	return a
}

// scalar reference: neighbour at z+d, or edge outside [0, nz).
func reference(nz, z, d int, edge float32) float32 {
	n := z + d
	if n < 0 || n >= nz {
		return edge
	}
	return float32(n + 1)
}

func TestArray_BackwardMatchesScalar(t *testing.T) {
	for _, nz := range []int{1, 3, 4, 5, 8, 10} {
		a := column(t, nz)
		for g := 0; g < a.Groups(); g++ {
			got := a.Backward(0, 0, g, -7)
			for l := 0; l < Lanes; l++ {
				z := g*Lanes + l
				if z >= nz {
					continue
				}
				if want := reference(nz, z, -1, -7); got[l] != want {
					t.Errorf("nz=%d z=%d: expected %v, got %v", nz, z, want, got[l])
				}
			}
		}
	}
}

func TestArray_ForwardMatchesScalar(t *testing.T) {
	for _, nz := range []int{1, 2, 3, 4, 5, 7, 8, 9} {
		a := column(t, nz)
		for g := 0; g < a.Groups(); g++ {
			got := a.Forward(0, 0, g, -7)
			for l := 0; l < Lanes; l++ {
				z := g*Lanes + l
				if z >= nz {
					if got[l] != 0 {
						t.Errorf("nz=%d z=%d: padding lane should read zero, got %v", nz, z, got[l])
					}
					continue
				}
				if want := reference(nz, z, 1, -7); got[l] != want {
					t.Errorf("nz=%d z=%d: expected %v, got %v", nz, z, want, got[l])
				}
			}
		}
	}
}

func TestArray_ForwardIgnoresDirtyPadding(t *testing.T) {
	a := column(t, 6)
	p := a.GroupPtr(0, 0, 1)
	p[2], p[3] = 42, 43

	got := a.Forward(0, 0, 1, 0)
	if got[1] != 0 {
		t.Errorf("last valid lane read padding: %v", got)
	}
}
