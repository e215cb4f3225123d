package field

// Lanes is the number of z samples packed into one lane group.
const Lanes = 4

// Vec4 is one lane group. Lane i holds the sample at z = 4*g + i.
type Vec4 [Lanes]float32

func (a Vec4) Add(b Vec4) Vec4 {
	return Vec4{a[0] + b[0], a[1] + b[1], a[2] + b[2], a[3] + b[3]}
}

func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

func (a Vec4) Mul(b Vec4) Vec4 {
	return Vec4{a[0] * b[0], a[1] * b[1], a[2] * b[2], a[3] * b[3]}
}

// MulAdd returns a*b + c.
func (a Vec4) MulAdd(b, c Vec4) Vec4 {
	return Vec4{a[0]*b[0] + c[0], a[1]*b[1] + c[1], a[2]*b[2] + c[2], a[3]*b[3] + c[3]}
}

// Splat returns a group with every lane set to v.
func Splat(v float32) Vec4 {
	return Vec4{v, v, v, v}
}

// Groups returns the number of lane groups needed for nz samples.
func Groups(nz int) int {
	return (nz + Lanes - 1) / Lanes
}
