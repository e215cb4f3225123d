package fdtd

import "github.com/san-kum/fdtd/internal/field"

// Coefficients is the per-cell coefficient provider. All twelve arrays must
// cover the same grid; the engine reads them and never writes.
type Coefficients interface {
	Grid() Grid
	// VV is the voltage decay coefficient.
	VV(p Polarization) *field.Array
	// VI scales the current curl into the voltage update.
	VI(p Polarization) *field.Array
	// II is the current decay coefficient.
	II(p Polarization) *field.Array
	// IV scales the voltage curl into the current update.
	IV(p Polarization) *field.Array
}

func validateCoefficients(c Coefficients) error {
	grid := c.Grid()
	if err := grid.Validate(); err != nil {
		return err
	}
	for _, p := range Polarizations {
		sets := []struct {
			name string
			arr  *field.Array
		}{
			{"vv", c.VV(p)},
			{"vi", c.VI(p)},
			{"ii", c.II(p)},
			{"iv", c.IV(p)},
		}
		for _, s := range sets {
			if got := GridOf(s.arr); got != grid {
				return &ShapeError{Array: s.name, Pol: p, Want: grid, Got: got}
			}
		}
	}
	return nil
}
