package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/fdtd/internal/fdtd"
)

// Point addresses one cell of one polarization.
type Point struct {
	Pol     fdtd.Polarization
	X, Y, Z int
}

func (p Point) Within(g fdtd.Grid) bool {
	return p.X >= 0 && p.X < g.NX && p.Y >= 0 && p.Y < g.NY && p.Z >= 0 && p.Z < g.NZ
}

// Located is implemented by sources that drive a single cell.
type Located interface {
	Location() Point
}

func (p Point) String() string {
	return fmt.Sprintf("V%s(%d,%d,%d)", p.Pol, p.X, p.Y, p.Z)
}

// GaussianPulse is a soft voltage source: amp*exp(-((n-delay)/width)^2) is
// added to the cell after every voltage update.
type GaussianPulse struct {
	At        Point
	Amplitude float64
	Delay     float64
	Width     float64
}

func (g GaussianPulse) Value(step uint64) float64 {
	d := (float64(step) - g.Delay) / g.Width
	return g.Amplitude * math.Exp(-d*d)
}

func (g GaussianPulse) Location() Point { return g.At }

func (g GaussianPulse) Apply(e *fdtd.Engine, step uint64) {
	addVoltage(e, g.At, g.Value(step))
}

// Sinusoid drives a continuous wave with the given period in steps.
type Sinusoid struct {
	At        Point
	Amplitude float64
	Period    float64
}

func (s Sinusoid) Value(step uint64) float64 {
	return s.Amplitude * math.Sin(2*math.Pi*float64(step)/s.Period)
}

func (s Sinusoid) Location() Point { return s.At }

func (s Sinusoid) Apply(e *fdtd.Engine, step uint64) {
	addVoltage(e, s.At, s.Value(step))
}

// Impulse adds Amplitude once, at step Step.
type Impulse struct {
	At        Point
	Amplitude float64
	Step      uint64
}

func (i Impulse) Location() Point { return i.At }

func (i Impulse) Apply(e *fdtd.Engine, step uint64) {
	if step == i.Step {
		addVoltage(e, i.At, i.Amplitude)
	}
}

func addVoltage(e *fdtd.Engine, p Point, v float64) {
	if v == 0 {
		return
	}
	cur := e.VoltageAt(p.Pol, p.X, p.Y, p.Z)
	e.SetVoltage(p.Pol, p.X, p.Y, p.Z, cur+float32(v))
}

// NewSource builds a source by kind name: "gaussian", "sine" or "impulse".
func NewSource(kind string, at Point, amplitude, delay, width float64) (Source, error) {
	switch kind {
	case "gaussian", "":
		if width <= 0 {
			return nil, fmt.Errorf("%w: gaussian width must be positive, got %g", ErrInvalidSource, width)
		}
		return GaussianPulse{At: at, Amplitude: amplitude, Delay: delay, Width: width}, nil
	case "sine":
		if width <= 0 {
			return nil, fmt.Errorf("%w: sine period must be positive, got %g", ErrInvalidSource, width)
		}
		return Sinusoid{At: at, Amplitude: amplitude, Period: width}, nil
	case "impulse":
		if delay < 0 {
			return nil, fmt.Errorf("%w: impulse step must not be negative, got %g", ErrInvalidSource, delay)
		}
		return Impulse{At: at, Amplitude: amplitude, Step: uint64(delay)}, nil
	}
	return nil, fmt.Errorf("%w: unknown kind %q", ErrInvalidSource, kind)
}
