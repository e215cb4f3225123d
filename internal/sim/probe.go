package sim

import (
	"fmt"
	"strings"

	"github.com/san-kum/fdtd/internal/fdtd"
)

type Quantity int

const (
	Voltage Quantity = iota
	Current
)

func (q Quantity) String() string {
	if q == Current {
		return "current"
	}
	return "voltage"
}

func ParseQuantity(s string) (Quantity, error) {
	switch strings.ToLower(s) {
	case "voltage", "v", "":
		return Voltage, nil
	case "current", "i":
		return Current, nil
	}
	return Voltage, fmt.Errorf("%w: unknown quantity %q", ErrInvalidProbe, s)
}

// Probe records one field value after every completed step.
type Probe struct {
	Name     string
	Quantity Quantity
	At       Point
	Samples  []float64
}

func NewProbe(name string, q Quantity, at Point) *Probe {
	if name == "" {
		prefix := "V"
		if q == Current {
			prefix = "I"
		}
		name = fmt.Sprintf("%s%s_%d_%d_%d", prefix, at.Pol, at.X, at.Y, at.Z)
	}
	return &Probe{Name: name, Quantity: q, At: at}
}

func (p *Probe) Validate(g fdtd.Grid) error {
	if !p.At.Within(g) {
		return fmt.Errorf("%w: %s at %s outside %s", ErrInvalidProbe, p.Name, p.At, g)
	}
	return nil
}

func (p *Probe) Read(e *fdtd.Engine) float64 {
	a := p.At
	if p.Quantity == Current {
		return float64(e.CurrentAt(a.Pol, a.X, a.Y, a.Z))
	}
	return float64(e.VoltageAt(a.Pol, a.X, a.Y, a.Z))
}

func (p *Probe) Sample(e *fdtd.Engine) {
	p.Samples = append(p.Samples, p.Read(e))
}

func (p *Probe) Reset() { p.Samples = p.Samples[:0] }
