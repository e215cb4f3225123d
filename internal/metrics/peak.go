package metrics

import (
	"github.com/san-kum/fdtd/internal/fdtd"
)

// Peak is the largest field magnitude seen over the run.
type Peak struct {
	name string
	max  float64
}

func NewPeak() *Peak {
	return &Peak{
		name: "peak",
	}
}

func (p *Peak) Name() string {
	return p.name
}

func (p *Peak) Observe(e *fdtd.Engine, step uint64) {
	p.max = max(p.max, e.MaxAbs())
}

func (p *Peak) Value() float64 {
	return p.max
}

func (p *Peak) Reset() {
	p.max = 0
}
