package metrics

import (
	"github.com/san-kum/fdtd/internal/fdtd"
)

// Stability is the fraction of observed steps whose largest field magnitude
// stayed at or under the threshold. Non-finite fields count as violations.
type Stability struct {
	name       string
	threshold  float64
	violations int
	samples    int
}

func NewStability(threshold float64) *Stability {
	return &Stability{
		name:      "stability",
		threshold: threshold,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(e *fdtd.Engine, step uint64) {
	s.samples++
	if !e.Finite() || e.MaxAbs() > s.threshold {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
