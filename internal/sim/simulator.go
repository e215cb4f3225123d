package sim

import (
	"context"
	"fmt"
	"io"
	"log"
	"math"

	"github.com/san-kum/fdtd/internal/fdtd"
)

// Simulator drives an engine through full leapfrog steps, injecting sources
// between the half steps and sampling probes, metrics and observers after
// each completed step.
type Simulator struct {
	engine    *fdtd.Engine
	sources   []Source
	probes    []*Probe
	metrics   []Metric
	observers []Observer
	logger    *log.Logger
}

func New(e *fdtd.Engine) *Simulator {
	return &Simulator{
		engine:    e,
		sources:   make([]Source, 0),
		probes:    make([]*Probe, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    log.New(io.Discard, "", 0),
	}
}

func (s *Simulator) Engine() *fdtd.Engine { return s.engine }
func (s *Simulator) Probes() []*Probe     { return s.probes }

func (s *Simulator) SetLogger(l *log.Logger) { s.logger = l }
func (s *Simulator) AddMetric(m Metric)      { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)  { s.observers = append(s.observers, o) }

// AddSource registers src. Sources that report their cell through Located
// are rejected with ErrInvalidSource when that cell is outside the grid.
func (s *Simulator) AddSource(src Source) error {
	if l, ok := src.(Located); ok {
		if at := l.Location(); !at.Within(s.engine.Grid()) {
			return fmt.Errorf("%w: %s outside grid %s", ErrInvalidSource, at, s.engine.Grid())
		}
	}
	s.sources = append(s.sources, src)
	return nil
}

func (s *Simulator) AddProbe(p *Probe) error {
	if err := p.Validate(s.engine.Grid()); err != nil {
		return err
	}
	for _, q := range s.probes {
		if q.Name == p.Name {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidProbe, p.Name)
		}
	}
	s.probes = append(s.probes, p)
	return nil
}

// Step advances one full leapfrog step: voltages, sources, currents.
func (s *Simulator) Step() {
	n := s.engine.Steps()
	s.engine.UpdateVoltages()
	for _, src := range s.sources {
		src.Apply(s.engine, n)
	}
	s.engine.UpdateCurrents()
}

// Run takes cfg.Steps steps. Cancellation is checked between steps, never
// inside an update, so the fields are always left at a step boundary. On
// cancellation or divergence the partial result is returned with the error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		Energy:  make([]float64, 0, cfg.Steps),
		Probes:  make(map[string][]float64, len(s.probes)),
		Metrics: make(map[string]float64),
	}

	s.Rewind()

	s.logger.Printf("sim: running %d steps on %v", cfg.Steps, s.engine.Grid())

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			s.collect(result)
			return result, ctx.Err()
		default:
		}

		err := s.Advance(cfg)
		result.Energy = append(result.Energy, s.engine.Energy())
		result.StepsTaken++
		if err != nil {
			s.logger.Printf("sim: %v", err)
			s.collect(result)
			return result, err
		}
	}

	s.collect(result)
	return result, nil
}

// Advance takes one step, samples probes, metrics and observers, and checks
// the fields against cfg. It returns a SimError when they diverged.
func (s *Simulator) Advance(cfg Config) error {
	s.Step()
	n := s.engine.Steps()

	for _, p := range s.probes {
		p.Sample(s.engine)
	}
	for _, m := range s.metrics {
		m.Observe(s.engine, n)
	}
	for _, obs := range s.observers {
		obs.OnStep(s.engine, n)
	}
	return s.check(cfg, n)
}

// Rewind clears probe samples and metric state, for a restarted engine.
func (s *Simulator) Rewind() {
	for _, m := range s.metrics {
		m.Reset()
	}
	for _, p := range s.probes {
		p.Reset()
	}
}

func (s *Simulator) check(cfg Config, n uint64) error {
	if cfg.ValidateState && !s.engine.Finite() {
		return SimError{Step: n, Message: "non-finite field value (NaN/Inf)"}
	}
	if cfg.MaxField > 0 {
		if m := s.engine.MaxAbs(); m > cfg.MaxField || math.IsNaN(m) {
			return SimError{Step: n, Message: fmt.Sprintf("field magnitude %g exceeds %g", m, cfg.MaxField)}
		}
	}
	return nil
}

func (s *Simulator) collect(result *Result) {
	for _, p := range s.probes {
		samples := make([]float64, len(p.Samples))
		copy(samples, p.Samples)
		result.Probes[p.Name] = samples
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
