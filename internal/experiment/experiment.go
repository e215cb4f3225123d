package experiment

import (
	"context"
	"errors"
	"log"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/operator"
	"github.com/san-kum/fdtd/internal/sim"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment owns the operator, engine and simulator built from one config.
type Experiment struct {
	cfg       *config.Config
	op        *operator.Operator
	engine    *fdtd.Engine
	simulator *sim.Simulator
	logger    *log.Logger
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) SetLogger(l *log.Logger) { e.logger = l }

// Setup validates the config and builds everything a run needs. Calling it
// again rebuilds from scratch.
func (e *Experiment) Setup(metrics []sim.Metric) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	e.Close()

	op, err := operator.NewUniform(e.cfg.Grid, e.cfg.Material())
	if err != nil {
		return err
	}
	if e.cfg.PEC {
		op.PECFaces()
	}

	opts := []fdtd.Option{
		fdtd.WithBoundaries(e.cfg.Boundaries),
		fdtd.WithWorkers(e.cfg.Workers),
	}
	if e.logger != nil {
		opts = append(opts, fdtd.WithLogger(e.logger))
	}
	engine, err := fdtd.New(op, opts...)
	if err != nil {
		op.Free()
		return err
	}

	s := sim.New(engine)
	if e.logger != nil {
		s.SetLogger(e.logger)
	}
	src, err := e.cfg.BuildSource()
	if err != nil {
		engine.Reset()
		op.Free()
		return err
	}
	if src != nil {
		if err := s.AddSource(src); err != nil {
			engine.Reset()
			op.Free()
			return err
		}
	}
	probes, err := e.cfg.BuildProbes()
	if err != nil {
		engine.Reset()
		op.Free()
		return err
	}
	for _, p := range probes {
		if err := s.AddProbe(p); err != nil {
			engine.Reset()
			op.Free()
			return err
		}
	}
	for _, m := range metrics {
		s.AddMetric(m)
	}

	e.op, e.engine, e.simulator = op, engine, s
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	return e.simulator.Run(ctx, e.cfg.SimConfig())
}

// Restart zeroes the fields and step counter, keeping the operator.
func (e *Experiment) Restart() error {
	if e.engine == nil {
		return ErrNotSetup
	}
	return e.engine.Init()
}

func (e *Experiment) Config() *config.Config { return e.cfg }

// Simulator returns the underlying simulator for adding observers.
func (e *Experiment) Simulator() *sim.Simulator { return e.simulator }

func (e *Experiment) Engine() *fdtd.Engine { return e.engine }

// Close releases the engine and operator. It is safe to call more than once.
func (e *Experiment) Close() {
	if e.engine != nil {
		e.engine.Reset()
	}
	if e.op != nil {
		e.op.Free()
	}
	e.op, e.engine, e.simulator = nil, nil, nil
}
