package fdtd

import (
	"io"
	"log"

	"github.com/san-kum/fdtd/internal/compute"
	"github.com/san-kum/fdtd/internal/field"
)

// Engine advances the voltage and current fields by leapfrog half-steps.
type Engine struct {
	grid    Grid
	op      Coefficients
	bounds  Boundaries
	backend compute.Backend
	workers int
	logger  *log.Logger

	volt [3]*field.Array
	curr [3]*field.Array

	// zeros stands in for a column outside the grid.
	zeros     []field.Vec4
	halfSteps uint64
	released  bool
}

type Option func(*Engine)

func WithBoundaries(b Boundaries) Option {
	return func(e *Engine) { e.bounds = b }
}

// WithBackend sweeps x slabs through b. The engine closes b on Reset.
func WithBackend(b compute.Backend) Option {
	return func(e *Engine) { e.backend = b }
}

// WithWorkers is WithBackend(compute.New(n)).
func WithWorkers(n int) Option {
	return func(e *Engine) { e.backend = compute.New(n) }
}

func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New validates c against its grid and allocates zeroed voltage and current
// arrays. A shape mismatch is reported as a *ShapeError.
func New(c Coefficients, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, ErrNilCoefficients
	}
	if err := validateCoefficients(c); err != nil {
		return nil, err
	}

	e := &Engine{
		grid:    c.Grid(),
		op:      c,
		bounds:  DefaultBoundaries(),
		backend: compute.Serial{},
		logger:  log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.bounds.Validate(); err != nil {
		e.backend.Close()
		return nil, err
	}
	e.workers = e.backend.Workers()
	if err := e.Init(); err != nil {
		return nil, err
	}
	return e, nil
}

// Init (re)allocates all six arrays zeroed and clears the step counter. On
// failure nothing stays allocated.
func (e *Engine) Init() error {
	e.free()
	if e.released {
		e.backend = compute.New(e.workers)
	}
	for _, p := range Polarizations {
		v, err := e.grid.NewArray()
		if err != nil {
			e.free()
			e.released = true
			return err
		}
		e.volt[p] = v

		c, err := e.grid.NewArray()
		if err != nil {
			e.free()
			e.released = true
			return err
		}
		e.curr[p] = c
	}
	e.zeros = make([]field.Vec4, e.grid.Groups())
	e.halfSteps = 0
	e.released = false
	e.logger.Printf("fdtd: allocated 6 arrays of %d lane groups (grid %v, %s)",
		e.grid.NX*e.grid.NY*e.grid.Groups(), e.grid, e.backend.Name())
	return nil
}

func (e *Engine) free() {
	for _, p := range Polarizations {
		e.volt[p].Free()
		e.curr[p].Free()
		e.volt[p], e.curr[p] = nil, nil
	}
	e.zeros = nil
}

// Reset releases all field storage and the backend. It may be called any
// number of times; the engine must be re-initialised before the next update.
func (e *Engine) Reset() {
	if e.released {
		return
	}
	e.free()
	e.backend.Close()
	e.released = true
	e.logger.Printf("fdtd: released after %d steps", e.Steps())
}

func (e *Engine) Released() bool { return e.released }

func (e *Engine) Grid() Grid { return e.grid }

func (e *Engine) Boundaries() Boundaries { return e.bounds }

func (e *Engine) Backend() compute.Backend { return e.backend }

// Steps returns the number of full leapfrog steps advanced, counting both
// half-steps regardless of which update the driver starts with.
func (e *Engine) Steps() uint64 { return e.halfSteps / 2 }

func (e *Engine) Voltage(p Polarization) *field.Array { return e.volt[p] }

func (e *Engine) Current(p Polarization) *field.Array { return e.curr[p] }

func (e *Engine) VoltageAt(p Polarization, x, y, z int) float32 { return e.volt[p].At(x, y, z) }

func (e *Engine) CurrentAt(p Polarization, x, y, z int) float32 { return e.curr[p].At(x, y, z) }

func (e *Engine) SetVoltage(p Polarization, x, y, z int, v float32) { e.volt[p].Set(x, y, z, v) }

func (e *Engine) SetCurrent(p Polarization, x, y, z int, v float32) { e.curr[p].Set(x, y, z, v) }

// Energy returns the sum of squares over all six field arrays.
func (e *Engine) Energy() float64 {
	if e.released {
		return 0
	}
	var sum float64
	for _, p := range Polarizations {
		sum += e.volt[p].SumSquares() + e.curr[p].SumSquares()
	}
	return sum
}

// MaxAbs returns the largest absolute sample over all six arrays.
func (e *Engine) MaxAbs() float64 {
	if e.released {
		return 0
	}
	var m float64
	for _, p := range Polarizations {
		m = max(m, e.volt[p].MaxAbs(), e.curr[p].MaxAbs())
	}
	return m
}

// Finite reports whether every sample is neither NaN nor Inf.
func (e *Engine) Finite() bool {
	if e.released {
		return true
	}
	for _, p := range Polarizations {
		if e.volt[p].HasNonFinite() || e.curr[p].HasNonFinite() {
			return false
		}
	}
	return true
}

func (e *Engine) mustLive() {
	if e.released {
		panic(ErrReleased)
	}
}

// column returns the (x, y) column of a, or the zero column when x or y is -1.
func (e *Engine) column(a *field.Array, x, y int) []field.Vec4 {
	if x < 0 || y < 0 {
		return e.zeros
	}
	return a.Row(x, y)
}
