package sim

import (
	"errors"
	"fmt"

	"github.com/san-kum/fdtd/internal/fdtd"
)

var (
	ErrDiverged      = errors.New("sim: field diverged")
	ErrInvalidSteps  = errors.New("sim: steps must be positive")
	ErrInvalidSource = errors.New("sim: invalid source")
	ErrInvalidProbe  = errors.New("sim: invalid probe")
)

// Source injects excitation into the engine between the voltage and current
// half steps. step is the index of the leapfrog step being taken.
type Source interface {
	Apply(e *fdtd.Engine, step uint64)
}

type Metric interface {
	Name() string
	Observe(e *fdtd.Engine, step uint64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(e *fdtd.Engine, step uint64)
}

type Config struct {
	Steps         int
	ValidateState bool
	// MaxField stops the run once any field magnitude exceeds it. Zero disables the check.
	MaxField float64
}

func DefaultConfig() Config {
	return Config{
		Steps:         200,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if c.Steps <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidSteps, c.Steps)
	}
	if c.MaxField < 0 {
		return fmt.Errorf("sim: max field must not be negative, got %g", c.MaxField)
	}
	return nil
}

type Result struct {
	StepsTaken int
	Energy     []float64
	Probes     map[string][]float64
	Metrics    map[string]float64
}

type SimError struct {
	Step    uint64
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d: %s", e.Step, e.Message)
}

func (e SimError) Unwrap() error { return ErrDiverged }
