package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/operator"
	"github.com/san-kum/fdtd/internal/sim"
)

func newEngine(t *testing.T) *fdtd.Engine {
	t.Helper()
	op, err := operator.NewUniform(fdtd.Grid{NX: 6, NY: 6, NZ: 6}, operator.Lossless(0.4))
	if err != nil {
		t.Fatalf("operator: %v", err)
	}
	op.PECFaces()
	e, err := fdtd.New(op)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	t.Cleanup(func() {
		e.Reset()
		op.Free()
	})
	return e
}

func TestEnergy(t *testing.T) {
	e := newEngine(t)
	m := NewEnergy()

	e.SetVoltage(fdtd.Z, 2, 2, 2, 2)
	e.SetCurrent(fdtd.X, 2, 2, 2, 1)
	m.Observe(e, 1)

	if got := m.Value(); got != 5 {
		t.Errorf("expected energy 5, got %f", got)
	}

	e.SetCurrent(fdtd.X, 2, 2, 2, 0)
	m.Observe(e, 2)
	if got := m.Value(); got != 4 {
		t.Errorf("expected last energy 4, got %f", got)
	}
}

func TestEnergyReset(t *testing.T) {
	e := newEngine(t)
	m := NewEnergy()

	e.SetVoltage(fdtd.Y, 1, 1, 1, 1)
	m.Observe(e, 1)
	if m.Value() == 0 {
		t.Error("expected non-zero energy")
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestEnergyGrowth(t *testing.T) {
	e := newEngine(t)
	m := NewEnergyGrowth()

	m.Observe(e, 1)
	if m.Value() != 0 {
		t.Errorf("expected no growth before any energy, got %f", m.Value())
	}

	e.SetVoltage(fdtd.Z, 2, 2, 2, 2)
	m.Observe(e, 2)
	if m.Value() != 1 {
		t.Errorf("expected growth 1 at first energy, got %f", m.Value())
	}

	e.SetVoltage(fdtd.Z, 2, 2, 2, 4)
	m.Observe(e, 3)
	e.SetVoltage(fdtd.Z, 2, 2, 2, 1)
	m.Observe(e, 4)
	if m.Value() != 4 {
		t.Errorf("expected max growth 4, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero growth after reset")
	}
}

func TestEnergyGrowthLossless(t *testing.T) {
	e := newEngine(t)
	s := sim.New(e)
	if err := s.AddSource(sim.Impulse{At: sim.Point{Pol: fdtd.Z, X: 2, Y: 3, Z: 2}, Amplitude: 1}); err != nil {
		t.Fatalf("add source: %v", err)
	}
	growth := NewEnergyGrowth()
	s.AddMetric(growth)

	result, err := s.Run(context.Background(), sim.Config{Steps: 300, ValidateState: true})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if g := result.Metrics["energy_growth"]; g < 1 || g > 10 {
		t.Errorf("expected bounded energy growth, got %f", g)
	}
}

func TestStability(t *testing.T) {
	e := newEngine(t)
	m := NewStability(1)

	if m.Value() != 1 {
		t.Errorf("expected 1 with no samples, got %f", m.Value())
	}

	e.SetVoltage(fdtd.X, 1, 2, 3, 0.5)
	m.Observe(e, 1)
	e.SetVoltage(fdtd.X, 1, 2, 3, 2)
	m.Observe(e, 2)
	e.SetVoltage(fdtd.X, 1, 2, 3, float32(math.NaN()))
	m.Observe(e, 3)
	e.SetVoltage(fdtd.X, 1, 2, 3, 1)
	m.Observe(e, 4)

	if got := m.Value(); got != 0.5 {
		t.Errorf("expected stability 0.5, got %f", got)
	}
}

func TestPeak(t *testing.T) {
	e := newEngine(t)
	m := NewPeak()

	e.SetCurrent(fdtd.Y, 3, 3, 3, -3)
	m.Observe(e, 1)
	e.SetCurrent(fdtd.Y, 3, 3, 3, 1)
	m.Observe(e, 2)

	if got := m.Value(); got != 3 {
		t.Errorf("expected peak 3, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero peak after reset")
	}
}
