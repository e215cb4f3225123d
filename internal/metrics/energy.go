package metrics

import (
	"math"

	"github.com/san-kum/fdtd/internal/fdtd"
)

// Energy reports the total field energy at the last observed step.
type Energy struct {
	name    string
	samples int
	last    float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(eng *fdtd.Engine, step uint64) {
	e.last = eng.Energy()
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.last
}

func (e *Energy) Reset() {
	e.last = 0
	e.samples = 0
}

// EnergyGrowth tracks the largest ratio of observed energy to the first
// non-zero energy. A lossless run without sources stays at 1; values well
// above that flag an unstable configuration.
type EnergyGrowth struct {
	name      string
	initial   float64
	maxGrowth float64
	samples   int
}

func NewEnergyGrowth() *EnergyGrowth {
	return &EnergyGrowth{name: "energy_growth"}
}

func (g *EnergyGrowth) Name() string { return g.name }

func (g *EnergyGrowth) Observe(eng *fdtd.Engine, step uint64) {
	energy := eng.Energy()
	g.samples++

	if g.initial == 0 {
		g.initial = energy
	}
	if g.initial != 0 {
		g.maxGrowth = math.Max(g.maxGrowth, energy/g.initial)
	}
}

func (g *EnergyGrowth) Value() float64 {
	return g.maxGrowth
}

func (g *EnergyGrowth) Reset() {
	g.initial = 0
	g.maxGrowth = 0
	g.samples = 0
}
