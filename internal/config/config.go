package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/operator"
	"github.com/san-kum/fdtd/internal/sim"
)

const (
	DefaultSize      = 24
	DefaultCourant   = 0.5
	DefaultDecay     = 1.0
	DefaultSteps     = 300
	DefaultAmplitude = 1.0
	DefaultDelay     = 30.0
	DefaultWidth     = 10.0
)

var ErrInvalidConfig = errors.New("config: invalid")

type Config struct {
	Name       string          `yaml:"name"`
	Grid       fdtd.Grid       `yaml:"grid"`
	Courant    float64         `yaml:"courant"`
	Decay      float64         `yaml:"decay"`
	Steps      int             `yaml:"steps"`
	Workers    int             `yaml:"workers"`
	PEC        bool            `yaml:"pec"`
	Boundaries fdtd.Boundaries `yaml:"boundaries"`
	MaxField   float64         `yaml:"max_field"`
	Source     SourceConfig    `yaml:"source"`
	Probes     []ProbeConfig   `yaml:"probes"`
}

type SourceConfig struct {
	Kind         string  `yaml:"kind"`
	Polarization string  `yaml:"polarization"`
	X            int     `yaml:"x"`
	Y            int     `yaml:"y"`
	Z            int     `yaml:"z"`
	Amplitude    float64 `yaml:"amplitude"`
	Delay        float64 `yaml:"delay"`
	Width        float64 `yaml:"width"`
}

type ProbeConfig struct {
	Name         string `yaml:"name"`
	Quantity     string `yaml:"quantity"`
	Polarization string `yaml:"polarization"`
	X            int    `yaml:"x"`
	Y            int    `yaml:"y"`
	Z            int    `yaml:"z"`
}

// DefaultConfig is a PEC cavity with a Gaussian Ez pulse in the middle and a
// probe on the source cell.
func DefaultConfig() *Config {
	c := DefaultSize / 2
	return &Config{
		Name:       "cavity",
		Grid:       fdtd.Grid{NX: DefaultSize, NY: DefaultSize, NZ: DefaultSize},
		Courant:    DefaultCourant,
		Decay:      DefaultDecay,
		Steps:      DefaultSteps,
		PEC:        true,
		Boundaries: fdtd.DefaultBoundaries(),
		Source: SourceConfig{
			Kind:         "gaussian",
			Polarization: "z",
			X:            c,
			Y:            c,
			Z:            c,
			Amplitude:    DefaultAmplitude,
			Delay:        DefaultDelay,
			Width:        DefaultWidth,
		},
		Probes: []ProbeConfig{
			{Name: "center", Quantity: "voltage", Polarization: "z", X: c, Y: c, Z: c},
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if err := operator.ValidateCourant(c.Courant); err != nil {
		return err
	}
	if c.Decay <= 0 || c.Decay > 1 {
		return fmt.Errorf("%w: decay must be in (0, 1], got %g", ErrInvalidConfig, c.Decay)
	}
	if c.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", ErrInvalidConfig, c.Steps)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must not be negative, got %d", ErrInvalidConfig, c.Workers)
	}
	if c.MaxField < 0 {
		return fmt.Errorf("%w: max_field must not be negative, got %g", ErrInvalidConfig, c.MaxField)
	}
	if err := c.Boundaries.Validate(); err != nil {
		return err
	}
	if _, err := c.BuildSource(); err != nil {
		return err
	}
	if _, err := c.BuildProbes(); err != nil {
		return err
	}
	return nil
}

// Material returns the uniform coefficients of the bulk cells.
func (c *Config) Material() operator.Material {
	if c.Decay == 1 {
		return operator.Lossless(c.Courant)
	}
	return operator.Damped(c.Courant, c.Decay)
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Steps:         c.Steps,
		ValidateState: true,
		MaxField:      c.MaxField,
	}
}

func (c *Config) point(pol string, x, y, z int) (sim.Point, error) {
	p, err := fdtd.ParsePolarization(pol)
	if err != nil {
		return sim.Point{}, err
	}
	pt := sim.Point{Pol: p, X: x, Y: y, Z: z}
	if !pt.Within(c.Grid) {
		return sim.Point{}, fmt.Errorf("%w: %s outside grid %s", ErrInvalidConfig, pt, c.Grid)
	}
	return pt, nil
}

// BuildSource returns nil when the source kind is "none".
func (c *Config) BuildSource() (sim.Source, error) {
	s := c.Source
	if s.Kind == "none" {
		return nil, nil
	}
	at, err := c.point(s.Polarization, s.X, s.Y, s.Z)
	if err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return sim.NewSource(s.Kind, at, s.Amplitude, s.Delay, s.Width)
}

func (c *Config) BuildProbes() ([]*sim.Probe, error) {
	probes := make([]*sim.Probe, 0, len(c.Probes))
	for i, pc := range c.Probes {
		q, err := sim.ParseQuantity(pc.Quantity)
		if err != nil {
			return nil, fmt.Errorf("probe %d: %w", i, err)
		}
		at, err := c.point(pc.Polarization, pc.X, pc.Y, pc.Z)
		if err != nil {
			return nil, fmt.Errorf("probe %d: %w", i, err)
		}
		probes = append(probes, sim.NewProbe(pc.Name, q, at))
	}
	return probes, nil
}

// Center moves the source and every probe to the middle of the grid.
func (c *Config) Center() {
	x, y, z := c.Grid.NX/2, c.Grid.NY/2, c.Grid.NZ/2
	c.Source.X, c.Source.Y, c.Source.Z = x, y, z
	for i := range c.Probes {
		c.Probes[i].X, c.Probes[i].Y, c.Probes[i].Z = x, y, z
	}
}

func (c *Config) Clone() *Config {
	out := *c
	out.Probes = append([]ProbeConfig(nil), c.Probes...)
	return &out
}
