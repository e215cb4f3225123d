package config

import (
	"sort"

	"github.com/san-kum/fdtd/internal/fdtd"
)

func preset(name string, edit func(c *Config)) *Config {
	c := DefaultConfig()
	c.Name = name
	edit(c)
	return c
}

var Presets = map[string]*Config{
	"cavity": preset("cavity", func(c *Config) {
		c.MaxField = 1e3
	}),
	"impulse": preset("impulse", func(c *Config) {
		c.Grid = fdtd.Grid{NX: 16, NY: 16, NZ: 16}
		c.Steps = 200
		c.Source.Kind = "impulse"
		c.Source.Delay = 0
		c.Center()
	}),
	"lossy": preset("lossy", func(c *Config) {
		c.Decay = 0.995
		c.Steps = 600
	}),
	"periodic": preset("periodic", func(c *Config) {
		c.Grid = fdtd.Grid{NX: 32, NY: 32, NZ: 16}
		c.PEC = false
		c.Boundaries = fdtd.PeriodicBoundaries()
		c.Source.Kind = "sine"
		c.Source.Width = 20
		c.Steps = 400
		c.Center()
	}),
	"slab": preset("slab", func(c *Config) {
		c.Grid = fdtd.Grid{NX: 48, NY: 48, NZ: 7}
		c.Source.Polarization = "x"
		c.Probes[0].Polarization = "x"
		c.Center()
	}),
	"large": preset("large", func(c *Config) {
		c.Grid = fdtd.Grid{NX: 96, NY: 96, NZ: 96}
		c.Steps = 500
		c.Source.Delay = 60
		c.Source.Width = 20
		c.Center()
	}),
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
