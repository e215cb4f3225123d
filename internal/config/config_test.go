package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fdtd/internal/fdtd"
	"github.com/san-kum/fdtd/internal/operator"
	"github.com/san-kum/fdtd/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Name != "cavity" {
		t.Errorf("expected name cavity, got %s", cfg.Name)
	}
	if cfg.Steps <= 0 {
		t.Error("steps should be positive")
	}
	if cfg.Boundaries != fdtd.DefaultBoundaries() {
		t.Errorf("expected default boundaries, got %+v", cfg.Boundaries)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("periodic")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Boundaries != fdtd.PeriodicBoundaries() {
		t.Errorf("expected periodic boundaries, got %+v", cfg.Boundaries)
	}
	if cfg.PEC {
		t.Error("periodic preset should not close the faces")
	}
}

func TestGetPreset_ReturnsCopy(t *testing.T) {
	a := GetPreset("cavity")
	a.Steps = 1
	a.Probes[0].X = 0

	b := GetPreset("cavity")
	if b.Steps == 1 || b.Probes[0].X == 0 {
		t.Error("modifying a preset copy changed the registered preset")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(presets))
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}
}

func TestPresetsValid(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			cfg := GetPreset(name)
			if cfg.Name != name {
				t.Errorf("expected name %s, got %s", name, cfg.Name)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("invalid preset: %v", err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		edit   func(c *Config)
		target error
	}{
		{"zero grid", func(c *Config) { c.Grid.NZ = 0 }, fdtd.ErrInvalidGrid},
		{"courant too large", func(c *Config) { c.Courant = 0.6 }, operator.ErrUnstableCourant},
		{"zero courant", func(c *Config) { c.Courant = 0 }, operator.ErrUnstableCourant},
		{"decay above one", func(c *Config) { c.Decay = 1.1 }, ErrInvalidConfig},
		{"zero steps", func(c *Config) { c.Steps = 0 }, ErrInvalidConfig},
		{"negative workers", func(c *Config) { c.Workers = -2 }, ErrInvalidConfig},
		{"negative max field", func(c *Config) { c.MaxField = -1 }, ErrInvalidConfig},
		{"bad boundary", func(c *Config) { c.Boundaries.Z.Upper = fdtd.Policy(9) }, fdtd.ErrInvalidBoundary},
		{"source outside", func(c *Config) { c.Source.X = 100 }, ErrInvalidConfig},
		{"source kind", func(c *Config) { c.Source.Kind = "laser" }, sim.ErrInvalidSource},
		{"probe quantity", func(c *Config) { c.Probes[0].Quantity = "charge" }, sim.ErrInvalidProbe},
		{"probe outside", func(c *Config) { c.Probes[0].Z = -1 }, ErrInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
		})
	}
}

func TestBuildSourceNone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Source.Kind = "none"
	src, err := cfg.BuildSource()
	if err != nil || src != nil {
		t.Errorf("expected no source, got %v, %v", src, err)
	}
}

func TestMaterial(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.Material(); got != operator.Lossless(DefaultCourant) {
		t.Errorf("expected lossless material, got %+v", got)
	}
	cfg.Decay = 0.9
	if got := cfg.Material(); got.VV != 0.9 || got.II != 0.9 {
		t.Errorf("expected damped material, got %+v", got)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := GetPreset("periodic")
	cfg.Workers = 3
	cfg.Boundaries.X.Lower = fdtd.Mirror

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Grid != cfg.Grid {
		t.Errorf("expected grid %v, got %v", cfg.Grid, loaded.Grid)
	}
	if loaded.Workers != 3 {
		t.Errorf("expected 3 workers, got %d", loaded.Workers)
	}
	if loaded.Boundaries != cfg.Boundaries {
		t.Errorf("expected boundaries %+v, got %+v", cfg.Boundaries, loaded.Boundaries)
	}
	if loaded.Source != cfg.Source {
		t.Errorf("expected source %+v, got %+v", cfg.Source, loaded.Source)
	}
}

func TestLoadPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	data := "steps: 42\nboundaries:\n  z:\n    lower: periodic\n    upper: periodic\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Steps != 42 {
		t.Errorf("expected 42 steps, got %d", cfg.Steps)
	}
	if cfg.Boundaries.Z.Lower != fdtd.Periodic {
		t.Errorf("expected periodic z lower, got %v", cfg.Boundaries.Z.Lower)
	}
	if cfg.Boundaries.X != fdtd.DefaultBoundaries().X {
		t.Errorf("expected default x boundary kept, got %+v", cfg.Boundaries.X)
	}
	if cfg.Courant != DefaultCourant {
		t.Errorf("expected default courant, got %f", cfg.Courant)
	}
}

func TestLoadBadPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("boundaries:\n  x:\n    lower: sticky\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown policy")
	}
}
