package automation

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/experiment"
	"github.com/san-kum/fdtd/internal/sim"
)

var ErrUnknownParam = errors.New("automation: unknown parameter")

// Scenario defines a scripted sequence of runs.
type Scenario struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Runs        []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one run of a scenario: a preset (or a config file) with
// optional overrides. Zero-valued overrides leave the base untouched.
type ScenarioRun struct {
	Preset  string  `yaml:"preset"`
	Config  string  `yaml:"config"`
	Courant float64 `yaml:"courant"`
	Decay   float64 `yaml:"decay"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
	SaveAs  string  `yaml:"save_as"`
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Build resolves the run into a full config.
func (s ScenarioRun) Build() (*config.Config, error) {
	var cfg *config.Config
	switch {
	case s.Config != "":
		loaded, err := config.Load(s.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	case s.Preset != "":
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if s.Courant != 0 {
		cfg.Courant = s.Courant
	}
	if s.Decay != 0 {
		cfg.Decay = s.Decay
	}
	if s.Steps != 0 {
		cfg.Steps = s.Steps
	}
	if s.Workers != 0 {
		cfg.Workers = s.Workers
	}
	if s.SaveAs != "" {
		cfg.Name = s.SaveAs
	}
	return cfg, nil
}

// Runner executes batches of experiments with the registry's default
// metrics.
type Runner struct {
	Registry *experiment.Registry
	logger   *log.Logger
}

func NewRunner() *Runner {
	return &Runner{
		Registry: experiment.NewRegistry(),
		logger:   log.New(io.Discard, "", 0),
	}
}

func (r *Runner) SetLogger(l *log.Logger) { r.logger = l }

func (r *Runner) run(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	exp := experiment.New(cfg)
	if err := exp.Setup(r.Registry.DefaultMetrics(cfg)); err != nil {
		return nil, err
	}
	defer exp.Close()
	return exp.Run(ctx)
}

// Outcome is one finished run of a scenario.
type Outcome struct {
	Config *config.Config
	Result *sim.Result
	Err    error
}

// RunScenario executes all runs in a scenario. A diverged run is recorded
// and the scenario continues; setup errors and cancellation stop it.
func (r *Runner) RunScenario(ctx context.Context, scenario *Scenario) ([]Outcome, error) {
	results := make([]Outcome, 0, len(scenario.Runs))

	for i, sr := range scenario.Runs {
		cfg, err := sr.Build()
		if err != nil {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
		r.logger.Printf("run %d/%d: %s on %s", i+1, len(scenario.Runs), cfg.Name, cfg.Grid)

		result, err := r.run(ctx, cfg)
		if result == nil {
			return results, fmt.Errorf("run %d setup: %w", i+1, err)
		}
		results = append(results, Outcome{Config: cfg, Result: result, Err: err})
		if err != nil && !errors.Is(err, sim.ErrDiverged) {
			return results, fmt.Errorf("run %d: %w", i+1, err)
		}
	}

	return results, nil
}

// ParameterSweep runs Base across NumSteps evenly spaced values of Param.
type ParameterSweep struct {
	Base     *config.Config
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

// SweepResult holds results from one point of a parameter sweep
type SweepResult struct {
	Value        float64
	StepsTaken   int
	FinalEnergy  float64
	EnergyGrowth float64
	Diverged     bool
	Err          error
}

// SetParam writes a named scalar parameter into cfg.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "courant":
		cfg.Courant = v
	case "decay":
		cfg.Decay = v
	case "amplitude":
		cfg.Source.Amplitude = v
	case "width":
		cfg.Source.Width = v
	case "delay":
		cfg.Source.Delay = v
	case "max_field":
		cfg.MaxField = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, name)
	}
	return nil
}

// RunSweep executes a parameter sweep. Values the config rejects (an
// unstable Courant number, say) are reported in SweepResult.Err instead of
// stopping the sweep.
func (r *Runner) RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}
	if err := SetParam(sweep.Base.Clone(), sweep.Param, sweep.Min); err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep
		cfg := sweep.Base.Clone()
		_ = SetParam(cfg, sweep.Param, paramVal)

		result, err := r.run(ctx, cfg)
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		sr := SweepResult{Value: paramVal, Err: err, Diverged: errors.Is(err, sim.ErrDiverged)}
		if result != nil {
			sr.StepsTaken = result.StepsTaken
			sr.FinalEnergy = result.Metrics["energy"]
			sr.EnergyGrowth = result.Metrics["energy_growth"]
		}
		results = append(results, sr)

		r.logger.Printf("sweep %d/%d: %s=%.4f", i+1, sweep.NumSteps, sweep.Param, paramVal)
	}

	return results, nil
}

// MonteCarloConfig places the source of Base at random cells with a random
// amplitude in [1-Perturbation, 1+Perturbation] times the base amplitude.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

// MonteCarloResult holds statistics from Monte Carlo runs
type MonteCarloResult struct {
	TrialID   int
	Source    config.SourceConfig
	PeakField float64
	Stable    bool // Did the field remain bounded?
}

// RunMonteCarlo executes multiple trials with random source placements
func (r *Runner) RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	for trial := 0; trial < cfg.NumTrials; trial++ {
		expCfg := cfg.Base.Clone()
		g := expCfg.Grid
		src := &expCfg.Source
		src.X, src.Y, src.Z = rng.Intn(g.NX), rng.Intn(g.NY), rng.Intn(g.NZ)
		src.Amplitude *= 1 + (rng.Float64()-0.5)*2*cfg.Perturbation

		result, err := r.run(ctx, expCfg)
		if result == nil {
			return results, err
		}
		if ctx.Err() != nil {
			return results, ctx.Err()
		}

		results = append(results, MonteCarloResult{
			TrialID:   trial,
			Source:    *src,
			PeakField: result.Metrics["peak"],
			Stable:    err == nil && result.Metrics["stability"] == 1,
		})

		if (trial+1)%10 == 0 {
			r.logger.Printf("monte carlo: %d/%d trials complete", trial+1, cfg.NumTrials)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
