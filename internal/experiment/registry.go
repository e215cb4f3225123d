package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/fdtd/internal/config"
	"github.com/san-kum/fdtd/internal/metrics"
	"github.com/san-kum/fdtd/internal/sim"
)

// DefaultStabilityThreshold bounds the field magnitude counted as stable when
// the config sets no max_field.
const DefaultStabilityThreshold = 1e3

type Registry struct {
	metrics map[string]func(cfg *config.Config) sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func(cfg *config.Config) sim.Metric),
	}

	r.metrics["energy"] = func(*config.Config) sim.Metric { return metrics.NewEnergy() }
	r.metrics["energy_growth"] = func(*config.Config) sim.Metric { return metrics.NewEnergyGrowth() }
	r.metrics["peak"] = func(*config.Config) sim.Metric { return metrics.NewPeak() }
	r.metrics["stability"] = func(cfg *config.Config) sim.Metric {
		threshold := DefaultStabilityThreshold
		if cfg != nil && cfg.MaxField > 0 {
			threshold = cfg.MaxField
		}
		return metrics.NewStability(threshold)
	}

	return r
}

func (r *Registry) GetMetric(name string, cfg *config.Config) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(cfg), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns one instance of every registered metric.
func (r *Registry) DefaultMetrics(cfg *config.Config) []sim.Metric {
	out := make([]sim.Metric, 0, len(r.metrics))
	for _, name := range r.ListMetrics() {
		out = append(out, r.metrics[name](cfg))
	}
	return out
}
