// Package automation runs batches of experiments: YAML scenarios, parameter
// sweeps and Monte Carlo source placements.
package automation
