// Package sim runs a field engine through a number of leapfrog steps with
// sources, probes and metrics attached.
//
// # Thread Safety
//
// A Simulator is not safe for concurrent use. The engine it drives may
// parallelise each update internally.
package sim
