// Package compute provides the execution backends the field engine sweeps
// its x slabs with, and reports the SIMD features of the host CPU.
//
// Two backends are available:
//
//   - Serial: one goroutine, the default
//   - Pool: contiguous x slabs fanned out over a bounded errgroup
//
// # Example
//
//	backend := compute.New(runtime.NumCPU())
//	defer backend.Close()
//	backend.ParallelFor(nx, func(start, end int) { ... })
//
// Each call of fn must write only the slabs it was handed. The field engine
// guarantees this because an update writes one field and reads the other.
package compute
