package compute

import (
	"fmt"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// Pool splits ranges into one chunk per worker. After Close it degrades to
// serial execution.
type Pool struct {
	workers int
	closed  atomic.Bool
}

// NewPool creates a pool; workers <= 0 selects runtime.NumCPU().
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{workers: workers}
}

func (p *Pool) Name() string { return fmt.Sprintf("pool(%d)", p.workers) }
func (p *Pool) Workers() int { return p.workers }

// Close is safe to call more than once.
func (p *Pool) Close() { p.closed.Store(true) }

// ParallelFor splits [0, n) into contiguous chunks and runs fn on each,
// returning when all are done. fn must not panic: it runs on a worker
// goroutine, where a panic cannot be recovered by the caller.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	workers := min(p.workers, n)
	if workers <= 1 || p.closed.Load() {
		fn(0, n)
		return
	}

	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < n; start += chunk {
		start, end := start, min(start+chunk, n)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	// Every task returns nil, so Wait only joins.
	_ = g.Wait()
}
