package compute

// Backend runs fn over contiguous sub-ranges of [0, n) and returns when every
// range has completed.
type Backend interface {
	Name() string
	Workers() int
	ParallelFor(n int, fn func(start, end int))
	Close()
}

// New returns a Pool for workers > 1 and Serial otherwise.
func New(workers int) Backend {
	if workers <= 1 {
		return Serial{}
	}
	return NewPool(workers)
}

type Serial struct{}

func (Serial) Name() string { return "serial" }
func (Serial) Workers() int { return 1 }
func (Serial) Close()       {}

func (Serial) ParallelFor(n int, fn func(start, end int)) {
	if n > 0 {
		fn(0, n)
	}
}
