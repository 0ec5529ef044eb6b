package vault2html

import "runtime"

// Worker sizing constants.
const (
	// MinWorkers ensures at least one section renders at a time.
	MinWorkers = 1

	// MaxWorkers caps concurrent section rendering.
	MaxWorkers = 64
)

// ResolveWorkers determines how many sections render concurrently.
// Priority: explicit workers > GOMAXPROCS (adjusted by automaxprocs in
// containers).
func ResolveWorkers(workers int) int {
	if workers > 0 {
		return min(workers, MaxWorkers)
	}

	n := runtime.GOMAXPROCS(0)
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
