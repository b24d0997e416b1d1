package montecarlo

import "github.com/destel/montecarlo/internal/core"

// Accumulator holds the sum, the sum of squares and the count of a set of samples.
// A batch produces one; the run keeps a global one that batches are merged into.
type Accumulator = core.Accumulator

// State is the lifecycle state of a run.
type State = core.State

const (
	// Running is the initial state.
	Running = core.Running
	// Converged means the relative standard error dropped below the tolerance.
	Converged = core.Converged
	// Exhausted means the trial cap was exceeded before convergence.
	Exhausted = core.Exhausted
)

// Merge combines all accumulators from the input channel using up to n goroutines.
// The grouping of merges is undefined, which is fine since merging is associative.
// It combines the results of independent runs, or the per-worker partials of one run.
func Merge(in <-chan Accumulator, n int) Accumulator {
	return core.MergeAll(in, n)
}
