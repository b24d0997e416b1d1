package core

import "sync"

// Coordinator owns the global accumulator of a run.
// MergeAndCheck folds one batch into it, evaluates the stopping rule on the post-merge state
// and returns the state of the run, which is sticky once terminal.
type Coordinator interface {
	MergeAndCheck(batch Accumulator) State
	State() State

	// Close stops accepting batches and returns the final accumulator and number of merged batches.
	// MergeAndCheck must not be called after Close.
	Close() (Accumulator, int64)
}

// Observer is called after every merge with the merged batch and the post-merge global state.
// Calls are serialized.
type Observer func(batch, global Accumulator)

// Global is a Coordinator that guards the accumulator with a mutex.
// Merge and convergence check happen inside one critical section, so a torn state is never observed.
type Global struct {
	*Termination

	rtol      float64
	maxTrials int64
	observe   Observer

	mu      sync.Mutex
	acc     Accumulator
	batches int64
}

func NewGlobal(rtol float64, maxTrials int64, observe Observer) *Global {
	return &Global{
		Termination: NewTermination(),
		rtol:        rtol,
		maxTrials:   maxTrials,
		observe:     observe,
	}
}

func (g *Global) MergeAndCheck(batch Accumulator) State {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.acc = g.acc.Merge(batch)
	g.batches++

	if g.observe != nil {
		g.observe(batch, g.acc)
	}

	return g.Transition(Check(g.rtol, g.maxTrials, g.acc))
}

func (g *Global) Close() (Accumulator, int64) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.acc, g.batches
}
