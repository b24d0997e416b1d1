package core

import "sync/atomic"

// Termination is the shared stop flag of a run.
// It starts as Running and moves to a terminal state at most once.
// The zero value is ready to use.
type Termination struct {
	state atomic.Int32
}

func NewTermination() *Termination {
	return &Termination{}
}

// State returns the current state. It is safe to call from any goroutine.
func (t *Termination) State() State {
	return State(t.state.Load())
}

// Transition moves a running flag to s and returns the state in effect afterwards.
// The first terminal state wins, later transitions are no-ops.
func (t *Termination) Transition(s State) State {
	if !s.Terminal() {
		return t.State()
	}

	if t.state.CompareAndSwap(int32(Running), int32(s)) {
		return s
	}

	return t.State()
}
