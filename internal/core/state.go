package core

// State is the lifecycle state of a run.
// Running is the initial state. Converged and Exhausted are terminal.
type State int32

const (
	Running State = iota
	Converged
	Exhausted
)

// Terminal reports whether no further batches should be started.
func (s State) Terminal() bool {
	return s != Running
}

func (s State) String() string {
	switch s {
	case Running:
		return "RUNNING"
	case Converged:
		return "CONVERGED"
	case Exhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}
