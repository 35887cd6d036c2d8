package intent

import "fmt"

// State is the lifecycle state of a run.
type State int

const (
	Running State = iota
	AwaitingResolution
	Recovering
	Done
	Failed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingResolution:
		return "awaiting-resolution"
	case Recovering:
		return "recovering"
	case Done:
		return "done"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsTerminal reports whether the state ends a run.
func (s State) IsTerminal() bool {
	return s == Done || s == Failed
}

func isAllowedTransition(from, to State) bool {
	switch from {
	case Running:
		return to == AwaitingResolution || to == Done || to == Recovering
	case AwaitingResolution:
		return to == Running || to == Recovering
	case Recovering:
		return to == Done || to == Failed
	default:
		return false
	}
}

// machine tracks the state of a single run.
type machine struct {
	state State
}

// to moves the machine to next. Disallowed transitions are programming
// errors in the engine and panic.
func (m *machine) to(next State) {
	if !isAllowedTransition(m.state, next) {
		panic(fmt.Sprintf("intent: disallowed transition %s -> %s", m.state, next))
	}
	m.state = next
}
