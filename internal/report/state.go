package report

// State is a step of the report generation retry machine.
type State int

// States of Generate. Success, ExhaustedFallback and Failed are terminal.
const (
	StateAttempting State = iota
	StateBusyRetry
	StateExhaustedFallback
	StateFailed
	StateSuccess
)

func (s State) String() string {
	switch s {
	case StateAttempting:
		return "attempting"
	case StateBusyRetry:
		return "busy_retry"
	case StateExhaustedFallback:
		return "exhausted_fallback"
	case StateFailed:
		return "failed"
	case StateSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Terminal reports whether s ends the machine.
func (s State) Terminal() bool {
	return s == StateExhaustedFallback || s == StateFailed || s == StateSuccess
}
