package orchestrator

// State is the loop's position within a cycle.
type State uint8

const (
	StateIdle State = iota
	StateCapturing
	StateDeciding
	StateSleeping
	StateNotified
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateCapturing:
		return "capturing"
	case StateDeciding:
		return "deciding"
	case StateSleeping:
		return "sleeping"
	case StateNotified:
		return "notified"
	default:
		return "unknown"
	}
}

// Status is a snapshot of the loop.
type Status struct {
	State        State
	Cycles       int
	LastAction   Action
	LastEstimate *float64
}
