package playback

import "fmt"

// State is the playback phase.
type State int

const (
	// Idle means no animation is in progress. A trace may still be kept
	// for [Controller.Replay].
	Idle State = iota
	// Running means ticks are advancing the step counter.
	Running
	// Completed means every visited node has been revealed and the final
	// paths are shown.
	Completed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText encodes the state by name for JSON frames.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name produced by MarshalText.
func (s *State) UnmarshalText(text []byte) error {
	switch string(text) {
	case "idle":
		*s = Idle
	case "running":
		*s = Running
	case "completed":
		*s = Completed
	default:
		return fmt.Errorf("unknown playback state %q", text)
	}
	return nil
}
