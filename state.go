package fireworks

import "fmt"

// State is the animation engine's run state.
type State uint32

const (
	Stopped State = iota // no loop, registry empty
	Running              // launching, updating and rendering
	Paused               // rendering only; physics frozen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return fmt.Sprintf("state(%d)", uint32(s))
	}
}
