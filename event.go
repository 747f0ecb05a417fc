package fireworks

// EventType identifies an engine event.
type EventType uint8

const (
	EventLaunch      EventType = iota // a rocket was added
	EventExplode                      // a rocket burst into sparks
	EventStateChange                  // the engine changed State
)

// String returns the event type name.
func (t EventType) String() string {
	switch t {
	case EventLaunch:
		return "launch"
	case EventExplode:
		return "explode"
	case EventStateChange:
		return "state"
	default:
		return "unknown"
	}
}

// Event carries engine activity to sinks such as audio or an ECS bridge.
type Event struct {
	Type     EventType
	Frame    uint64
	Location Vector
	Color    Color
	// Explode fields
	Spark SparkKind
	Count int
	// State change fields
	State    State
	Previous State
}

// EventSink receives engine events. Launch and explode events are emitted
// from the redraw pass; state changes from whichever goroutine made them.
// Implementations must not block.
type EventSink interface {
	EmitEvent(event Event)
}

// EventSinkFunc adapts a function to the EventSink interface.
type EventSinkFunc func(Event)

// EmitEvent calls f.
func (f EventSinkFunc) EmitEvent(event Event) {
	f(event)
}
