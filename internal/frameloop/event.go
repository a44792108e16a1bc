package frameloop

// EventKind tags the closed set of input events the loop understands.
type EventKind int

const (
	EventOther EventKind = iota
	EventQuit
	EventKeyDown
)

func (k EventKind) String() string {
	switch k {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown"
	default:
		return "other"
	}
}

// Key identifies a keyboard key. Only keys the loop reacts to are named.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
)

// Event is one input event drained from a backend.
type Event struct {
	Kind EventKind
	Key  Key // set for EventKeyDown
}

// QuitEvent is a window-close or interrupt request.
func QuitEvent() Event { return Event{Kind: EventQuit} }

// KeyDownEvent is a key press.
func KeyDownEvent(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// OtherEvent is any event the loop ignores.
func OtherEvent() Event { return Event{Kind: EventOther} }

// Terminates reports whether e ends the loop.
func (e Event) Terminates() bool {
	switch e.Kind {
	case EventQuit:
		return true
	case EventKeyDown:
		return e.Key == KeyEscape
	default:
		return false
	}
}
