package backend

// PointerPhase is one step of a pointer gesture.
type PointerPhase int

const (
	PointerNone PointerPhase = iota
	PointerDown
	PointerMove
	PointerUp
)

// String returns the phase name.
func (p PointerPhase) String() string {
	switch p {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return "none"
	}
}

// PointerEvent is a press, motion or release at a cell.
type PointerEvent struct {
	Phase PointerPhase
	X, Y  int

	// Held is true while the primary button is down.
	Held bool
}

// PointerTracker turns terminal mouse reports, which carry the set of held
// buttons rather than press and release edges, into pointer phases for the
// primary button. Wheel and other buttons are ignored.
type PointerTracker struct {
	held    bool
	x, y    int
	hasLast bool
}

// Track consumes a mouse event. It returns false when the event carries no
// pointer change.
func (t *PointerTracker) Track(ev Event) (PointerEvent, bool) {
	if ev.Type != EventMouse {
		return PointerEvent{}, false
	}

	primary := ev.Buttons.Has(ButtonPrimary)
	moved := !t.hasLast || ev.MouseX != t.x || ev.MouseY != t.y
	t.x, t.y, t.hasLast = ev.MouseX, ev.MouseY, true

	var phase PointerPhase
	switch {
	case primary && !t.held:
		phase = PointerDown
	case !primary && t.held:
		phase = PointerUp
	case moved:
		phase = PointerMove
	default:
		return PointerEvent{}, false
	}

	t.held = primary
	return PointerEvent{Phase: phase, X: ev.MouseX, Y: ev.MouseY, Held: primary}, true
}

// Held reports whether the primary button is down.
func (t *PointerTracker) Held() bool {
	return t.held
}

// Reset forgets a held button, e.g. after the terminal loses focus.
func (t *PointerTracker) Reset() {
	t.held = false
}
