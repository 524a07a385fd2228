package term

import "src.elv.sh/rangebar/pkg/ui"

// Event represents an event that can be read from the terminal.
type Event interface {
	isEvent()
}

// KeyEvent represents a key press.
type KeyEvent ui.Key

// K constructs a new KeyEvent.
func K(r rune, mods ...ui.Mod) KeyEvent {
	return KeyEvent(ui.K(r, mods...))
}

// MouseEvent represents a mouse event, either a button press, a button
// release or a motion with a button held.
type MouseEvent struct {
	// Position of the mouse, 1-based as reported by the terminal.
	Pos
	Down bool
	// Number of the Button, 0-based. -1 for unknown. Wheel events are
	// reported as presses of buttons 4 to 7 and have no release.
	Button int
	Mod    ui.Mod
	// Whether the event reports motion rather than a press or release.
	Motion bool
}

// CursorPosition represents a report of the current cursor position from the
// terminal driver, usually as a response from a cursor position request.
type CursorPosition Pos

// PasteSetting indicates the start or finish of pasted text.
type PasteSetting bool

func (KeyEvent) isEvent()       {}
func (MouseEvent) isEvent()     {}
func (CursorPosition) isEvent() {}
func (PasteSetting) isEvent()   {}
