package core

import "time"

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // W, Up arrow
	ActionDown             // S, Down arrow
	ActionLeft             // A, Left arrow
	ActionRight            // D, Right arrow
	ActionJump             // Space, click - primary action (jump, start)
	ActionConfirm          // Enter - confirm / submit
	ActionBack             // B, Escape - go back to menu
	ActionRestart          // R key - restart game after game over
	ActionQuit             // Q, Ctrl+C - exit game/session
	ActionPause            // P - pause/unpause game
	ActionBackspace        // Backspace - edit typed text
	ActionHelp             // ? - show the tutorial again
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionBackspace:
		return "Backspace"
	case ActionHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// Pointer is a pointer (mouse/touch) position in screen cells.
type Pointer struct {
	X, Y int
}

// InputFrame represents the input state during one simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
	// Text holds printable runes typed this frame, in order.
	Text []rune
	// Pointer is the last pointer position reported this frame, if any.
	Pointer *Pointer
	// Now is the wall-clock time of the frame callback. Zero means
	// "no timestamp", and games fall back to a nominal frame.
	Now time.Time
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Type appends a typed rune to this frame.
func (f *InputFrame) Type(r rune) {
	f.Text = append(f.Text, r)
}

// Point records a pointer position for this frame.
func (f *InputFrame) Point(x, y int) {
	f.Pointer = &Pointer{X: x, Y: y}
}

// Clear resets all input for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
	f.Text = f.Text[:0]
	f.Pointer = nil
	f.Now = time.Time{}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	clone.Text = append([]rune(nil), f.Text...)
	if f.Pointer != nil {
		p := *f.Pointer
		clone.Pointer = &p
	}
	clone.Now = f.Now
	return clone
}
