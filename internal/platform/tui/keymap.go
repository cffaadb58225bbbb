package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game input.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	}

	switch key {
	case "w", "up":
		return core.ActionUp, false
	case "s", "down":
		return core.ActionDown, false
	case "a", "left":
		return core.ActionLeft, false
	case "d", "right":
		return core.ActionRight, false
	case " ": // Space for jump and start
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "b", "esc":
		return core.ActionBack, false
	case "p", "tab":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	case "?":
		return core.ActionHelp, false
	case "backspace":
		return core.ActionBackspace, false
	}

	return core.ActionNone, false
}

// MapTextKey translates a key while the game is reading typed text.
// Printable keys become text; only control keys map to actions.
func (km *KeyMapper) MapTextKey(msg tea.KeyMsg) (action core.Action, text []rune, isQuit bool) {
	switch msg.Type {
	case tea.KeyCtrlC:
		return core.ActionQuit, nil, true
	case tea.KeyEnter:
		return core.ActionConfirm, nil, false
	case tea.KeyBackspace:
		return core.ActionBackspace, nil, false
	case tea.KeyEsc:
		return core.ActionBack, nil, false
	case tea.KeyTab:
		return core.ActionPause, nil, false
	case tea.KeySpace:
		return core.ActionNone, []rune{' '}, false
	case tea.KeyRunes:
		if msg.Alt {
			return core.ActionNone, nil, false
		}
		return core.ActionNone, msg.Runes, false
	}
	return core.ActionNone, nil, false
}

// MapKeyToFrame updates an input frame based on a key message.
// In text mode printable keys are typed instead of mapped; otherwise they are
// mapped and also typed, so games can read letters and digits directly.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, textMode bool) bool {
	if textMode {
		action, text, isQuit := km.MapTextKey(msg)
		if action != core.ActionNone && !isQuit {
			frame.Set(action)
		}
		for _, r := range text {
			frame.Type(r)
		}
		return isQuit
	}

	action, isQuit := km.MapKey(msg)
	if isQuit {
		return true
	}
	if action != core.ActionNone {
		frame.Set(action)
	}
	if msg.Type == tea.KeyRunes && !msg.Alt {
		for _, r := range msg.Runes {
			frame.Type(r)
		}
	}
	return false
}

// MapMouseToFrame records the pointer position; a left click also counts
// as the primary action.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	switch msg.Action {
	case tea.MouseActionMotion:
		frame.Point(msg.X, msg.Y)
	case tea.MouseActionPress:
		frame.Point(msg.X, msg.Y)
		if msg.Button == tea.MouseButtonLeft {
			frame.Set(core.ActionJump)
		}
	}
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionScoreboard
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	case "tab":
		return MenuActionScoreboard
	}

	return MenuActionNone
}
