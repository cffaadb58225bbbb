// Package arcade holds what the engine-driven games share: the session
// keys every game understands, the frame clock fallback and the drawing
// of a logical playfield onto the cell screen.
package arcade

import (
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
)

// HUDRows is the number of screen rows reserved above the playfield.
const HUDRows = 2

// Session applies the session keys to e and reports whether the frame was
// consumed. A consumed frame must not be forwarded to the simulation.
//
//	start:    Space/Enter begins a session
//	terminal: R/Space plays again, Enter returns to the start screen
//	playing:  P toggles pause
func Session(e *engine.Engine, in core.InputFrame) bool {
	st := e.Status()
	switch {
	case st == engine.StatusStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			e.Start()
		}
		return true
	case st.Terminal():
		switch {
		case in.Has(core.ActionRestart), in.Has(core.ActionJump):
			e.Start()
		case in.Has(core.ActionConfirm):
			e.Reset()
		}
		return true
	}

	if in.Has(core.ActionPause) {
		e.TogglePause()
	}
	return e.Paused()
}

// Advance runs one frame. Frames without a timestamp (tests, replays)
// advance exactly one nominal tick.
func Advance(e *engine.Engine, in core.InputFrame) engine.StepResult {
	if in.Now.IsZero() {
		return e.Tick(1)
	}
	return e.Step(in.Now)
}

// State converts the engine status to the platform's game state.
func State(e *engine.Engine, score int) core.GameState {
	st := e.Status()
	return core.GameState{
		Score:    score,
		Status:   string(st),
		GameOver: st.Terminal(),
		Won:      st == engine.StatusWin,
		Paused:   e.Paused(),
	}
}

// PointAt moves a free player to the pointer cell, if the frame has one.
// The cell centre is used so the mapping is symmetric.
func PointAt(e *engine.Engine, in core.InputFrame, view core.Viewport) {
	if in.Pointer == nil || view.Area.W == 0 {
		return
	}
	e.PointAt(float64(in.Pointer.X)+0.5, float64(in.Pointer.Y)+0.5, view.Bounds())
}
