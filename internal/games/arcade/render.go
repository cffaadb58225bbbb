package arcade

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
)

// Style describes how entities of one category are drawn.
type Style struct {
	Fill  rune
	Color core.Color
	Label bool // write the entity label over the fill
}

// Palette maps categories to styles. Categories without a style are not drawn.
type Palette map[engine.Category]Style

// DefaultPalette returns the shared colour treatment for entity categories.
func DefaultPalette() Palette {
	return Palette{
		engine.CategoryObstacleBad:     {Fill: '▓', Color: core.ColorHarmful, Label: true},
		engine.CategoryObstacleNeutral: {Fill: '▒', Color: core.ColorOrange, Label: true},
		engine.CategoryCollectibleGood: {Fill: '░', Color: core.ColorBeneficial, Label: true},
		engine.CategoryPowerUp:         {Fill: '█', Color: core.ColorPowerUp, Label: true},
		engine.CategoryParticle:        {Fill: '·', Color: core.ColorBrightYellow},
	}
}

// View fits the field below the HUD rows of dst.
func View(field core.Vec, dst *core.Screen) core.Viewport {
	return core.NewViewport(field, dst.Width(), dst.Height(), HUDRows)
}

// DrawEntities draws entities clipped to the playfield.
func DrawEntities(dst *core.Screen, view core.Viewport, ents []engine.Entity, p Palette) {
	for _, e := range ents {
		st, ok := p[e.Category]
		if !ok {
			continue
		}
		r, ok := clip(view.BoxToRect(e.Box()), view.Area)
		if !ok {
			continue
		}
		dst.DrawRect(r, st.Fill, st.Color)
		if st.Label && e.Label != "" {
			drawLabel(dst, r, e.Label, st.Color)
		}
	}
}

// DrawPlayer draws the player box clipped to the playfield.
func DrawPlayer(dst *core.Screen, view core.Viewport, b core.Box, fill rune, c core.Color) {
	if r, ok := clip(view.BoxToRect(b), view.Area); ok {
		dst.DrawRect(r, fill, c)
	}
}

// drawLabel writes text on the middle row of r, truncated to fit.
func drawLabel(dst *core.Screen, r core.Rect, text string, c core.Color) {
	runes := []rune(text)
	if len(runes) > r.W {
		if r.W < 2 {
			return
		}
		runes = append(runes[:r.W-1], '…')
	}
	x := r.X + (r.W-len(runes))/2
	dst.DrawTextColor(x, r.Y+r.H/2, string(runes), c)
}

func clip(r, area core.Rect) (core.Rect, bool) {
	x0, y0 := core.Max(r.X, area.X), core.Max(r.Y, area.Y)
	x1, y1 := core.Min(r.Right(), area.Right()), core.Min(r.Bottom(), area.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return core.Rect{}, false
	}
	return core.NewRect(x0, y0, x1-x0, y1-y0), true
}

// DrawHUD writes the top status row: left-aligned and right-aligned text.
func DrawHUD(dst *core.Screen, left, right string) {
	dst.DrawTextColor(1, 0, left, core.ColorBrightWhite)
	if right != "" {
		dst.DrawTextColor(dst.Width()-len([]rune(right))-1, 0, right, core.ColorHUD)
	}
}

// DrawProgress draws a labelled bar on row y spanning the screen width.
func DrawProgress(dst *core.Screen, y int, label string, frac float64, c core.Color) {
	frac = core.ClampF(frac, 0, 1)
	pct := fmt.Sprintf(" %3.0f%%", frac*100)
	w := dst.Width() - len([]rune(label)) - len(pct) - 4
	if w < 4 {
		dst.DrawTextColor(1, y, label+pct, c)
		return
	}
	filled := int(frac * float64(w))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", w-filled)
	dst.DrawTextColor(1, y, label+" ", core.ColorHUD)
	dst.DrawTextColor(2+len([]rune(label)), y, bar, c)
	dst.DrawTextColor(2+len([]rune(label))+w, y, pct, core.ColorHUD)
}

// DrawAnnouncement centres a transient banner in the upper playfield.
func DrawAnnouncement(dst *core.Screen, view core.Viewport, text string) {
	if text == "" {
		return
	}
	dst.DrawTextCentered(view.Area.Y+view.Area.H/4, "« "+text+" »", core.ColorAnnounce)
}

// DrawFooter writes key hints on the last row.
func DrawFooter(dst *core.Screen, text string) {
	dst.DrawTextColor(1, dst.Height()-1, text, core.ColorGray)
}

// Hearts renders a remaining-hits meter like "♥♥♡".
func Hearts(hits, max int) string {
	if max <= 0 {
		return ""
	}
	left := core.Clamp(max-hits, 0, max)
	return strings.Repeat("♥", left) + strings.Repeat("♡", max-left)
}

// BestText formats a best score or a placeholder.
func BestText(snap engine.Snapshot, format string) string {
	if !snap.HasBest {
		return "Best: -"
	}
	return "Best: " + fmt.Sprintf(format, snap.Best)
}

// DrawOverlay draws the start, pause and terminal messages shared by all
// engine games. Titles are per game.
func DrawOverlay(dst *core.Screen, snap engine.Snapshot, t Titles) {
	switch {
	case snap.Status == engine.StatusStart:
		dst.DrawMessage(t.Start, "Press Space to start")
	case snap.Paused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case snap.Status == engine.StatusWin:
		dst.DrawMessage(t.Win+newBest(snap), "R play again · Enter title screen")
	case snap.Status == engine.StatusGameOver:
		dst.DrawMessage(t.GameOver+newBest(snap), "R play again · Enter title screen")
	}
}

// Titles holds per-game overlay titles.
type Titles struct {
	Start    string
	Win      string
	GameOver string
}

func newBest(snap engine.Snapshot) string {
	if snap.NewBest {
		return "  ★ NEW BEST ★"
	}
	return ""
}
