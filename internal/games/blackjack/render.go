package blackjack

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// Card face size in cells.
const (
	cardW = 11
	cardH = 5
)

// Render draws the table.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	w := dst.Width()

	dst.DrawTextColor(1, 0, fmt.Sprintf("Stakeholder Confidence: %d", g.confidence), core.ColorBrightWhite)
	goal := fmt.Sprintf("Goal %d · Streak %d · Best %d", g.cfg.Rules.WinConfidence, g.stats.CurrentStreak, g.stats.HighestConfidence)
	dst.DrawTextColor(w-len([]rune(goal))-1, 0, goal, core.ColorHUD)

	if g.tutorial {
		g.drawTutorial(dst)
		return
	}

	switch g.table.State() {
	case PhaseBetting:
		g.drawBetting(dst)
	case PhasePlaying, PhaseRetrospective:
		g.drawTable(dst)
	case PhaseGameOver:
		g.drawTable(dst)
		dst.DrawMessage("FIRED. Confidence hit zero.",
			fmt.Sprintf("%d sprints · best streak %d · Enter to rehire", g.stats.TotalSprints, g.stats.BestStreak))
	case PhaseGameWon:
		g.drawTable(dst)
		dst.DrawMessage("PROMOTED TO CPO!",
			fmt.Sprintf("%d confidence · Enter to start over", g.confidence))
	}
}

func (g *Game) drawBetting(dst *core.Screen) {
	y := dst.Height() / 3
	dst.DrawTextCentered(y, "Sprint Planning", core.ColorBrightWhite)
	dst.DrawTextCentered(y+1, "How much confidence will you stake on this sprint?", core.ColorGray)

	var opts []string
	for i, b := range g.cfg.Rules.Bets {
		opts = append(opts, fmt.Sprintf("[%d] %d", i+1, b))
	}
	c := core.ColorBrightCyan
	dst.DrawTextCentered(y+3, strings.Join(opts, "   "), c)

	if g.stats.TotalSprints > 0 {
		dst.DrawTextCentered(y+5, fmt.Sprintf("Sprints %d · Best streak %d", g.stats.TotalSprints, g.stats.BestStreak), core.ColorHUD)
	}
	dst.DrawTextColor(1, dst.Height()-1, "1-3 bet · ? help · R restart · Esc menu", core.ColorGray)
}

func (g *Game) drawTable(dst *core.Screen) {
	dealerLabel := "The Deadline"
	if g.reveal {
		dealerLabel += fmt.Sprintf(" (%d)", HandValue(g.dealer))
	}
	dst.DrawTextColor(2, 2, dealerLabel, core.ColorGray)
	g.drawHand(dst, 2, 3, g.dealer, !g.reveal)

	y := 3 + cardH + 2
	dst.DrawTextColor(2, y, fmt.Sprintf("Your Velocity (%d)", HandValue(g.player)), core.ColorGray)
	g.drawHand(dst, 2, y+1, g.player, false)

	row := y + 1 + cardH + 1
	if g.bet > 0 {
		dst.DrawTextColor(2, row, fmt.Sprintf("Current Sprint: %d confidence at stake", g.bet), core.ColorHUD)
	}
	if g.message != "" {
		dst.DrawTextCentered(row+2, g.message, core.ColorAnnounce)
	}

	hint := ""
	switch {
	case g.table.State() == PhaseRetrospective:
		hint = "Enter plan next sprint · R restart · Esc menu"
	case g.busy:
		hint = "..."
	default:
		hint = "I iterate · S ship it"
		if g.CanAllIn() {
			hint += " · A all-in"
		}
	}
	dst.DrawTextColor(1, dst.Height()-1, hint, core.ColorGray)
}

// drawHand lays cards left to right; hideSecond keeps the hole card face down.
func (g *Game) drawHand(dst *core.Screen, x, y int, hand []Card, hideSecond bool) {
	for i, c := range hand {
		r := core.NewRect(x+i*(cardW+1), y, cardW, cardH)
		if hideSecond && i == 1 {
			dst.DrawBox(r, core.ColorGray)
			dst.DrawRect(core.NewRect(r.X+1, r.Y+1, r.W-2, r.H-2), '░', core.ColorGray)
			continue
		}
		color := core.ColorBrightWhite
		if c.Suit.Red() {
			color = core.ColorBrightRed
		}
		dst.DrawBox(r, color)
		dst.DrawTextColor(r.X+1, r.Y+1, c.String(), color)
		dst.DrawTextColor(r.X+1, r.Y+2, c.Ticket, core.ColorGray)
		v := c.String()
		dst.DrawTextColor(r.Right()-1-len([]rune(v)), r.Bottom()-2, v, color)
	}
}

func (g *Game) drawTutorial(dst *core.Screen) {
	lines := []string{
		"Welcome to Sprint Blackjack!",
		"",
		"You = The Product Manager",
		"Dealer = The Deadline",
		"Hand Value = Your Velocity",
		"Hit 21 = THE UNICORN!",
		"Over 21 = SCOPE CREEP!",
		"",
		fmt.Sprintf("Reach %d Stakeholder Confidence to win!", g.cfg.Rules.WinConfidence),
		"Any key: Got it!",
	}
	y := (dst.Height() - len(lines)) / 2
	for i, l := range lines {
		c := core.ColorGray
		if i == 0 {
			c = core.ColorBrightWhite
		}
		dst.DrawTextCentered(y+i, l, c)
	}
}
