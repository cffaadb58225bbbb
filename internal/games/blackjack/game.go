// Package blackjack implements Sprint Blackjack: the product manager plays
// the deadline for stakeholder confidence, one sprint per hand.
package blackjack

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/pm-arcade/internal/config"
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/registry"
)

// Phase is the table state.
type Phase string

const (
	PhaseBetting       Phase = "betting"
	PhasePlaying       Phase = "playing"
	PhaseRetrospective Phase = "retrospective"
	PhaseGameOver      Phase = "gameOver"
	PhaseGameWon       Phase = "gameWon"
)

// Terminal reports whether the phase ends a session.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseGameWon
}

// Edges is the table's transition graph. Every phase can restart into
// betting; a new round also re-enters betting.
var Edges = map[Phase][]Phase{
	PhaseBetting:       {PhasePlaying, PhaseBetting},
	PhasePlaying:       {PhaseRetrospective, PhaseGameOver, PhaseGameWon, PhaseBetting},
	PhaseRetrospective: {PhaseBetting},
	PhaseGameOver:      {PhaseBetting},
	PhaseGameWon:       {PhaseBetting},
}

// Follow-up delays that are not configurable.
const (
	followUpMs      = 300
	tutorialSeconds = 8
)

// Game implements Sprint Blackjack.
type Game struct {
	cfg     config.BlackjackConfig
	runtime core.RuntimeConfig
	deps    registry.Deps
	sounds  engine.SoundPlayer

	table *engine.Machine[Phase]
	sched engine.Scheduler
	clock *engine.Clock
	shoe  *Shoe
	rng   *rand.Rand

	confidence int
	bet        int
	player     []Card
	dealer     []Card
	reveal     bool // dealer's hole card is face up
	busy       bool // cards are moving; player actions wait
	doubled    bool
	message    string
	stats      Stats

	tutorial     bool
	tutorialLeft float64
	ended        bool
}

var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// New creates a new Sprint Blackjack game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "blackjack"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sprint Blackjack"
}

// Configure injects persistence and audio.
func (g *Game) Configure(d registry.Deps) {
	g.deps = d
}

// Reset loads the configuration and seats a fresh table.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadBlackjack(configPath)
	if err != nil {
		cfg = config.DefaultBlackjackConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBlackjackPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.sounds = g.deps.Sounds
	if g.sounds == nil {
		g.sounds = engine.NopSounds{}
	}
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.table = engine.NewMachine(PhaseBetting, Edges)
	g.clock = engine.NewClock()
	g.sched.Cancel()
	g.stats = LoadStats(g.deps.KV, cfg.Rules.StartingConfidence)
	g.tutorial = false
	if !engine.Flag(g.deps.KV, TutorialKey) {
		g.showTutorial()
	}
	g.newSession()
}

// newSession restores the bankroll and a fresh shoe.
func (g *Game) newSession() {
	g.confidence = g.cfg.Rules.StartingConfidence
	g.shoe = NewShoe(g.rng, g.cfg.Rules.ReshuffleBelow)
	g.clearHands()
}

func (g *Game) clearHands() {
	g.bet = 0
	g.player, g.dealer = nil, nil
	g.reveal, g.busy, g.doubled = false, false, false
	g.message = ""
}

func ms(n int) float64 {
	return engine.Ticks(time.Duration(n) * time.Millisecond)
}

// after schedules fn on the table clock for the current generation.
func (g *Game) after(delayMs int, fn func()) {
	g.sched.After(ms(delayMs), g.table.Generation(), fn)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.ended = false
	dt := 1.0
	if !in.Now.IsZero() {
		dt = g.clock.Tick(in.Now)
	}

	if g.tutorial {
		g.tutorialLeft -= dt
		if g.tutorialLeft <= 0 || len(in.Actions) > 0 || len(in.Text) > 0 {
			g.dismissTutorial()
		}
		return core.StepResult{State: g.State()}
	}

	g.handleInput(in)
	g.sched.Advance(dt, g.table.Generation())

	return core.StepResult{State: g.State(), Ended: g.ended}
}

// handleInput maps keys to table actions for the current phase. Bets use
// the digit keys; letters come through as typed text.
func (g *Game) handleInput(in core.InputFrame) {
	keys := map[rune]bool{}
	for _, r := range in.Text {
		keys[r] = true
	}

	if in.Has(core.ActionHelp) || keys['?'] {
		g.showTutorial()
		return
	}
	if in.Has(core.ActionRestart) {
		g.Restart()
		return
	}

	switch g.table.State() {
	case PhaseBetting:
		for i, amount := range g.cfg.Rules.Bets {
			if keys[rune('1'+i)] {
				g.PlaceBet(amount)
				return
			}
		}
	case PhasePlaying:
		switch {
		case keys['i'] || keys['h']:
			g.Iterate()
		case keys['s'] || in.Has(core.ActionJump):
			g.ShipIt()
		case keys['a'] || keys['d']:
			g.AllIn()
		}
	case PhaseRetrospective:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) || keys['n'] {
			g.NextSprint()
		}
	case PhaseGameOver, PhaseGameWon:
		if in.Has(core.ActionConfirm) || in.Has(core.ActionJump) {
			g.Restart()
		}
	}
}

// PlaceBet stakes amount and deals. Bets above the current confidence are
// ignored.
func (g *Game) PlaceBet(amount int) bool {
	if g.table.State() != PhaseBetting || g.busy || amount <= 0 || amount > g.confidence {
		return false
	}
	if g.table.To(PhasePlaying) != nil {
		return false
	}
	g.clearHands()
	g.bet = amount
	g.busy = true

	p1, d1, p2, d2 := g.shoe.Draw(), g.shoe.Draw(), g.shoe.Draw(), g.shoe.Draw()
	deals := []func(){
		func() { g.player = append(g.player, p1) },
		func() { g.dealer = append(g.dealer, d1) },
		func() { g.player = append(g.player, p2) },
		func() { g.dealer = append(g.dealer, d2) },
	}
	for i, deal := range deals {
		last := i == len(deals)-1
		g.after(g.dealDelay(i), func() {
			g.sounds.Play(engine.SoundDeal)
			deal()
			if last {
				g.busy = false
				if HandValue(g.player) == 21 {
					g.busy = true
					g.after(followUpMs, g.unicorn)
				}
			}
		})
	}
	return true
}

func (g *Game) dealDelay(i int) int {
	d := g.cfg.Timing.DealMs
	if len(d) == 0 {
		return 150 * (i + 1)
	}
	if i < len(d) {
		return d[i]
	}
	return d[len(d)-1]
}

// Iterate draws one more ticket. Ignored outside the player's turn.
func (g *Game) Iterate() bool {
	if g.table.State() != PhasePlaying || g.busy {
		return false
	}
	g.draw()
	return true
}

func (g *Game) draw() {
	g.sounds.Play(engine.SoundIterate)
	g.player = append(g.player, g.shoe.Draw())

	switch {
	case HandValue(g.player) > 21:
		g.busy = true
		g.after(followUpMs, g.bust)
	case g.doubled:
		g.busy = true
		g.after(followUpMs, g.stand)
	}
}

// ShipIt stands and lets the deadline play.
func (g *Game) ShipIt() bool {
	if g.table.State() != PhasePlaying || g.busy {
		return false
	}
	g.busy = true
	g.stand()
	return true
}

func (g *Game) stand() {
	g.sounds.Play(engine.SoundShipIt)
	g.reveal = true
	g.after(followUpMs, g.dealerTurn)
}

// dealerTurn draws below the stand value, one card per delay.
func (g *Game) dealerTurn() {
	if HandValue(g.dealer) < g.cfg.Rules.DealerStandsOn {
		g.after(g.cfg.Timing.DealerDrawMs, func() {
			g.sounds.Play(engine.SoundDeal)
			g.dealer = append(g.dealer, g.shoe.Draw())
			g.dealerTurn()
		})
		return
	}
	g.after(g.cfg.Timing.DealerDrawMs, g.resolve)
}

// AllIn doubles the stake, draws exactly one card and stands. It needs
// enough confidence to cover the doubled stake.
func (g *Game) AllIn() bool {
	if g.table.State() != PhasePlaying || g.busy || g.doubled || len(g.player) != 2 {
		return false
	}
	if g.confidence < 2*g.bet {
		return false
	}
	g.bet *= 2
	g.doubled = true
	g.draw()
	return true
}

// CanAllIn reports whether All-In is available.
func (g *Game) CanAllIn() bool {
	return g.table.State() == PhasePlaying && !g.busy && !g.doubled &&
		len(g.player) == 2 && g.confidence >= 2*g.bet
}

func (g *Game) unicorn() {
	g.sounds.Play(engine.SoundUnicorn)
	g.reveal = true
	g.message = "THE UNICORN! Double confidence!"
	g.confidence += g.bet * g.cfg.Rules.UnicornPayout
	if g.confidence >= g.cfg.Rules.WinConfidence {
		g.after(g.cfg.Timing.ResultMs, func() { g.settle(true) })
		return
	}
	g.settle(true)
}

func (g *Game) bust() {
	g.sounds.Play(engine.SoundBust)
	g.reveal = true
	g.message = "SCOPE CREEP! You overcommitted."
	g.confidence -= g.bet
	g.settle(false)
}

// resolve compares hands once the deadline stands or busts.
func (g *Game) resolve() {
	pv, dv := HandValue(g.player), HandValue(g.dealer)
	won := false
	switch {
	case dv > 21:
		g.sounds.Play(engine.SoundWin)
		g.message = "The Deadline crumbled! Stakeholders rejoice!"
		g.confidence += g.bet
		won = true
	case pv > dv:
		g.sounds.Play(engine.SoundWin)
		g.message = "The stakeholders are happy! Confidence increased."
		g.confidence += g.bet
		won = true
	case pv < dv:
		g.sounds.Play(engine.SoundLose)
		g.message = "You missed the deadline. Trust eroded."
		g.confidence -= g.bet
	default:
		g.message = "The sprint ended in a standoff. Confidence returned."
	}
	g.settle(won)
}

// settle records the sprint and moves to the next phase.
func (g *Game) settle(won bool) {
	g.busy = false
	g.stats = g.stats.Record(won, g.confidence)
	g.stats.Save(g.deps.KV)

	switch {
	case g.confidence >= g.cfg.Rules.WinConfidence:
		g.finish(PhaseGameWon, engine.SoundWin)
	case g.confidence <= 0:
		g.finish(PhaseGameOver, engine.SoundGameOver)
	default:
		_ = g.table.To(PhaseRetrospective)
	}
}

func (g *Game) finish(p Phase, s engine.Sound) {
	if g.table.To(p) != nil {
		return
	}
	g.sounds.Play(s)
	g.ended = true
}

// NextSprint clears the table for the next bet.
func (g *Game) NextSprint() bool {
	if g.table.State() != PhaseRetrospective {
		return false
	}
	_ = g.table.To(PhaseBetting)
	g.clearHands()
	return true
}

// Restart starts a new session from any phase. Pending deals and dealer
// draws belong to the old generation and never run.
func (g *Game) Restart() {
	if g.table.To(PhaseBetting) != nil {
		return
	}
	g.sched.Cancel()
	g.stats.CurrentStreak = 0
	g.stats.Save(g.deps.KV)
	g.newSession()
}

func (g *Game) showTutorial() {
	g.tutorial = true
	g.tutorialLeft = ms(tutorialSeconds * 1000)
}

func (g *Game) dismissTutorial() {
	g.tutorial = false
	engine.SetFlag(g.deps.KV, TutorialKey)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	p := g.table.State()
	return core.GameState{
		Score:    g.confidence,
		Status:   string(p),
		GameOver: p.Terminal(),
		Won:      p == PhaseGameWon,
	}
}

// Phase returns the table phase.
func (g *Game) Phase() Phase { return g.table.State() }

// Confidence returns the bankroll.
func (g *Game) Confidence() int { return g.confidence }

// Bet returns the current stake.
func (g *Game) Bet() int { return g.bet }

// Hands returns copies of the player's and the deadline's hands.
func (g *Game) Hands() (player, dealer []Card) {
	return append([]Card(nil), g.player...), append([]Card(nil), g.dealer...)
}

// Stats returns the career record.
func (g *Game) Stats() Stats { return g.stats }

// Busy reports whether cards are still moving.
func (g *Game) Busy() bool { return g.busy }

// Message returns the last round's outcome text.
func (g *Game) Message() string { return g.message }

// TutorialVisible reports whether the tutorial overlay is up.
func (g *Game) TutorialVisible() bool { return g.tutorial }

func init() {
	registry.Register("blackjack", func() registry.Game {
		return New()
	})
}
