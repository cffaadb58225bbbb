// Package decipher implements The Decipher: PM acronyms fall toward the
// floor and the player types their full definitions before they land.
package decipher

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/pm-arcade/internal/config"
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/games/arcade"
	"github.com/vovakirdan/pm-arcade/internal/registry"
)

// Persistence keys.
const (
	BestKey     = "decipherBestMisses"
	TutorialKey = "decipherTutorialSeen"
)

const maxBuffer = 64

// Game implements The Decipher.
type Game struct {
	eng     *engine.Engine
	cfg     config.DecipherConfig
	runtime core.RuntimeConfig
	deps    registry.Deps

	buffer   []rune
	feedback string
	correct  bool
	seq      int // feedback generation, so an old clear does not wipe a newer message
	tutorial bool
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

// New creates a new Decipher game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "decipher"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "The Decipher"
}

// Configure injects persistence and audio.
func (g *Game) Configure(d registry.Deps) {
	g.deps = d
}

// Reset loads the configuration and builds a fresh engine on the start screen.
// The tutorial is shown until it has been dismissed once.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadDecipher(configPath)
	if err != nil {
		cfg = config.DefaultDecipherConfig()
	}
	if difficultyPreset != "" {
		config.ApplyDecipherPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.clearInput()
	g.tutorial = !engine.Flag(g.deps.KV, TutorialKey)

	g.eng = engine.New(EngineConfig(cfg),
		engine.WithKV(g.deps.KV),
		engine.WithSounds(g.deps.Sounds),
		engine.WithSeed(runtime.Seed),
		engine.WithResult(Result),
	)
}

// EngineConfig maps the decipher configuration onto the engine. The player
// is the floor: a card touching it is a miss.
func EngineConfig(cfg config.DecipherConfig) engine.Config {
	labels := make([]engine.Label, len(cfg.Cards.Deck))
	for i, e := range cfg.Cards.Deck {
		labels[i] = engine.Label{Text: e.Acronym, Answer: e.Expansion}
	}
	floor := cfg.Floor.Height

	return engine.Config{
		Field:   cfg.Field.Vec(),
		MarginX: cfg.Field.MarginX,
		MarginY: cfg.Field.MarginY,
		Player: engine.PlayerConfig{
			Mode: engine.PlayerStatic,
			X:    0,
			Y:    cfg.Field.Height - floor,
			W:    cfg.Field.Width,
			H:    floor,
		},
		Spawn: engine.SpawnConfig{
			Phases:    config.SpawnPhases(cfg.Phases),
			BadSize:   core.Vec{X: cfg.Cards.Width, Y: cfg.Cards.Height},
			BadLabels: labels,
			BadValue:  cfg.Cards.Value,
			Inset:     cfg.Cards.Inset,
		},
		Progression:   cfg.Difficulty.Progression(),
		MaxHits:       cfg.Gameplay.MaxMisses,
		EntityGravity: 0.15,
		Burst:         12,
		BestKey:       BestKey,
		BestDirection: engine.LowerIsBetter,
	}
}

// Result scores a won session by its misses. A lost session has no result.
func Result(s engine.Snapshot) (int, bool) {
	return s.Hits, s.Status == engine.StatusWin
}

// Normalize folds case and collapses whitespace for answer comparison.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// WantsText reports whether typed characters should go to the answer buffer.
func (g *Game) WantsText() bool {
	return !g.tutorial && g.eng.Status() == engine.StatusPlaying && !g.eng.Paused()
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.tutorial {
		if len(in.Actions) > 0 || len(in.Text) > 0 {
			g.dismissTutorial()
		}
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionHelp) && g.eng.Status() != engine.StatusPlaying {
		g.tutorial = true
		return core.StepResult{State: g.State()}
	}

	before := g.eng.Status()
	if arcade.Session(g.eng, in) {
		if g.eng.Status() != before {
			g.clearInput()
		}
		return core.StepResult{State: g.State()}
	}

	ended := g.typeInput(in)
	r := arcade.Advance(g.eng, in)
	return core.StepResult{State: g.State(), Ended: ended || r.Ended}
}

// typeInput edits the buffer and collects a card when it matches.
func (g *Game) typeInput(in core.InputFrame) bool {
	switch {
	case in.Has(core.ActionBack):
		g.buffer = g.buffer[:0]
	case in.Has(core.ActionBackspace) && len(g.buffer) > 0:
		g.buffer = g.buffer[:len(g.buffer)-1]
	}
	for _, r := range in.Text {
		if len(g.buffer) < maxBuffer {
			g.buffer = append(g.buffer, r)
		}
	}

	typed := Normalize(string(g.buffer))
	if typed == "" {
		return false
	}
	if id, answer, ok := g.match(typed); ok {
		r, _ := g.eng.Collect(id)
		g.buffer = g.buffer[:0]
		g.say("✓ "+answer, true)
		return r.Ended
	}
	if in.Has(core.ActionConfirm) {
		g.buffer = g.buffer[:0]
		g.say("Not quite. Keep reading the room.", false)
	}
	return false
}

// match finds the lowest card whose definition equals typed.
func (g *Game) match(typed string) (uint64, string, bool) {
	var (
		id     uint64
		answer string
		lowest = -1e18
	)
	for _, e := range g.eng.Entities() {
		if e.Category != engine.CategoryObstacleBad || Normalize(e.Answer) != typed {
			continue
		}
		if e.Pos.Y > lowest {
			id, answer, lowest = e.ID, e.Answer, e.Pos.Y
		}
	}
	return id, answer, id != 0
}

// say shows feedback that clears itself after the configured delay.
func (g *Game) say(msg string, correct bool) {
	g.seq++
	seq := g.seq
	g.feedback, g.correct = msg, correct
	g.eng.After(float64(g.cfg.Gameplay.FeedbackTicks), func() {
		if g.seq == seq {
			g.feedback = ""
		}
	})
}

func (g *Game) clearInput() {
	g.buffer = g.buffer[:0]
	g.feedback = ""
	g.seq++
}

func (g *Game) dismissTutorial() {
	g.tutorial = false
	engine.SetFlag(g.deps.KV, TutorialKey)
}

// Buffer returns the current typed text.
func (g *Game) Buffer() string {
	return string(g.buffer)
}

// Feedback returns the transient answer feedback, if any.
func (g *Game) Feedback() string {
	return g.feedback
}

// TutorialVisible reports whether the tutorial overlay is up.
func (g *Game) TutorialVisible() bool {
	return g.tutorial
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.eng.Snapshot()
	view := arcade.View(g.cfg.Field.Vec(), dst)

	// The floor is one row high whatever its logical height.
	_, fy := view.ToCell(core.Vec{Y: snap.Player.Y})
	dst.DrawHLine(view.Area.X, fy, view.Area.W, '▀', core.ColorHarmful)

	arcade.DrawEntities(dst, view, snap.Entities, arcade.Palette{
		engine.CategoryObstacleBad: {Fill: ' ', Color: core.ColorBrightCyan, Label: true},
		engine.CategoryParticle:    {Fill: '*', Color: core.ColorBrightYellow},
	})

	left := fmt.Sprintf("Misses: %s", arcade.Hearts(snap.Hits, snap.MaxHits))
	right := fmt.Sprintf("%s  %s", snap.PhaseName, arcade.BestText(snap, "%d misses"))
	arcade.DrawHUD(dst, left, right)
	if snap.Max > 0 {
		arcade.DrawProgress(dst, 1, "Promotion", snap.Progress/snap.Max, core.ColorBeneficial)
	}
	arcade.DrawAnnouncement(dst, view, snap.Announcement)

	if snap.Status == engine.StatusPlaying {
		prompt := "> " + string(g.buffer) + "_"
		dst.DrawTextColor(1, dst.Height()-1, prompt, core.ColorBrightWhite)
		if g.feedback != "" {
			c := core.ColorHarmful
			if g.correct {
				c = core.ColorBeneficial
			}
			dst.DrawTextColor(core.Max(len([]rune(prompt))+3, dst.Width()/2), dst.Height()-1, g.feedback, c)
		}
	} else {
		arcade.DrawFooter(dst, "Space start · ? how to play · Esc menu")
	}

	if g.tutorial {
		dst.DrawMessage("PMs love acronyms.", "Type the full definition before it lands. Any key to begin")
		return
	}
	arcade.DrawOverlay(dst, snap, arcade.Titles{
		Start:    "THE DECIPHER",
		Win:      fmt.Sprintf("PROMOTED! %d misses", snap.Hits),
		GameOver: "LOST IN THE JARGON",
	})
}

// State returns the current game state. The score is the miss count.
func (g *Game) State() core.GameState {
	return arcade.State(g.eng, g.eng.Hits())
}

// ScoreDirection ranks sessions by fewest misses.
func (g *Game) ScoreDirection() engine.Direction {
	return engine.LowerIsBetter
}

// Snapshot returns the engine's render view.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

func init() {
	registry.Register("decipher", func() registry.Game {
		return New()
	})
}
