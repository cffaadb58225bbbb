// Package survivor implements Scope Creep Survivor, a free-roam dodge game.
// Feature requests fly in from every side; the player dodges the bad ones,
// catches the good ones and grabs the occasional "NO" to clear the board.
package survivor

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pm-arcade/internal/config"
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/games/arcade"
	"github.com/vovakirdan/pm-arcade/internal/registry"
)

// BestKey is the persistence key of the best satisfaction score.
const BestKey = "scopeCreepHighScore"

// holdTicks is how long a direction stays held after its last key press.
// Terminals report repeats but not releases.
const holdTicks = 8

// PlayerChar is the player's fill rune.
const PlayerChar = '●'

// Game implements Scope Creep Survivor.
type Game struct {
	eng     *engine.Engine
	cfg     config.SurvivorConfig
	runtime core.RuntimeConfig
	deps    registry.Deps
	view    core.Viewport

	held     core.Vec
	heldLeft int
	flash    int
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

// New creates a new Scope Creep Survivor game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "survivor"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Scope Creep Survivor"
}

// Configure injects persistence and audio.
func (g *Game) Configure(d registry.Deps) {
	g.deps = d
}

// Reset loads the configuration and builds a fresh engine on the start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadSurvivor(configPath)
	if err != nil {
		cfg = config.DefaultSurvivorConfig()
	}
	if difficultyPreset != "" {
		config.ApplySurvivorPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.held, g.heldLeft, g.flash = core.Vec{}, 0, 0
	g.view = core.NewViewport(cfg.Field.Vec(), runtime.ScreenW, runtime.ScreenH, arcade.HUDRows)

	g.eng = engine.New(EngineConfig(cfg),
		engine.WithKV(g.deps.KV),
		engine.WithSounds(g.deps.Sounds),
		engine.WithSeed(runtime.Seed),
		engine.WithResult(ResultFor(cfg.Gameplay.HitPenalty)),
	)
}

// EngineConfig maps the survivor configuration onto the engine.
func EngineConfig(cfg config.SurvivorConfig) engine.Config {
	rq, gp := cfg.Requests, cfg.Gameplay
	size := core.Vec{X: rq.Width, Y: rq.Height}
	pu := cfg.PowerUp

	return engine.Config{
		Field:   cfg.Field.Vec(),
		MarginX: cfg.Field.MarginX,
		MarginY: cfg.Field.MarginY,
		Player: engine.PlayerConfig{
			Mode:      engine.PlayerFree,
			X:         cfg.Field.Width / 2,
			Y:         cfg.Field.Height / 2,
			Size:      cfg.Player.Size,
			Growth:    cfg.Player.Growth,
			MoveSpeed: cfg.Player.MoveSpeed,
		},
		Spawn: engine.SpawnConfig{
			Phases:     config.SpawnPhases(cfg.Phases),
			BadSize:    size,
			GoodSize:   size,
			GoodChance: rq.GoodChance,
			BadLabels:  engine.Labels(rq.BadLabels...),
			GoodLabels: engine.Labels(rq.GoodLabels...),
			GoodValue:  rq.GoodValue,
			Jitter:     rq.Jitter,
			Lanes:      rq.Lanes,
			PowerUp: engine.PowerUpSpawn{
				Enabled:     pu.Enabled,
				MinInterval: config.SecondsToTicks(pu.MinSeconds),
				MaxInterval: config.SecondsToTicks(pu.MaxSeconds),
				Size:        core.Vec{X: pu.Width, Y: pu.Height},
				Label:       pu.Label,
				Area:        pu.Area.Box(),
			},
		},
		Progression: cfg.Difficulty.Progression(),
		Padding:     cfg.Player.Padding,
		MaxHits:     gp.MaxHits,
		Passive: func(hits int, _ float64) float64 {
			return math.Max(gp.MinRate, gp.BaseRate-gp.RatePerHit*float64(hits))
		},
		EntityGravity: 0.15,
		Burst:         10,
		BestKey:       BestKey,
		SeedBest:      true,
	}
}

// ResultFor scores a session by stakeholder satisfaction: every hit costs
// penalty points from 100.
func ResultFor(penalty int) engine.ResultFunc {
	return func(s engine.Snapshot) (int, bool) {
		return Satisfaction(s.Hits, penalty), true
	}
}

// Satisfaction is 100 minus penalty per hit, floored at zero.
func Satisfaction(hits, penalty int) int {
	return core.Max(0, 100-penalty*hits)
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.flash > 0 {
		g.flash--
	}
	if arcade.Session(g.eng, in) {
		g.release()
		return core.StepResult{State: g.State()}
	}

	g.pollKeys(in)
	arcade.PointAt(g.eng, in, g.view)

	r := arcade.Advance(g.eng, in)
	if r.Has(engine.EventHit) {
		g.flash = 10
	}
	return core.StepResult{State: g.State(), Ended: r.Ended}
}

// pollKeys turns direction presses into a held direction that decays
// when no press arrives for holdTicks frames.
func (g *Game) pollKeys(in core.InputFrame) {
	var d core.Vec
	if in.Has(core.ActionLeft) {
		d.X--
	}
	if in.Has(core.ActionRight) {
		d.X++
	}
	if in.Has(core.ActionUp) {
		d.Y--
	}
	if in.Has(core.ActionDown) {
		d.Y++
	}

	switch {
	case d != (core.Vec{}):
		g.held, g.heldLeft = d, holdTicks
	case g.heldLeft > 0:
		g.heldLeft--
		if g.heldLeft == 0 {
			g.held = core.Vec{}
		}
	}
	g.eng.Hold(g.held.X, g.held.Y)
}

func (g *Game) release() {
	g.held, g.heldLeft = core.Vec{}, 0
	g.eng.Hold(0, 0)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.eng.Snapshot()
	g.view = arcade.View(g.cfg.Field.Vec(), dst)

	dst.DrawBox(core.NewRect(g.view.Area.X, g.view.Area.Y, g.view.Area.W, g.view.Area.H), core.ColorGray)
	arcade.DrawEntities(dst, g.view, snap.Entities, arcade.DefaultPalette())

	color := core.ColorPlayer
	if g.flash > 0 && g.flash%4 < 2 {
		color = core.ColorHarmful
	}
	arcade.DrawPlayer(dst, g.view, snap.Player, PlayerChar, color)

	sat := Satisfaction(snap.Hits, g.cfg.Gameplay.HitPenalty)
	left := fmt.Sprintf("Satisfaction: %d%%  %s", sat, arcade.Hearts(snap.Hits, snap.MaxHits))
	right := fmt.Sprintf("%s  %s", snap.PhaseName, arcade.BestText(snap, "%d%%"))
	arcade.DrawHUD(dst, left, right)
	if snap.Max > 0 {
		arcade.DrawProgress(dst, 1, "MVP", snap.Progress/snap.Max, core.ColorBeneficial)
	}
	arcade.DrawAnnouncement(dst, g.view, snap.Announcement)
	arcade.DrawFooter(dst, "Arrows/WASD or mouse move · P pause · Esc menu")

	arcade.DrawOverlay(dst, snap, arcade.Titles{
		Start:    "SCOPE CREEP SURVIVOR",
		Win:      fmt.Sprintf("MVP SHIPPED! Satisfaction %d%%", sat),
		GameOver: "SCOPE CREPT. The MVP never shipped",
	})
}

// State returns the current game state. The score is satisfaction.
func (g *Game) State() core.GameState {
	return arcade.State(g.eng, Satisfaction(g.eng.Hits(), g.cfg.Gameplay.HitPenalty))
}

// Snapshot returns the engine's render view.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

func init() {
	registry.Register("survivor", func() registry.Game {
		return New()
	})
}
