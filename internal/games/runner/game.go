// Package runner implements Sprint Runner, an endless runner where a
// product manager jumps over blockers and grabs coffee and user feedback
// on the way to launch.
package runner

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pm-arcade/internal/config"
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/games/arcade"
	"github.com/vovakirdan/pm-arcade/internal/registry"
)

// BestKey is the persistence key of the best user count.
const BestKey = "sprintRunnerHighScore"

// Visual characters for rendering
const (
	RunnerChar = '█'
	GroundChar = '═'
)

const hitFlashTicks = 12

// Game implements the Sprint Runner game logic.
type Game struct {
	eng     *engine.Engine
	cfg     config.RunnerConfig
	runtime core.RuntimeConfig
	deps    registry.Deps
	flash   int // frames left of the hit flash
}

// configPath stores the custom config path set via CLI
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

// New creates a new Sprint Runner game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "runner"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sprint Runner"
}

// Configure injects persistence and audio.
func (g *Game) Configure(d registry.Deps) {
	g.deps = d
}

// Reset loads the configuration and builds a fresh engine on the start screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadRunner(configPath)
	if err != nil {
		cfg = config.DefaultRunnerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyRunnerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.flash = 0

	g.eng = engine.New(EngineConfig(cfg),
		engine.WithKV(g.deps.KV),
		engine.WithSounds(g.deps.Sounds),
		engine.WithSeed(runtime.Seed),
		engine.WithResult(Result),
	)
}

// EngineConfig maps the runner configuration onto the engine.
func EngineConfig(cfg config.RunnerConfig) engine.Config {
	ob, co := cfg.Obstacles, cfg.Collectibles
	div := cfg.Gameplay.ProgressDivisor
	if div <= 0 {
		div = 10
	}

	return engine.Config{
		Field:   cfg.Field.Vec(),
		MarginX: cfg.Field.MarginX,
		MarginY: cfg.Field.MarginY,
		Player: engine.PlayerConfig{
			Mode:        engine.PlayerJump,
			X:           cfg.Player.X,
			Y:           cfg.Player.GroundY,
			Size:        cfg.Player.Size,
			Gravity:     cfg.Physics.Gravity,
			JumpImpulse: cfg.Physics.JumpImpulse,
			MaxFall:     cfg.Physics.MaxFallSpeed,
		},
		Spawn: engine.SpawnConfig{
			Phases:        config.SpawnPhases(cfg.Phases),
			BadSize:       core.Vec{X: ob.Width, Y: ob.Height},
			GoodSize:      core.Vec{X: co.Width, Y: co.Height},
			GoodChance:    co.Chance,
			NeutralChance: ob.NeutralChance,
			BadLabels:     engine.Labels(ob.Labels...),
			NeutralLabels: engine.Labels(ob.NeutralLabels...),
			GoodLabels:    engine.Labels(co.Labels...),
			GoodValue:     co.Value,
			LaneY:         cfg.Player.GroundY,
			GoodY:         co.Y,
			MinGap:        ob.MinGap,
		},
		Progression: cfg.Difficulty.Progression(),
		Padding:     cfg.Player.Padding,
		MaxHits:     cfg.Gameplay.MaxHits,
		Passive: func(_ int, speed float64) float64 {
			return speed / div
		},
		EntityGravity: cfg.Physics.Gravity / 2,
		Burst:         8,
		BestKey:       BestKey,
		SeedBest:      true,
	}
}

// Result scores a session by users acquired, win or lose.
func Result(s engine.Snapshot) (int, bool) {
	return int(math.Floor(s.Progress)), true
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.flash > 0 {
		g.flash--
	}
	if arcade.Session(g.eng, in) {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionJump) || in.Has(core.ActionUp) {
		g.eng.Jump()
	}

	r := arcade.Advance(g.eng, in)
	if r.Has(engine.EventHit) {
		g.flash = hitFlashTicks
	}
	return core.StepResult{State: g.State(), Ended: r.Ended}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.eng.Snapshot()
	view := arcade.View(g.cfg.Field.Vec(), dst)

	// Ground
	_, gy := view.ToCell(core.Vec{Y: g.cfg.Player.GroundY})
	dst.DrawHLine(view.Area.X, gy, view.Area.W, GroundChar, core.ColorGray)

	arcade.DrawEntities(dst, view, snap.Entities, arcade.DefaultPalette())

	color := core.ColorPlayer
	if g.flash > 0 && g.flash%4 < 2 {
		color = core.ColorHarmful
	}
	arcade.DrawPlayer(dst, view, snap.Player, RunnerChar, color)

	// HUD
	left := fmt.Sprintf("Users: %d/%.0f  %s", int(snap.Progress), snap.Max, arcade.Hearts(snap.Hits, snap.MaxHits))
	right := fmt.Sprintf("%s  Spd %.1f  %s", snap.PhaseName, snap.Speed, arcade.BestText(snap, "%d"))
	arcade.DrawHUD(dst, left, right)
	if snap.Max > 0 {
		arcade.DrawProgress(dst, 1, "Launch", snap.Progress/snap.Max, core.ColorBeneficial)
	}
	arcade.DrawAnnouncement(dst, view, snap.Announcement)
	arcade.DrawFooter(dst, "Space/↑ jump · P pause · Esc menu")

	arcade.DrawOverlay(dst, snap, arcade.Titles{
		Start:    "SPRINT RUNNER",
		Win:      fmt.Sprintf("LAUNCH! %d users", int(snap.Progress)),
		GameOver: fmt.Sprintf("BURNED OUT at %d users", int(snap.Progress)),
	})
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return arcade.State(g.eng, int(g.eng.Progress()))
}

// Snapshot returns the engine's render view.
func (g *Game) Snapshot() engine.Snapshot {
	return g.eng.Snapshot()
}

// Register the game with the registry
func init() {
	registry.Register("runner", func() registry.Game {
		return New()
	})
}
