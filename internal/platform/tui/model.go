package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

// Options are the platform services shared by every game model.
type Options struct {
	Store  *storage.Store     // nil runs without persistence
	Sounds engine.SoundPlayer // nil is silent
	Logger *log.Logger        // nil discards
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// deps converts the options into what games consume. A nil store must
// not become a non-nil KV interface.
func (o Options) deps() registry.Deps {
	d := registry.Deps{Sounds: o.Sounds}
	if o.Store != nil {
		d.KV = o.Store
	}
	return d
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	logger     *log.Logger
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame *core.InputFrame
	gameState  core.GameState
	quitting   bool
	backToMenu bool
	lastRunID  string
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	registry.Configure(game, opts.deps())

	frame := core.NewInputFrame()
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		logger:     opts.logger().With("game", game.ID()),
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: &frame,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("game started", "seed", m.config.Seed, "w", m.config.ScreenW, "h", m.config.ScreenH)

	// Start the tick loop
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.keyMapper.MapMouseToFrame(msg, m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	textMode := registry.WantsText(m.game)

	if !textMode && msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, m.inputFrame, textMode) {
		m.quitting = true
		return m, tea.Quit
	}

	// Back leaves the game unless a round is in progress.
	if !textMode && m.inputFrame.Has(core.ActionBack) && m.canLeave() {
		m.backToMenu = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) canLeave() bool {
	return m.gameState.GameOver || m.gameState.Paused || m.gameState.Status != "playing"
}

// handleResize adapts the screen buffer. Games derive their viewport from
// the screen on every render, so the session keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	m.inputFrame.Now = now

	prev := m.gameState
	result := m.game.Step(*m.inputFrame)
	m.gameState = result.State

	if prev.Status != m.gameState.Status || prev.Paused != m.gameState.Paused {
		m.logger.Debug("state",
			"from", prev.Status, "to", m.gameState.Status,
			"paused", m.gameState.Paused, "score", m.gameState.Score)
	}

	if result.Ended {
		m.saveScore(result.State)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// saveScore records a finished session. Failures are logged and ignored.
func (m *Model) saveScore(st core.GameState) {
	if m.opts.Store == nil {
		return
	}
	runID, err := m.opts.Store.SaveResult(m.game.ID(), st.Score, st.Won, registry.ScoreDirection(m.game))
	if err != nil {
		m.logger.Warn("could not save score", "err", err)
		return
	}
	m.lastRunID = runID
	m.logger.Debug("score saved", "run_id", runID, "score", st.Score, "won", st.Won)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "err", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.backToMenu {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// State returns the last game state seen by the model.
func (m Model) State() core.GameState {
	return m.gameState
}

// LastRunID is the run id of the most recently saved session.
func (m Model) LastRunID() string {
	return m.lastRunID
}

// Run starts the Bubble Tea program with the given model.
// It returns true when the player asked to go back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (backToMenu bool, err error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),      // Use alternate screen buffer
		tea.WithMouseAllMotion(), // Pointer steering
	)

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if fm, ok := final.(Model); ok {
		return fm.BackToMenu(), nil
	}
	return false, nil
}
