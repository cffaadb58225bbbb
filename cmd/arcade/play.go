package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/platform/tui"
	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Space/Enter  - Start, jump, confirm
  WASD/Arrows  - Move (Scope Creep), mouse steers too
  P/Tab        - Pause
  R            - Restart
  ?            - Show the tutorial again
  Esc          - Back to menu (outside a round)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - More hits, slower start
  normal - Config as shipped
  hard   - Fewer hits, faster start
  fixed  - No speed progression

Examples:
  arcade play runner
  arcade play survivor --difficulty easy
  arcade play decipher --mute
  arcade play blackjack --config ./my-blackjack.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	configureGame(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("running without storage", "err", err)
		// Continue without storage - game still works
		store = nil
	}

	opts := tui.Options{
		Store:  store,
		Sounds: newSounds(logger),
		Logger: logger,
	}
	_, runErr := tui.Run(game, runtimeConfig(), opts)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
