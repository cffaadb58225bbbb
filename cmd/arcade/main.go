// arcade is a terminal arcade of small games about shipping product.
//
// Usage:
//
//	arcade list              - List available games
//	arcade play <game>       - Play a game
//	arcade menu              - Start menu to pick games interactively
//	arcade serve             - Start SSH server for remote play
//	arcade api               - Serve scores as JSON over HTTP
//	arcade scores <game>     - Show high scores for a game
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.arcade/scores.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
//	--log-level <level>   - debug, info, warn or error
//	--log-file <path>     - Write logs from interactive commands to a file
//	--mute                - Disable sound effects
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pm-arcade/internal/audio"
	"github.com/vovakirdan/pm-arcade/internal/games/blackjack"
	"github.com/vovakirdan/pm-arcade/internal/games/decipher"
	"github.com/vovakirdan/pm-arcade/internal/games/runner"
	"github.com/vovakirdan/pm-arcade/internal/games/survivor"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string
	flagMute       bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "PM Arcade - Games about shipping product, in your terminal",
	Long: `PM Arcade is a terminal arcade of four small games about the life
of a product manager.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  api      - Serve score history as JSON
  scores   - View high scores

Examples:
  arcade list
  arcade play runner
  arcade menu
  arcade serve --addr :2222
  arcade scores blackjack`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	pf.StringVar(&flagDBPath, "db", "~/.arcade/scores.db", "Path to scores database")
	pf.StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	pf.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFile, "log-file", "", "Log file for interactive commands (default: no logs)")
	pf.BoolVar(&flagMute, "mute", false, "Disable sound effects")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(apiCmd)
	rootCmd.AddCommand(scoresCmd)
}

// bestKeys maps each game to the persistence key of its best value.
var bestKeys = map[string]string{
	"runner":    runner.BestKey,
	"survivor":  survivor.BestKey,
	"decipher":  decipher.BestKey,
	"blackjack": blackjack.StatsKey,
}

// bestLabel describes the stored best value of a game, or "-" if none.
func bestLabel(store *storage.Store, gameID string) string {
	if store == nil {
		return "-"
	}
	if gameID == "blackjack" {
		if _, ok := store.Get(blackjack.StatsKey); !ok {
			return "-"
		}
		st := blackjack.LoadStats(store, 0)
		return fmt.Sprintf("confidence %d, streak %d", st.HighestConfidence, st.BestStreak)
	}
	v, ok := store.Get(bestKeys[gameID])
	if !ok {
		return "-"
	}
	switch gameID {
	case "decipher":
		return v + " misses"
	case "runner":
		return v + " users"
	case "survivor":
		return v + "% satisfaction"
	}
	return v
}

// configureGame applies --config and --difficulty to the game about to be created.
func configureGame(gameID string) {
	switch gameID {
	case "runner":
		runner.SetConfigPath(flagConfig)
		runner.SetDifficultyPreset(flagDifficulty)
	case "survivor":
		survivor.SetConfigPath(flagConfig)
		survivor.SetDifficultyPreset(flagDifficulty)
	case "decipher":
		decipher.SetConfigPath(flagConfig)
		decipher.SetDifficultyPreset(flagDifficulty)
	case "blackjack":
		blackjack.SetConfigPath(flagConfig)
		blackjack.SetDifficultyPreset(flagDifficulty)
	}
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// interactiveLogger logs to --log-file, since the terminal belongs to the
// game. The returned close func is never nil.
func interactiveLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return newLogger(io.Discard), func() {}
	}
	if dir := filepath.Dir(flagLogFile); dir != "" {
		_ = os.MkdirAll(dir, 0o755)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

func newSounds(logger *log.Logger) *audio.Player {
	return audio.New(audio.WithMute(flagMute), audio.WithLogger(logger))
}
