package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top high scores for the specified game, with the
stored best value and aggregate stats.

Examples:
  arcade scores runner
  arcade scores blackjack --limit 20`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

var (
	flagScoresLimit int
	flagScoresClear bool
)

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the score history of the game")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown game %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'arcade list' to see available games.")
		os.Exit(1)
	}

	// Get game title
	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}

	if flagScoresClear {
		err := store.ClearScores(gameID)
		store.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared score history for %s.\n", title)
		return
	}

	// Get top scores
	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	// Display scores
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'arcade play %s' to set the first high score!\n", gameID)
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "Rank", "Score", "Result", "Date", "Run")
	fmt.Printf("  %-4s  %-10s  %-6s  %-16s  %s\n", "----", "-----", "------", "----", "---")

	// Print scores
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		result := "-"
		if entry.Won {
			result = "won"
		}
		fmt.Printf("  %-4d  %-10d  %-6s  %-16s  %.8s\n", i+1, entry.Score, result, dateStr, entry.RunID)
	}

	fmt.Println()
	if top, err := store.HighScore(gameID); err == nil {
		note := ""
		if scores[0].LowerIsBetter {
			note = " (lower is better)"
		}
		fmt.Printf("Best run: %d%s\n", top, note)
	}
	if stats, err := store.GetGameStats(gameID); err == nil {
		fmt.Printf("Runs: %d  Wins: %d  Avg: %.1f\n", stats.GamesCount, stats.Wins, stats.AvgScore)
	}
	fmt.Printf("Best: %s\n", bestLabel(store, gameID))
}
