package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows every game in the arcade with how often it was played
and its stored best value.`,
	Run: runList,
}

func runList(_ *cobra.Command, _ []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	// History is optional here; a missing database lists games only.
	var stats map[string]*storage.GameStats
	store, err := storage.Open(flagDBPath)
	if err != nil {
		store = nil
	} else {
		defer store.Close()
		stats, _ = store.GetAllGamesStats()
	}

	idW, titleW := len("ID"), len("Title")
	for _, g := range games {
		idW = max(idW, len(g.ID))
		titleW = max(titleW, len(g.Title))
	}

	fmt.Println("Available games:")
	fmt.Println()
	fmt.Printf("  %-*s  %-*s  %5s  %s\n", idW, "ID", titleW, "Title", "Runs", "Best")
	for _, g := range games {
		runs := 0
		if st, ok := stats[g.ID]; ok {
			runs = st.GamesCount
		}
		fmt.Printf("  %-*s  %-*s  %5d  %s\n", idW, g.ID, titleW, g.Title, runs, bestLabel(store, g.ID))
	}

	fmt.Println()
	fmt.Println("Run 'arcade play <id>' to play a game.")
}
