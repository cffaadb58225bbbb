package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

func init() {
	registry.Register("stub", func() registry.Game { return &stubGame{} })
}

func TestFormatBest(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"512", "512"},
		{"not json", "not json"},
		{`{"highestConfidence":700,"bestStreak":3}`, "bestStreak=3 highestConfidence=700"},
		{"{}", "{}"},
	}
	for _, tt := range tests {
		if got := formatBest(tt.raw); got != tt.want {
			t.Errorf("formatBest(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestScoreboardLoadsRuns(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, s := range []int{10, 30, 20} {
		if _, err := store.SaveScore("stub", s, s == 30); err != nil {
			t.Fatal(err)
		}
	}
	if err := store.Set("stubBest", "30"); err != nil {
		t.Fatal(err)
	}

	m := NewScoreboardModel(store, map[string]string{"stub": "stubBest"}, 100, 30)
	if len(m.runs) != 3 || m.runs[0].Score != 30 {
		t.Fatalf("top runs = %+v", m.runs)
	}
	if m.best != "30" {
		t.Errorf("best = %q, want 30", m.best)
	}
	if m.stats == nil || m.stats.Wins != 1 {
		t.Errorf("stats = %+v, want one win", m.stats)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("o")})
	m = next.(ScoreboardModel)
	if m.order != orderRecent || m.runs[0].Score != 20 {
		t.Errorf("recent runs = %+v, want newest first", m.runs)
	}

	view := m.View()
	if !strings.Contains(view, "WON") || !strings.Contains(view, "recent runs") {
		t.Errorf("view missing runs:\n%s", view)
	}
}

func TestScoreboardWithoutStore(t *testing.T) {
	m := NewScoreboardModel(nil, nil, 60, 20)
	if len(m.runs) != 0 {
		t.Fatal("nil store should show no runs")
	}
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Error("empty board message missing")
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() {
		t.Error("esc should go back")
	}
}
