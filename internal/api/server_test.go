package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/pm-arcade/internal/registry"
	"github.com/vovakirdan/pm-arcade/internal/storage"
)

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	srv := NewServer(store, Config{
		Games: []registry.GameInfo{
			{ID: "blackjack", Title: "Sprint Blackjack"},
			{ID: "runner", Title: "Sprint Runner"},
		},
		BestKeys: map[string]string{
			"blackjack": "sprintBlackjackStats",
			"runner":    "sprintRunnerHighScore",
		},
	})
	return srv, store
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Routes().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(w.Body).Decode(&v); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return v
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(t, srv, "/health")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	resp := decode[HealthResponse](t, w)
	if resp.Status != "ok" || resp.Games != 2 {
		t.Errorf("health = %+v", resp)
	}
}

func TestGamesEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(t, srv, "/api/v1/games")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decode[GamesResponse](t, w)
	if len(resp.Games) != 2 || resp.Games[1].Title != "Sprint Runner" {
		t.Errorf("games = %+v", resp.Games)
	}
}

func TestScoresEndpoint(t *testing.T) {
	srv, store := newTestServer(t)
	for _, s := range []int{40, 90, 10} {
		if _, err := store.SaveScore("runner", s, false); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name   string
		query  string
		status int
		want   []int
	}{
		{"top by default", "", http.StatusOK, []int{90, 40, 10}},
		{"limit", "?limit=2", http.StatusOK, []int{90, 40}},
		{"recent", "?order=recent", http.StatusOK, []int{10, 90, 40}},
		{"bad limit", "?limit=zero", http.StatusBadRequest, nil},
		{"bad order", "?order=sideways", http.StatusBadRequest, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, srv, "/api/v1/games/runner/scores"+tt.query)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d: %s", w.Code, tt.status, w.Body)
			}
			if tt.status != http.StatusOK {
				resp := decode[ErrorResponse](t, w)
				if resp.Type != "validation_error" {
					t.Errorf("error type = %q", resp.Type)
				}
				return
			}
			resp := decode[ScoresResponse](t, w)
			if len(resp.Scores) != len(tt.want) {
				t.Fatalf("got %d scores, want %d", len(resp.Scores), len(tt.want))
			}
			for i, s := range resp.Scores {
				if s.Score != tt.want[i] {
					t.Errorf("scores[%d] = %d, want %d", i, s.Score, tt.want[i])
				}
				if s.RunID == "" {
					t.Errorf("scores[%d] has no run id", i)
				}
			}
		})
	}
}

func TestEmptyScoresIsArray(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(t, srv, "/api/v1/games/blackjack/scores")
	if !strings.Contains(w.Body.String(), `"scores":[]`) {
		t.Errorf("body = %s, want an empty array", w.Body)
	}
}

func TestUnknownGame(t *testing.T) {
	srv, _ := newTestServer(t)

	for _, path := range []string{
		"/api/v1/games/solitaire",
		"/api/v1/games/solitaire/scores",
		"/api/v1/games/solitaire/best",
	} {
		if w := get(t, srv, path); w.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", path, w.Code)
		}
	}
}

func TestBestEndpoint(t *testing.T) {
	srv, store := newTestServer(t)

	if w := get(t, srv, "/api/v1/games/runner/best"); w.Code != http.StatusNotFound {
		t.Fatalf("best before any record = %d, want 404", w.Code)
	}

	store.Set("sprintRunnerHighScore", "512")
	store.Set("sprintBlackjackStats", `{"bestStreak":3,"currentStreak":1,"highestConfidence":700,"totalSprints":9}`)

	w := get(t, srv, "/api/v1/games/runner/best")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	resp := decode[BestResponse](t, w)
	if string(resp.Value) != "512" {
		t.Errorf("runner best = %s", resp.Value)
	}

	w = get(t, srv, "/api/v1/games/blackjack/best")
	resp = decode[BestResponse](t, w)
	var stats struct {
		HighestConfidence int `json:"highestConfidence"`
	}
	if err := json.Unmarshal(resp.Value, &stats); err != nil || stats.HighestConfidence != 700 {
		t.Errorf("blackjack best = %s (%v)", resp.Value, err)
	}
}

func TestGameStatsAndRun(t *testing.T) {
	srv, store := newTestServer(t)
	id, _ := store.SaveScore("blackjack", 1000, true)
	store.SaveScore("blackjack", 0, false)

	w := get(t, srv, "/api/v1/games/blackjack")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	stats := decode[storage.GameStats](t, w)
	if stats.GamesCount != 2 || stats.Wins != 1 {
		t.Errorf("stats = %+v", stats)
	}

	w = get(t, srv, "/api/v1/runs/"+id)
	if w.Code != http.StatusOK {
		t.Fatalf("run status = %d", w.Code)
	}
	run := decode[storage.ScoreEntry](t, w)
	if run.RunID != id || !run.Won {
		t.Errorf("run = %+v", run)
	}

	if w := get(t, srv, "/api/v1/runs/nope"); w.Code != http.StatusNotFound {
		t.Errorf("unknown run = %d, want 404", w.Code)
	}
}
