package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/vovakirdan/pm-arcade/internal/engine"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTest(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("runner", score, false); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("survivor", 500, true); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("runner", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, scores[i].Score, w)
		}
	}

	other, err := store.TopScores("survivor", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(other) != 1 || !other[0].Won {
		t.Errorf("survivor scores = %+v, want one win", other)
	}
}

func TestSaveScoreReturnsRunID(t *testing.T) {
	store := openTest(t)

	id, err := store.SaveScore("decipher", 70, false)
	if err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("run id %q is not a uuid: %v", id, err)
	}

	run, err := store.Run(id)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if run == nil || run.GameID != "decipher" || run.Score != 70 {
		t.Errorf("Run() = %+v", run)
	}

	missing, err := store.Run(uuid.NewString())
	if err != nil || missing != nil {
		t.Errorf("Run(unknown) = %+v, %v; want nil, nil", missing, err)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTest(t)

	for i := range 5 {
		store.SaveScore("test", (i+1)*100, false)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreRecentScores(t *testing.T) {
	store := openTest(t)

	for _, s := range []int{10, 30, 20} {
		store.SaveScore("runner", s, false)
	}

	recent, err := store.RecentScores("runner", 2)
	if err != nil {
		t.Fatalf("RecentScores() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Score != 20 || recent[1].Score != 30 {
		t.Errorf("RecentScores() = %v, want [20 30]", recent)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTest(t)

	// No scores yet
	high, err := store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("runner", 100, false)
	store.SaveScore("runner", 300, false)
	store.SaveScore("runner", 200, false)

	high, err = store.HighScore("runner")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreLowerIsBetterRanking(t *testing.T) {
	store := openTest(t)

	for _, misses := range []int{4, 1, 3} {
		if _, err := store.SaveResult("decipher", misses, misses < 4, engine.LowerIsBetter); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}
	store.SaveScore("runner", 10, false)
	store.SaveScore("runner", 30, false)

	top, err := store.TopScores("decipher", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 || top[0].Score != 1 || top[1].Score != 3 || top[2].Score != 4 {
		t.Errorf("decipher ranking = %+v, want 1, 3, 4", top)
	}
	if !top[0].LowerIsBetter {
		t.Error("decipher runs should be marked lower is better")
	}

	if best, _ := store.HighScore("decipher"); best != 1 {
		t.Errorf("decipher best = %d, want 1", best)
	}
	if best, _ := store.HighScore("runner"); best != 30 {
		t.Errorf("runner best = %d, want 30", best)
	}

	stats, err := store.GetGameStats("decipher")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.HighScore != 1 {
		t.Errorf("stats best = %d, want 1", stats.HighScore)
	}
	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if all["decipher"].HighScore != 1 || all["runner"].HighScore != 30 {
		t.Errorf("all stats = decipher %d, runner %d", all["decipher"].HighScore, all["runner"].HighScore)
	}
}

func TestStoreMigratesOldScoresTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (run_id, game_id, score, won) VALUES ('old-run', 'runner', 12, 0);`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on an old database failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveResult("decipher", 2, true, engine.LowerIsBetter); err != nil {
		t.Fatalf("SaveResult() after migration failed: %v", err)
	}
	old, err := store.Run("old-run")
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if old == nil || old.Score != 12 || old.LowerIsBetter {
		t.Errorf("old run = %+v", old)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTest(t)

	store.SaveScore("runner", 100, false)
	store.SaveScore("runner", 200, false)
	store.SaveScore("survivor", 300, false)

	if err := store.ClearScores("runner"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	cleared, _ := store.TopScores("runner", 10)
	if len(cleared) != 0 {
		t.Errorf("Expected 0 runner scores after clear, got %d", len(cleared))
	}

	kept, _ := store.TopScores("survivor", 10)
	if len(kept) != 1 {
		t.Errorf("survivor scores should not be affected by clearing runner")
	}
}

func TestStoreKV(t *testing.T) {
	store := openTest(t)

	if _, ok := store.Get("sprintRunnerHighScore"); ok {
		t.Fatal("Get() on empty store reported a value")
	}
	if _, err := store.Value("sprintRunnerHighScore"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Value() err = %v, want ErrNotFound", err)
	}

	if err := store.Set("sprintRunnerHighScore", "420"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := store.Set("sprintRunnerHighScore", "512"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}

	v, ok := store.Get("sprintRunnerHighScore")
	if !ok || v != "512" {
		t.Errorf("Get() = %q, %v; want 512, true", v, ok)
	}

	if err := store.Delete("sprintRunnerHighScore"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok := store.Get("sprintRunnerHighScore"); ok {
		t.Error("key survived Delete()")
	}
}

func TestStoreKVPersistsAcrossOpen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.Set("decipherTutorialSeen", "true")
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if v, ok := store.Get("decipherTutorialSeen"); !ok || v != "true" {
		t.Errorf("Get() after reopen = %q, %v", v, ok)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTest(t)

	store.SaveScore("blackjack", 1000, true)
	store.SaveScore("blackjack", 0, false)
	store.SaveScore("runner", 40, false)

	stats, err := store.GetGameStats("blackjack")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Wins != 1 || stats.HighScore != 1000 || stats.AvgScore != 500 {
		t.Errorf("GetGameStats() = %+v", stats)
	}

	empty, err := store.GetGameStats("decipher")
	if err != nil {
		t.Fatalf("GetGameStats() on empty game failed: %v", err)
	}
	if empty.GamesCount != 0 || empty.HighScore != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["runner"].TotalScore != 40 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
