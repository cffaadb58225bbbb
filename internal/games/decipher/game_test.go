package decipher

import (
	"strings"
	"testing"

	"github.com/vovakirdan/pm-arcade/internal/config"
	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
	"github.com/vovakirdan/pm-arcade/internal/registry"
)

func newGame(t *testing.T, kv engine.KV) *Game {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	g := New()
	g.Configure(registry.Deps{KV: kv})
	g.Reset(core.RuntimeConfig{ScreenW: 100, ScreenH: 30, TickRate: 60, Seed: 3})
	return g
}

// started returns a game past the tutorial and into a session.
func started(t *testing.T, kv *engine.MemoryKV) *Game {
	t.Helper()
	engine.SetFlag(kv, TutorialKey)
	g := newGame(t, kv)
	g.Step(press(core.ActionJump))
	if !g.WantsText() {
		t.Fatal("a started session should take typed text")
	}
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func typed(s string) core.InputFrame {
	in := core.NewInputFrame()
	for _, r := range s {
		in.Type(r)
	}
	return in
}

// waitForCard steps until a card is on screen.
func waitForCard(t *testing.T, g *Game) engine.Entity {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if ents := g.Snapshot().Entities; len(ents) > 0 {
			return ents[0]
		}
		g.Step(core.NewInputFrame())
	}
	t.Fatal("no card spawned")
	return engine.Entity{}
}

func TestRegistered(t *testing.T) {
	if !registry.Exists("decipher") {
		t.Fatal("decipher should register itself")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Minimum Viable Product", "minimum viable product"},
		{"  minimum   VIABLE product ", "minimum viable product"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.expected {
			t.Errorf("Normalize(%q) = %q, expected %q", tc.in, got, tc.expected)
		}
	}
}

func TestDeckBecomesLabels(t *testing.T) {
	cfg := config.DefaultDecipherConfig()
	ec := EngineConfig(cfg)
	if len(ec.Spawn.BadLabels) != len(cfg.Cards.Deck) {
		t.Fatalf("labels = %d, deck = %d", len(ec.Spawn.BadLabels), len(cfg.Cards.Deck))
	}
	if l := ec.Spawn.BadLabels[0]; l.Text != "MVP" || l.Answer != "Minimum Viable Product" {
		t.Errorf("first label = %+v", l)
	}
	if ec.BestDirection != engine.LowerIsBetter {
		t.Error("misses are lower-is-better")
	}
}

func TestTutorialShownOnce(t *testing.T) {
	kv := engine.NewMemoryKV()
	g := newGame(t, kv)
	if !g.TutorialVisible() {
		t.Fatal("first visit should show the tutorial")
	}

	g.Step(press(core.ActionJump))
	if g.TutorialVisible() {
		t.Error("any key should dismiss the tutorial")
	}
	if g.State().Status != string(engine.StatusStart) {
		t.Error("dismissing the tutorial should not start the session")
	}
	if !engine.Flag(kv, TutorialKey) {
		t.Error("dismissal should be remembered")
	}

	again := newGame(t, kv)
	if again.TutorialVisible() {
		t.Error("tutorial should not reappear once seen")
	}

	again.Step(press(core.ActionHelp))
	if !again.TutorialVisible() {
		t.Error("? should bring the tutorial back")
	}
}

func TestTypingDefinitionCollectsCard(t *testing.T) {
	g := started(t, engine.NewMemoryKV())
	card := waitForCard(t, g)

	// Case and spacing do not matter.
	g.Step(typed("  " + strings.ToUpper(card.Answer)))

	for _, e := range g.Snapshot().Entities {
		if e.ID == card.ID {
			t.Fatal("matched card should be collected")
		}
	}
	if g.Snapshot().Progress != 10 {
		t.Errorf("progress = %v, expected 10", g.Snapshot().Progress)
	}
	if g.Buffer() != "" {
		t.Errorf("buffer should clear after a match, got %q", g.Buffer())
	}
	if !strings.Contains(g.Feedback(), card.Answer) {
		t.Errorf("feedback = %q", g.Feedback())
	}
}

func TestWrongSubmissionFeedbackExpires(t *testing.T) {
	g := started(t, engine.NewMemoryKV())

	in := typed("synergy")
	in.Set(core.ActionConfirm)
	g.Step(in)

	if g.Feedback() == "" || g.Buffer() != "" {
		t.Fatalf("wrong answer should show feedback and clear, got %q / %q", g.Feedback(), g.Buffer())
	}
	for i := 0; i < 50; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.Feedback() != "" {
		t.Errorf("feedback should expire, still %q", g.Feedback())
	}
}

func TestBackspaceAndClear(t *testing.T) {
	g := started(t, engine.NewMemoryKV())

	g.Step(typed("abc"))
	g.Step(press(core.ActionBackspace))
	if g.Buffer() != "ab" {
		t.Errorf("buffer = %q, expected ab", g.Buffer())
	}
	g.Step(press(core.ActionBack))
	if g.Buffer() != "" {
		t.Errorf("Esc should clear, got %q", g.Buffer())
	}
}

func TestMissesEndSessionWithoutRecord(t *testing.T) {
	kv := engine.NewMemoryKV()
	g := started(t, kv)

	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}

	st := g.State()
	if !st.GameOver || st.Won {
		t.Fatalf("unanswered cards should end the session, state %+v", st)
	}
	if g.Snapshot().Hits != 5 {
		t.Errorf("misses = %d, expected 5", g.Snapshot().Hits)
	}
	if _, ok := kv.Get(BestKey); ok {
		t.Error("a lost session has no result to record")
	}
}

func TestAnsweringEverythingWins(t *testing.T) {
	kv := engine.NewMemoryKV()
	g := started(t, kv)

	ended := 0
	for i := 0; i < 20000 && !g.State().GameOver; i++ {
		in := core.NewInputFrame()
		if ents := g.Snapshot().Entities; len(ents) > 0 && ents[0].Answer != "" {
			in = typed(ents[0].Answer)
		}
		if g.Step(in).Ended {
			ended++
		}
	}

	if !g.State().Won {
		t.Fatalf("answering every card should win, state %+v", g.State())
	}
	if ended != 1 {
		t.Errorf("Ended reported %d times", ended)
	}
	if v, _ := kv.Get(BestKey); v != "0" {
		t.Errorf("best misses = %q, expected 0", v)
	}
	if g.WantsText() {
		t.Error("a finished session takes no text")
	}
}

func TestRender(t *testing.T) {
	kv := engine.NewMemoryKV()
	g := newGame(t, kv)
	scr := core.NewScreen(100, 30)

	g.Render(scr)
	if !strings.Contains(scr.String(), "PMs love acronyms.") {
		t.Error("tutorial should render first")
	}

	g.Step(press(core.ActionJump))
	g.Step(press(core.ActionJump))
	g.Step(typed("key"))
	g.Render(scr)
	if !strings.Contains(scr.Row(29), "> key_") {
		t.Errorf("prompt missing: %q", scr.Row(29))
	}
}
