package registry

import (
	"testing"

	"github.com/vovakirdan/pm-arcade/internal/core"
	"github.com/vovakirdan/pm-arcade/internal/engine"
)

type stubGame struct {
	id    string
	deps  Deps
	typed bool
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }
func (g *stubGame) Configure(d Deps) { g.deps = d }
func (g *stubGame) WantsText() bool { return g.typed }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}
	g, err := Create("zz-stub")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.ID() != "zz-stub" {
		t.Errorf("created %q", g.ID())
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub zz-stub"
		}
	}
	if !found {
		t.Error("List() should include the game with its title")
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate registration should panic")
		}
	}()
	Register("zz-stub", func() Game { return &stubGame{id: "zz-stub"} })
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-game"); err == nil {
		t.Error("expected an error for an unknown game")
	}
}

func TestConfigureAndWantsText(t *testing.T) {
	kv := engine.NewMemoryKV()
	g := &stubGame{id: "x", typed: true}

	Configure(g, Deps{KV: kv})
	if g.deps.KV != kv {
		t.Error("Configure should pass deps through")
	}
	if !WantsText(g) {
		t.Error("WantsText should reflect the game")
	}
}

type missesGame struct{ stubGame }

func (missesGame) ScoreDirection() engine.Direction { return engine.LowerIsBetter }

func TestScoreDirection(t *testing.T) {
	if got := ScoreDirection(&stubGame{}); got != engine.HigherIsBetter {
		t.Errorf("default direction = %v, want higher is better", got)
	}
	if got := ScoreDirection(&missesGame{}); got != engine.LowerIsBetter {
		t.Errorf("ranked direction = %v, want lower is better", got)
	}
}
