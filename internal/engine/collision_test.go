package engine

import (
	"testing"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

func TestOverlapsExactness(t *testing.T) {
	player := core.Box{X: 0, Y: 0, W: 40, H: 40} // inset by 8: [8, 32] on both axes

	tests := []struct {
		name     string
		entity   core.Box
		expected bool
	}{
		{"grazing right padding edge", core.Box{X: 32, Y: 10, W: 10, H: 10}, false},
		{"just inside right edge", core.Box{X: 31.999, Y: 10, W: 10, H: 10}, true},
		{"grazing left padding edge", core.Box{X: -2, Y: 10, W: 10, H: 10}, false},
		{"grazing bottom padding edge", core.Box{X: 10, Y: 32, W: 10, H: 10}, false},
		{"overlaps one axis only", core.Box{X: 10, Y: 50, W: 10, H: 10}, false},
		{"inside raw box but outside inset", core.Box{X: 34, Y: 34, W: 5, H: 5}, false},
		{"fully inside", core.Box{X: 15, Y: 15, W: 5, H: 5}, true},
		{"contains player", core.Box{X: -100, Y: -100, W: 300, H: 300}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(player, tc.entity, 8); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestResolverProcessesEveryOverlap(t *testing.T) {
	s := testStore()
	on := core.Vec{X: 100, Y: 100}
	a := s.Add(Entity{Pos: on, W: 20, H: 20, Category: CategoryObstacleBad})
	far := s.Add(Entity{Pos: core.Vec{X: 400, Y: 100}, W: 20, H: 20, Category: CategoryObstacleBad})
	b := s.Add(Entity{Pos: on, W: 20, H: 20, Category: CategoryCollectibleGood})
	s.Add(Entity{Pos: on, W: 1, H: 1, Category: CategoryParticle, TTL: 10})
	c := s.Add(Entity{Pos: on, W: 20, H: 20, Category: CategoryPowerUp})

	r := Resolver{Padding: 0}
	contacts := r.Resolve(core.Box{X: 95, Y: 95, W: 30, H: 30}, s)

	if len(contacts) != 3 {
		t.Fatalf("expected 3 contacts, got %d", len(contacts))
	}
	expected := []struct {
		id  uint64
		out Outcome
	}{{a.ID, OutcomeHit}, {b.ID, OutcomeCollect}, {c.ID, OutcomePowerUp}}
	for i, e := range expected {
		if contacts[i].Entity.ID != e.id || contacts[i].Outcome != e.out {
			t.Errorf("contact %d = %d/%v, expected %d/%v", i, contacts[i].Entity.ID, contacts[i].Outcome, e.id, e.out)
		}
	}

	if s.Len() != 2 {
		t.Errorf("expected the far obstacle and the particle to remain, have %d", s.Len())
	}
	if _, ok := s.Get(far.ID); !ok {
		t.Error("non-overlapping entity was removed")
	}

	if again := r.Resolve(core.Box{X: 95, Y: 95, W: 30, H: 30}, s); len(again) != 0 {
		t.Errorf("resolved entities must not be re-tested, got %d contacts", len(again))
	}
}

func TestResolverCustomOutcomes(t *testing.T) {
	s := testStore()
	s.Add(Entity{Pos: core.Vec{X: 0, Y: 0}, W: 10, H: 10, Category: CategoryObstacleNeutral})

	r := Resolver{Outcomes: map[Category]Outcome{CategoryObstacleBad: OutcomeHit}}
	if got := r.Resolve(core.Box{W: 10, H: 10}, s); len(got) != 0 {
		t.Errorf("neutral obstacles have no outcome here, got %+v", got)
	}
	if s.Len() != 1 {
		t.Error("entities without an outcome stay in the store")
	}
}
