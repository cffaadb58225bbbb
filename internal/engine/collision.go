package engine

import "github.com/vovakirdan/pm-arcade/internal/core"

// Outcome is what happens when the player touches an entity.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeHit
	OutcomeCollect
	OutcomePowerUp
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeHit:
		return "hit"
	case OutcomeCollect:
		return "collect"
	case OutcomePowerUp:
		return "powerup"
	default:
		return "none"
	}
}

// DefaultOutcomes maps obstacles to hits, collectibles to collects and
// power-ups to power-ups. Particles never collide.
func DefaultOutcomes() map[Category]Outcome {
	return map[Category]Outcome{
		CategoryObstacleBad:     OutcomeHit,
		CategoryObstacleNeutral: OutcomeHit,
		CategoryCollectibleGood: OutcomeCollect,
		CategoryPowerUp:         OutcomePowerUp,
	}
}

// Contact is one resolved player/entity overlap.
type Contact struct {
	Entity  Entity
	Outcome Outcome
}

// Overlaps reports whether the player box, inset by padding, intersects
// the entity box. Touching edges do not count.
func Overlaps(player, entity core.Box, padding float64) bool {
	return player.Inset(padding).Overlaps(entity)
}

// Resolver tests the player against every entity.
type Resolver struct {
	Padding  float64
	Outcomes map[Category]Outcome
}

// Outcome returns the outcome configured for a category.
func (r Resolver) Outcome(c Category) Outcome {
	if r.Outcomes == nil {
		return DefaultOutcomes()[c]
	}
	return r.Outcomes[c]
}

// Resolve tests entities in insertion order, removes every overlapping
// entity that has an outcome, and returns one contact per removed entity.
func (r Resolver) Resolve(player core.Box, store *Store) []Contact {
	var contacts []Contact
	store.filter(func(e Entity) bool {
		out := r.Outcome(e.Category)
		if out == OutcomeNone || !Overlaps(player, e.Box(), r.Padding) {
			return true
		}
		contacts = append(contacts, Contact{Entity: e, Outcome: out})
		return false
	})
	return contacts
}
