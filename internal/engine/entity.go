package engine

import (
	"github.com/vovakirdan/pm-arcade/internal/core"
)

// Category is the closed set of entity kinds. It decides the collision
// outcome and the visual treatment of an entity.
type Category int

const (
	CategoryObstacleBad Category = iota
	CategoryObstacleNeutral
	CategoryCollectibleGood
	CategoryPowerUp
	CategoryParticle
)

// String returns the category tag.
func (c Category) String() string {
	switch c {
	case CategoryObstacleBad:
		return "obstacle-bad"
	case CategoryObstacleNeutral:
		return "obstacle-neutral"
	case CategoryCollectibleGood:
		return "collectible-good"
	case CategoryPowerUp:
		return "collectible-powerup"
	case CategoryParticle:
		return "particle"
	default:
		return "unknown"
	}
}

// Entity is any non-player simulated object.
// Pos is the top-left corner in logical coordinates.
type Entity struct {
	ID       uint64
	Pos      core.Vec
	Vel      core.Vec
	W, H     float64
	Category Category

	Label  string  // display text
	Answer string  // expected typed answer, if any
	Value  float64 // progress awarded when collected
	TTL    float64 // remaining life in ticks (particles only)

	Gravity bool // affected by the store-wide entity gravity
}

// Box returns the entity's bounding box.
func (e Entity) Box() core.Box {
	return core.Box{X: e.Pos.X, Y: e.Pos.Y, W: e.W, H: e.H}
}

// Bounds describes the playfield and how far outside it an entity may
// travel before it is culled.
type Bounds struct {
	W, H             float64
	MarginX, MarginY float64
}

// Contains reports whether a position is still within the field plus margins.
func (b Bounds) Contains(p core.Vec) bool {
	return p.X >= -b.MarginX && p.X <= b.W+b.MarginX &&
		p.Y >= -b.MarginY && p.Y <= b.H+b.MarginY
}

// Store holds the active entities in insertion order.
type Store struct {
	bounds Bounds
	items  []Entity
	nextID uint64
}

// NewStore creates an empty store culling against the given bounds.
func NewStore(b Bounds) *Store {
	return &Store{
		bounds: b,
		items:  make([]Entity, 0, 32),
		nextID: 1,
	}
}

// Add assigns the next identifier to e and appends it.
// Identifiers are never reused until Reset.
func (s *Store) Add(e Entity) Entity {
	if e.W <= 0 {
		e.W = 1
	}
	if e.H <= 0 {
		e.H = 1
	}
	e.ID = s.nextID
	s.nextID++
	s.items = append(s.items, e)
	return e
}

// UpdateAll applies fn to every entity, then drops particles whose TTL
// ran out and entities that left the field beyond the margin.
func (s *Store) UpdateAll(fn func(*Entity)) {
	kept := s.items[:0]
	for i := range s.items {
		e := s.items[i]
		if fn != nil {
			fn(&e)
		}
		if e.Category == CategoryParticle && e.TTL <= 0 {
			continue
		}
		if !s.bounds.Contains(e.Pos) {
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept
}

// Remove deletes an entity by ID.
func (s *Store) Remove(id uint64) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Get looks up an entity by ID.
func (s *Store) Get(id uint64) (Entity, bool) {
	for _, e := range s.items {
		if e.ID == id {
			return e, true
		}
	}
	return Entity{}, false
}

// Clear removes all entities but keeps the ID sequence.
func (s *Store) Clear() {
	s.items = s.items[:0]
}

// ClearCategories removes every entity of the given categories and returns
// how many were removed.
func (s *Store) ClearCategories(cats ...Category) int {
	removed := 0
	kept := s.items[:0]
	for _, e := range s.items {
		if hasCategory(cats, e.Category) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.items = kept
	return removed
}

// Reset clears the store and restarts identifiers. Used between sessions.
func (s *Store) Reset() {
	s.items = s.items[:0]
	s.nextID = 1
}

// Items returns a copy of the entities in insertion order.
func (s *Store) Items() []Entity {
	out := make([]Entity, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.items)
}

// Count returns how many live entities belong to the given categories.
func (s *Store) Count(cats ...Category) int {
	n := 0
	for _, e := range s.items {
		if hasCategory(cats, e.Category) {
			n++
		}
	}
	return n
}

// Rightmost returns the largest right edge among entities of the given
// categories (all categories when none are given).
func (s *Store) Rightmost(cats ...Category) (float64, bool) {
	best, found := 0.0, false
	for _, e := range s.items {
		if len(cats) > 0 && !hasCategory(cats, e.Category) {
			continue
		}
		if r := e.Box().Right(); !found || r > best {
			best, found = r, true
		}
	}
	return best, found
}

// filter keeps the entities for which keep returns true.
func (s *Store) filter(keep func(Entity) bool) {
	kept := s.items[:0]
	for _, e := range s.items {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	s.items = kept
}

func hasCategory(cats []Category, c Category) bool {
	for _, x := range cats {
		if x == c {
			return true
		}
	}
	return false
}
