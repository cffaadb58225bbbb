package engine

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// Pattern selects where spawned entities appear and how they move.
type Pattern int

const (
	// PatternRandomDrift spawns on any edge, aimed at the player with jitter.
	PatternRandomDrift Pattern = iota
	// PatternStreams spawns on one edge and crosses the field in a straight line.
	PatternStreams
	// PatternSpiral spawns on a ring around the centre and curls inward.
	PatternSpiral
	// PatternRush spawns in discrete lanes at high speed, forming walls.
	PatternRush
	// PatternLane spawns at the right edge on a ground lane, moving left.
	PatternLane
	// PatternDrop spawns at the top edge, falling straight down.
	PatternDrop
)

// String returns the pattern name.
func (p Pattern) String() string {
	switch p {
	case PatternRandomDrift:
		return "random-drift"
	case PatternStreams:
		return "streams"
	case PatternSpiral:
		return "spiral"
	case PatternRush:
		return "rush"
	case PatternLane:
		return "lane"
	case PatternDrop:
		return "drop"
	default:
		return "unknown"
	}
}

// Label is a display text with an optional expected typed answer.
type Label struct {
	Text   string
	Answer string
}

// Labels builds answerless labels from plain strings.
func Labels(texts ...string) []Label {
	out := make([]Label, len(texts))
	for i, t := range texts {
		out[i] = Label{Text: t}
	}
	return out
}

// PhaseSpawn is the spawn behaviour for one difficulty phase.
type PhaseSpawn struct {
	Interval float64 // ticks between batches
	Batch    int     // entities per batch
	Pattern  Pattern
	SpeedMul float64 // multiplier applied to the progression speed
}

// PowerUpSpawn configures the independent power-up timer.
type PowerUpSpawn struct {
	Enabled     bool
	MinInterval float64 // ticks
	MaxInterval float64 // ticks
	Size        core.Vec
	Label       string
	// Area bounds the top-left corner of a new power-up. An empty area
	// means anywhere the power-up fits inside the field.
	Area core.Box
}

// SpawnConfig is the per-game spawner tuning.
type SpawnConfig struct {
	Field  core.Vec
	Phases []PhaseSpawn

	BadSize  core.Vec
	GoodSize core.Vec

	GoodChance    float64 // probability a spawn is beneficial
	NeutralChance float64 // probability a harmful spawn is neutral instead

	BadLabels     []Label
	NeutralLabels []Label
	GoodLabels    []Label

	BadValue  float64
	GoodValue float64

	Jitter float64 // max angular jitter in radians for random drift
	Lanes  int     // lane count for rush walls (horizontal walls use Lanes-1)

	LaneY float64 // ground line for PatternLane
	GoodY float64 // top of collectibles for PatternLane
	Inset float64 // horizontal keep-out for PatternDrop

	// MinGap withholds new spawns while the rightmost live obstacle is
	// closer than this to the right edge. Zero disables the rule.
	MinGap float64

	PowerUp PowerUpSpawn
}

// SpawnContext is the live state the spawner aims at.
type SpawnContext struct {
	Player       core.Vec // player centre
	Speed        float64  // current progression speed
	Rightmost    float64  // right edge of the rightmost obstacle
	HasRightmost bool
}

// Spawner decides when and what to spawn.
type Spawner struct {
	cfg      SpawnConfig
	rng      *rand.Rand
	acc      float64
	powerAcc float64
	powerAt  float64
}

// NewSpawner creates a spawner with a seeded random source.
func NewSpawner(cfg SpawnConfig, seed int64) *Spawner {
	if cfg.Jitter == 0 {
		cfg.Jitter = 0.6
	}
	if cfg.Lanes <= 1 {
		cfg.Lanes = 6
	}
	s := &Spawner{cfg: cfg}
	s.Reset(seed)
	return s
}

// Reset reseeds the random source and zeroes both timers.
func (s *Spawner) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
	s.acc = 0
	s.powerAcc = 0
	s.powerAt = s.nextPowerUp()
}

// ResetAccumulator zeroes the obstacle timer, delaying the next batch by a
// full interval.
func (s *Spawner) ResetAccumulator() {
	s.acc = 0
}

// Accumulator returns the ticks accumulated toward the next batch.
func (s *Spawner) Accumulator() float64 {
	return s.acc
}

// Phase returns the spawn settings for a phase, clamped to the table.
func (s *Spawner) Phase(phase int) PhaseSpawn {
	if len(s.cfg.Phases) == 0 {
		return PhaseSpawn{Interval: 30, Batch: 1, Pattern: PatternRandomDrift, SpeedMul: 1}
	}
	ps := s.cfg.Phases[core.Clamp(phase, 0, len(s.cfg.Phases)-1)]
	if ps.Batch < 1 {
		ps.Batch = 1
	}
	if ps.SpeedMul == 0 {
		ps.SpeedMul = 1
	}
	return ps
}

// TrySpawn advances the timers by dt and returns the entities due this tick.
// Returned entities have no ID yet; the caller adds them to a Store.
func (s *Spawner) TrySpawn(dt float64, phase int, ctx SpawnContext) []Entity {
	var out []Entity

	ps := s.Phase(phase)
	s.acc += dt
	if s.acc > ps.Interval && !s.withheld(ctx) {
		s.acc = 0
		for i := 0; i < ps.Batch; i++ {
			out = append(out, s.spawn(ps, ctx))
		}
	}

	if s.cfg.PowerUp.Enabled {
		s.powerAcc += dt
		if s.powerAcc > s.powerAt {
			s.powerAcc = 0
			s.powerAt = s.nextPowerUp()
			out = append(out, s.spawnPowerUp())
		}
	}

	return out
}

// withheld reports whether the minimum gap rule blocks spawning.
func (s *Spawner) withheld(ctx SpawnContext) bool {
	if s.cfg.MinGap <= 0 || !ctx.HasRightmost {
		return false
	}
	return ctx.Rightmost > s.cfg.Field.X-s.cfg.MinGap
}

func (s *Spawner) nextPowerUp() float64 {
	p := s.cfg.PowerUp
	if !p.Enabled {
		return 0
	}
	if p.MaxInterval <= p.MinInterval {
		return p.MinInterval
	}
	return p.MinInterval + s.rng.Float64()*(p.MaxInterval-p.MinInterval)
}

func (s *Spawner) spawnPowerUp() Entity {
	p := s.cfg.PowerUp
	area := p.Area
	if area.W <= 0 || area.H <= 0 {
		f := s.cfg.Field
		area = core.Box{W: math.Max(f.X-p.Size.X, 0), H: math.Max(f.Y-p.Size.Y, 0)}
	}
	return Entity{
		Pos:      core.Vec{X: area.X + s.rng.Float64()*area.W, Y: area.Y + s.rng.Float64()*area.H},
		W:        p.Size.X,
		H:        p.Size.Y,
		Category: CategoryPowerUp,
		Label:    p.Label,
	}
}

// spawn draws the category and the label independently, then places the
// entity according to the phase pattern.
func (s *Spawner) spawn(ps PhaseSpawn, ctx SpawnContext) Entity {
	e := Entity{Category: CategoryObstacleBad, Value: s.cfg.BadValue}
	size := s.cfg.BadSize
	labels := s.cfg.BadLabels

	if s.rng.Float64() < s.cfg.GoodChance {
		e.Category = CategoryCollectibleGood
		e.Value = s.cfg.GoodValue
		size = s.cfg.GoodSize
		labels = s.cfg.GoodLabels
	} else if s.cfg.NeutralChance > 0 && s.rng.Float64() < s.cfg.NeutralChance {
		e.Category = CategoryObstacleNeutral
		labels = s.cfg.NeutralLabels
	}
	if size.X <= 0 || size.Y <= 0 {
		size = s.cfg.BadSize
	}
	e.W, e.H = size.X, size.Y

	if len(labels) > 0 {
		l := labels[s.rng.Intn(len(labels))]
		e.Label, e.Answer = l.Text, l.Answer
	}

	speed := ctx.Speed * ps.SpeedMul
	switch ps.Pattern {
	case PatternStreams:
		s.placeStream(&e, speed)
	case PatternSpiral:
		s.placeSpiral(&e, speed)
	case PatternRush:
		s.placeRush(&e, speed)
	case PatternLane:
		s.placeLane(&e, speed)
	case PatternDrop:
		s.placeDrop(&e, speed)
	default:
		s.placeDrift(&e, speed, ctx.Player)
	}
	return e
}

func (s *Spawner) placeDrift(e *Entity, speed float64, target core.Vec) {
	f := s.cfg.Field
	switch s.rng.Intn(4) {
	case 0:
		e.Pos = core.Vec{X: -e.W, Y: s.rng.Float64() * f.Y}
	case 1:
		e.Pos = core.Vec{X: f.X, Y: s.rng.Float64() * f.Y}
	case 2:
		e.Pos = core.Vec{X: s.rng.Float64() * f.X, Y: -e.H}
	default:
		e.Pos = core.Vec{X: s.rng.Float64() * f.X, Y: f.Y}
	}
	angle := math.Atan2(target.Y-e.Pos.Y, target.X-e.Pos.X) + (s.rng.Float64()-0.5)*2*s.cfg.Jitter
	e.Vel = core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed}
}

func (s *Spawner) placeStream(e *Entity, speed float64) {
	f := s.cfg.Field
	if s.rng.Float64() < 0.5 {
		e.Pos.X = f.X
		e.Vel.X = -speed
		if s.rng.Float64() < 0.5 {
			e.Pos.X = -e.W
			e.Vel.X = speed
		}
		e.Pos.Y = 30 + s.rng.Float64()*math.Max(f.Y-60, 0)
		return
	}
	e.Pos.X = 30 + s.rng.Float64()*math.Max(f.X-60, 0)
	e.Pos.Y = f.Y
	e.Vel.Y = -speed
	if s.rng.Float64() < 0.5 {
		e.Pos.Y = -e.H
		e.Vel.Y = speed
	}
}

// placeSpiral spawns on an ellipse around the centre so spawns stay inside
// the cull margins, heading back past the centre at a tangent.
func (s *Spawner) placeSpiral(e *Entity, speed float64) {
	f := s.cfg.Field
	angle := s.rng.Float64() * 2 * math.Pi
	e.Pos = core.Vec{
		X: f.X/2 + math.Cos(angle)*f.X*0.6,
		Y: f.Y/2 + math.Sin(angle)*f.Y*0.6,
	}
	heading := angle + math.Pi + 0.5
	e.Vel = core.Vec{X: math.Cos(heading) * speed, Y: math.Sin(heading) * speed}
}

func (s *Spawner) placeRush(e *Entity, speed float64) {
	f := s.cfg.Field
	if s.rng.Float64() < 0.5 {
		rows := s.cfg.Lanes - 1
		e.Pos.X = f.X
		e.Vel.X = -speed
		if s.rng.Float64() < 0.5 {
			e.Pos.X = -e.W
			e.Vel.X = speed
		}
		e.Pos.Y = float64(s.rng.Intn(rows)) * (f.Y / float64(rows))
		return
	}
	cols := s.cfg.Lanes
	e.Pos.X = float64(s.rng.Intn(cols)) * (f.X / float64(cols))
	e.Pos.Y = f.Y
	e.Vel.Y = -speed
	if s.rng.Float64() < 0.5 {
		e.Pos.Y = -e.H
		e.Vel.Y = speed
	}
}

func (s *Spawner) placeLane(e *Entity, speed float64) {
	e.Pos.X = s.cfg.Field.X
	e.Pos.Y = s.cfg.LaneY - e.H
	if e.Category == CategoryCollectibleGood {
		e.Pos.Y = s.cfg.GoodY
	}
	e.Vel = core.Vec{X: -speed}
}

func (s *Spawner) placeDrop(e *Entity, speed float64) {
	span := math.Max(s.cfg.Field.X-e.W-2*s.cfg.Inset, 0)
	e.Pos = core.Vec{X: s.cfg.Inset + s.rng.Float64()*span, Y: -e.H}
	e.Vel = core.Vec{Y: speed}
}
