package engine

import (
	"math"
	"time"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// PlayerMode selects how the player moves.
type PlayerMode int

const (
	// PlayerFree is positioned directly by pointer or held keys.
	PlayerFree PlayerMode = iota
	// PlayerJump runs on the ground and jumps under gravity.
	PlayerJump
	// PlayerStatic never moves; it is a fixed hit zone.
	PlayerStatic
)

// PlayerConfig describes the controlled entity.
type PlayerConfig struct {
	Mode PlayerMode

	// Free: starting centre. Jump: left edge and ground line.
	// Static: top-left corner.
	X, Y float64

	Size   float64 // square size for free and jump players
	W, H   float64 // box size for static players
	Growth float64 // size fraction added per hit (free players)

	MoveSpeed float64 // units per tick while a direction is held

	Gravity     float64
	JumpImpulse float64
	MaxFall     float64
}

// Config is the full per-game engine configuration.
type Config struct {
	Field            core.Vec
	MarginX, MarginY float64

	Player      PlayerConfig
	Spawn       SpawnConfig
	Progression ProgressionConfig

	Padding  float64
	Outcomes map[Category]Outcome // nil means DefaultOutcomes
	MaxHits  int                  // zero means hits never end the session

	// Passive returns progress gained per tick while playing.
	Passive func(hits int, speed float64) float64

	EntityGravity float64 // applied to entities flagged with Gravity
	Burst         int     // particles emitted on each collect

	BestKey       string
	BestDirection Direction

	// SeedBest makes BestSeed the baseline a first result must beat.
	SeedBest bool
	BestSeed int

	FrameInterval time.Duration
}

// ResultFunc derives the session result from the final snapshot.
// Returning false means the session has no result worth recording.
type ResultFunc func(Snapshot) (int, bool)

// Option customizes an Engine.
type Option func(*Engine)

// WithSounds sets the sound player.
func WithSounds(p SoundPlayer) Option {
	return func(e *Engine) {
		if p != nil {
			e.sounds = p
		}
	}
}

// WithKV sets the persistence store used for the best score.
func WithKV(kv KV) Option {
	return func(e *Engine) { e.kv = kv }
}

// WithSeed sets the base random seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithResult sets how a finished session is scored.
func WithResult(fn ResultFunc) Option {
	return func(e *Engine) { e.resultFn = fn }
}

// Snapshot is a read-only view of the engine for rendering.
type Snapshot struct {
	Status   Status
	Paused   bool
	Entities []Entity
	Player   core.Box
	Airborne bool

	Progress  float64
	Max       float64
	Phase     int
	PhaseName string
	Hits      int
	MaxHits   int
	Speed     float64

	Announcement string

	Best    int
	HasBest bool
	NewBest bool

	Ticks      float64
	Generation uint64
}

// Engine is one arcade session driver. It is not safe for concurrent use;
// the host calls it from a single loop.
type Engine struct {
	cfg Config

	clock    *Clock
	store    *Store
	spawner  *Spawner
	resolver Resolver
	prog     *Progression
	session  *Machine[Status]
	sched    Scheduler
	best     *Best

	sounds   SoundPlayer
	kv       KV
	seed     int64
	resultFn ResultFunc

	jump JumpBody
	free FreeBody
	held core.Vec

	hits    int
	paused  bool
	ticks   float64
	newBest bool
	ended   bool
	events  []Event
}

// New creates an engine in StatusStart and reads the best score once.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.Spawn.Field == (core.Vec{}) {
		cfg.Spawn.Field = cfg.Field
	}

	e := &Engine{
		cfg:    cfg,
		sounds: NopSounds{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.clock = NewClock()
	if cfg.FrameInterval > 0 {
		e.clock.FrameInterval = cfg.FrameInterval
	}
	e.store = NewStore(Bounds{W: cfg.Field.X, H: cfg.Field.Y, MarginX: cfg.MarginX, MarginY: cfg.MarginY})
	e.spawner = NewSpawner(cfg.Spawn, e.seed)
	e.resolver = Resolver{Padding: cfg.Padding, Outcomes: cfg.Outcomes}
	e.prog = NewProgression(cfg.Progression)
	e.session = NewSession()
	e.best = LoadBest(e.kv, cfg.BestKey, cfg.BestDirection)
	if cfg.SeedBest {
		e.best.Seed(cfg.BestSeed)
	}

	e.resetPlayer()
	return e
}

// Start begins a new session from start or a terminal status.
// Every session starts from a full reset.
func (e *Engine) Start() bool {
	if err := e.session.Begin(StatusPlaying); err != nil {
		return false
	}
	e.resetSession()
	return true
}

// Reset returns a finished session to the start screen.
func (e *Engine) Reset() bool {
	if err := e.session.To(StatusStart); err != nil {
		return false
	}
	e.resetSession()
	return true
}

// TogglePause pauses or resumes a running session.
func (e *Engine) TogglePause() bool {
	if !e.playing() {
		return false
	}
	e.paused = !e.paused
	if !e.paused {
		e.clock.Reset()
	}
	return true
}

func (e *Engine) resetSession() {
	e.store.Reset()
	e.spawner.Reset(e.seed + int64(e.session.Generation()))
	e.prog.Reset()
	e.clock.Reset()
	e.sched.Cancel()
	e.hits = 0
	e.paused = false
	e.held = core.Vec{}
	e.ticks = 0
	e.newBest = false
	e.ended = false
	e.events = e.events[:0]
	e.resetPlayer()
}

func (e *Engine) resetPlayer() {
	p := e.cfg.Player
	switch p.Mode {
	case PlayerJump:
		e.jump = JumpBody{
			Gravity:     p.Gravity,
			JumpImpulse: p.JumpImpulse,
			GroundY:     p.Y - p.Size,
			MaxFall:     p.MaxFall,
		}
		e.jump.Land()
	case PlayerFree:
		e.free = FreeBody{X: p.X, Y: p.Y, Half: p.Size / 2, FieldW: e.cfg.Field.X, FieldH: e.cfg.Field.Y}
		e.free.Clamp()
	}
}

func (e *Engine) playing() bool {
	return e.session.State() == StatusPlaying
}

// Jump starts a jump. Ignored unless playing, unpaused and grounded.
func (e *Engine) Jump() bool {
	if !e.playing() || e.paused || e.cfg.Player.Mode != PlayerJump {
		return false
	}
	if !e.jump.Jump() {
		return false
	}
	e.sounds.Play(SoundJump)
	return true
}

// MoveBy shifts a free player. Ignored unless playing and unpaused.
func (e *Engine) MoveBy(dx, dy float64) {
	if !e.playing() || e.paused || e.cfg.Player.Mode != PlayerFree {
		return
	}
	e.free.MoveBy(dx, dy)
}

// MoveTo places a free player. Ignored unless playing and unpaused.
func (e *Engine) MoveTo(x, y float64) {
	if !e.playing() || e.paused || e.cfg.Player.Mode != PlayerFree {
		return
	}
	e.free.MoveTo(x, y)
}

// Hold sets the held movement direction; each axis is clamped to [-1, 1].
func (e *Engine) Hold(dx, dy float64) {
	e.held = core.Vec{X: core.ClampF(dx, -1, 1), Y: core.ClampF(dy, -1, 1)}
	if math.IsNaN(dx) {
		e.held.X = 0
	}
	if math.IsNaN(dy) {
		e.held.Y = 0
	}
}

// PollMovement moves a free player along the held direction.
func (e *Engine) PollMovement(dt float64) {
	if e.held == (core.Vec{}) {
		return
	}
	speed := e.cfg.Player.MoveSpeed * dt
	e.MoveBy(e.held.X*speed, e.held.Y*speed)
}

// MapPointer converts a pointer position inside view (any units) into
// logical field coordinates, clamped to the field.
func (e *Engine) MapPointer(sx, sy float64, view core.Box) core.Vec {
	if view.W <= 0 || view.H <= 0 {
		return e.PlayerBox().Center()
	}
	f := e.cfg.Field
	return core.Vec{
		X: core.ClampF((sx-view.X)/view.W*f.X, 0, f.X),
		Y: core.ClampF((sy-view.Y)/view.H*f.Y, 0, f.Y),
	}
}

// PointAt moves a free player to a pointer position inside view.
func (e *Engine) PointAt(sx, sy float64, view core.Box) {
	p := e.MapPointer(sx, sy, view)
	e.MoveTo(p.X, p.Y)
}

// After schedules fn on simulation time for the current session only.
func (e *Engine) After(ticks float64, fn func()) {
	e.sched.After(ticks, e.session.Generation(), fn)
}

// Step runs one frame callback: the clock turns now into dt, then Tick.
func (e *Engine) Step(now time.Time) StepResult {
	if !e.playing() || e.paused {
		return StepResult{Status: e.session.State()}
	}
	return e.Tick(e.clock.Tick(now))
}

// Tick advances a playing session by dt. The order is: delayed effects,
// held input, spawning, movement, collisions, progression. Once the
// session leaves playing nothing else is mutated.
func (e *Engine) Tick(dt float64) StepResult {
	if !e.playing() || e.paused {
		return StepResult{Status: e.session.State()}
	}
	e.events = e.events[:0]

	e.sched.Advance(dt, e.session.Generation())
	if e.playing() {
		e.PollMovement(dt)
		e.ticks += dt
		e.spawn(dt)
		e.integrate(dt)
		e.collide()
	}
	if e.playing() {
		e.progress(dt)
	}
	return e.result()
}

func (e *Engine) spawn(dt float64) {
	ctx := SpawnContext{Player: e.PlayerBox().Center(), Speed: e.prog.Speed()}
	ctx.Rightmost, ctx.HasRightmost = e.store.Rightmost(CategoryObstacleBad, CategoryObstacleNeutral, CategoryCollectibleGood)
	for _, ent := range e.spawner.TrySpawn(dt, e.prog.Phase(), ctx) {
		e.store.Add(ent)
	}
}

func (e *Engine) integrate(dt float64) {
	if e.cfg.Player.Mode == PlayerJump {
		e.jump.Integrate(dt)
	}
	g := e.cfg.EntityGravity
	e.store.UpdateAll(func(en *Entity) {
		IntegrateEntity(en, dt, g)
	})
}

// collide removes every overlapping entity. Contacts after the one that
// ended the session are removed without effect.
func (e *Engine) collide() {
	for _, c := range e.resolver.Resolve(e.PlayerBox(), e.store) {
		if !e.playing() {
			continue
		}
		switch c.Outcome {
		case OutcomeHit:
			e.hit(c.Entity)
		case OutcomeCollect:
			e.collect(c.Entity)
		case OutcomePowerUp:
			e.powerUp(c.Entity)
		}
	}
}

func (e *Engine) hit(en Entity) {
	e.hits++
	e.resizePlayer()
	e.emit(Event{Kind: EventHit, Entity: en})
	e.sounds.Play(SoundHit)
	if e.cfg.MaxHits > 0 && e.hits >= e.cfg.MaxHits {
		e.end(StatusGameOver)
	}
}

func (e *Engine) collect(en Entity) {
	ch := e.prog.Advance(en.Value)
	e.emit(Event{Kind: EventCollect, Entity: en})
	e.sounds.Play(SoundCollect)
	e.burst(en.Box().Center())
	e.applyChange(ch)
}

func (e *Engine) powerUp(en Entity) {
	e.store.ClearCategories(CategoryObstacleBad, CategoryObstacleNeutral, CategoryCollectibleGood)
	if e.hits > 0 {
		e.hits--
	}
	e.resizePlayer()
	e.spawner.ResetAccumulator()
	e.emit(Event{Kind: EventPowerUp, Entity: en})
	e.sounds.Play(SoundPowerUp)
}

// burst emits a ring of short-lived particles.
func (e *Engine) burst(at core.Vec) {
	n := e.cfg.Burst
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		e.store.Add(Entity{
			Pos:      at,
			Vel:      core.Vec{X: math.Cos(a) * 2, Y: math.Sin(a)*2 - 1},
			W:        1,
			H:        1,
			Category: CategoryParticle,
			TTL:      20,
			Gravity:  true,
		})
	}
}

func (e *Engine) progress(dt float64) {
	e.prog.Tick(dt)
	delta := 0.0
	if e.cfg.Passive != nil {
		delta = e.cfg.Passive(e.hits, e.prog.Speed()) * dt
	}
	e.applyChange(e.prog.Advance(delta))
}

func (e *Engine) applyChange(ch Change) {
	if ch.Announced {
		e.emit(Event{Kind: EventAnnounce, Phase: ch.Phase, Text: e.prog.PhaseLabel(ch.Phase)})
	}
	if ch.PhaseUp {
		e.emit(Event{Kind: EventPhase, Phase: ch.Phase})
		e.sounds.Play(SoundPhase)
	}
	if ch.Won && e.playing() {
		e.end(StatusWin)
	}
}

// end performs the terminal transition and records the result once.
func (e *Engine) end(s Status) {
	if err := e.session.To(s); err != nil {
		return
	}
	e.ended = true
	e.held = core.Vec{}

	value, ok := 0, false
	if e.resultFn != nil {
		value, ok = e.resultFn(e.Snapshot())
	}

	if s == StatusWin {
		e.emit(Event{Kind: EventWin, Value: value})
		e.sounds.Play(SoundWin)
	} else {
		e.emit(Event{Kind: EventGameOver, Value: value})
		e.sounds.Play(SoundGameOver)
	}

	if ok && e.best.Submit(value) {
		e.newBest = true
		e.emit(Event{Kind: EventNewBest, Value: value})
	}
}

// Collect consumes one entity by ID as if the player had touched a
// collectible. Typing games use it for correct answers.
func (e *Engine) Collect(id uint64) (StepResult, bool) {
	if !e.playing() || e.paused {
		return StepResult{Status: e.session.State()}, false
	}
	en, ok := e.store.Get(id)
	if !ok {
		return StepResult{Status: e.session.State()}, false
	}
	e.store.Remove(id)
	e.events = e.events[:0]
	e.collect(en)
	return e.result(), true
}

func (e *Engine) emit(ev Event) {
	e.events = append(e.events, ev)
}

func (e *Engine) result() StepResult {
	r := StepResult{Status: e.session.State(), Ended: e.ended}
	if len(e.events) > 0 {
		r.Events = append([]Event(nil), e.events...)
	}
	e.ended = false
	return r
}

func (e *Engine) resizePlayer() {
	if e.cfg.Player.Mode == PlayerFree {
		e.free.SetHalf(e.playerSize() / 2)
	}
}

func (e *Engine) playerSize() float64 {
	return e.cfg.Player.Size * (1 + e.cfg.Player.Growth*float64(e.hits))
}

// PlayerBox returns the player's collision box before padding.
func (e *Engine) PlayerBox() core.Box {
	p := e.cfg.Player
	switch p.Mode {
	case PlayerJump:
		return core.Box{X: p.X, Y: e.jump.Y, W: p.Size, H: p.Size}
	case PlayerStatic:
		return core.Box{X: p.X, Y: p.Y, W: p.W, H: p.H}
	default:
		return e.free.Box()
	}
}

// Status returns the session status.
func (e *Engine) Status() Status { return e.session.State() }

// Paused reports whether the session is paused.
func (e *Engine) Paused() bool { return e.paused }

// Generation returns the session generation.
func (e *Engine) Generation() uint64 { return e.session.Generation() }

// Hits returns the hit counter.
func (e *Engine) Hits() int { return e.hits }

// Progress returns the progress metric.
func (e *Engine) Progress() float64 { return e.prog.Progress() }

// Phase returns the current phase.
func (e *Engine) Phase() int { return e.prog.Phase() }

// Best returns the best recorded result.
func (e *Engine) Best() (int, bool) { return e.best.Value() }

// Entities returns the live entities in insertion order.
func (e *Engine) Entities() []Entity { return e.store.Items() }

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }

// Snapshot returns the render view of the engine.
func (e *Engine) Snapshot() Snapshot {
	best, has := e.best.Value()
	return Snapshot{
		Status:       e.session.State(),
		Paused:       e.paused,
		Entities:     e.store.Items(),
		Player:       e.PlayerBox(),
		Airborne:     e.jump.Airborne,
		Progress:     e.prog.Progress(),
		Max:          e.prog.Max(),
		Phase:        e.prog.Phase(),
		PhaseName:    e.prog.PhaseName(),
		Hits:         e.hits,
		MaxHits:      e.cfg.MaxHits,
		Speed:        e.prog.Speed(),
		Announcement: e.prog.Announcement(),
		Best:         best,
		HasBest:      has,
		NewBest:      e.newBest,
		Ticks:        e.ticks,
		Generation:   e.session.Generation(),
	}
}
