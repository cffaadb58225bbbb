package engine

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// quietSpawn never spawns on its own, so tests control every entity.
func quietSpawn() SpawnConfig {
	return SpawnConfig{Phases: []PhaseSpawn{{Interval: 1e9}}, BadSize: core.Vec{X: 10, Y: 10}}
}

func dodgeConfig() Config {
	return Config{
		Field:   core.Vec{X: 640, Y: 300},
		MarginX: 120,
		MarginY: 60,
		Player: PlayerConfig{
			Mode:      PlayerFree,
			X:         320,
			Y:         150,
			Size:      24,
			Growth:    0.15,
			MoveSpeed: 4,
		},
		Spawn:       quietSpawn(),
		Progression: dodgeProgression(),
		MaxHits:     5,
		BestKey:     "scopeCreepHighScore",
	}
}

func runnerConfig() Config {
	return Config{
		Field:   core.Vec{X: 640, Y: 300},
		MarginX: 120,
		MarginY: 60,
		Player: PlayerConfig{
			Mode:        PlayerJump,
			X:           60,
			Y:           240,
			Size:        40,
			Gravity:     0.6,
			JumpImpulse: -12,
		},
		Spawn:       quietSpawn(),
		Progression: ProgressionConfig{Bands: []float64{200, 400, 600, 800}, BaseSpeed: 6.2, SpeedStep: 0.6, MaxSpeed: 11},
		Padding:     8,
		MaxHits:     3,
	}
}

type recorder struct{ played []Sound }

func (r *recorder) Play(s Sound) { r.played = append(r.played, s) }

func (r *recorder) count(s Sound) int {
	n := 0
	for _, p := range r.played {
		if p == s {
			n++
		}
	}
	return n
}

func TestEngineStartsIdle(t *testing.T) {
	e := New(dodgeConfig())
	if e.Status() != StatusStart {
		t.Fatalf("status = %s, expected start", e.Status())
	}

	res := e.Tick(1)
	if res.Status != StatusStart || len(res.Events) != 0 {
		t.Errorf("ticking before start must do nothing, got %+v", res)
	}
	if e.Reset() {
		t.Error("Reset from start is not an edge")
	}
	if !e.Start() || e.Status() != StatusPlaying {
		t.Error("Start should move to playing")
	}
	if e.Start() {
		t.Error("Start while playing should be ignored")
	}
}

func TestEngineRunnerJumpExample(t *testing.T) {
	snd := &recorder{}
	e := New(runnerConfig(), WithSounds(snd))

	if e.Jump() {
		t.Error("jump before the session starts must be ignored")
	}
	e.Start()

	if !e.Jump() {
		t.Fatal("jump should be accepted on the ground")
	}
	if e.Jump() {
		t.Error("second jump while airborne must be ignored")
	}
	if e.jump.VY != -12 {
		t.Fatalf("initial velocity = %v, expected -12", e.jump.VY)
	}

	for i := 0; i < 10; i++ {
		e.Tick(1)
	}
	if math.Abs(e.jump.VY-(-6)) > 1e-9 {
		t.Errorf("velocity after 10 ticks = %v, expected -6", e.jump.VY)
	}

	for i := 0; i < 40; i++ {
		e.Tick(1)
	}
	snap := e.Snapshot()
	if snap.Airborne || snap.Player.Y != 200 {
		t.Errorf("player should be clamped to y=200 on the ground, got y=%v airborne=%v", snap.Player.Y, snap.Airborne)
	}
	if snd.count(SoundJump) != 1 {
		t.Errorf("expected one jump sound, got %d", snd.count(SoundJump))
	}
}

func TestEngineDodgeGameOverExample(t *testing.T) {
	kv := NewMemoryKV()
	snd := &recorder{}
	e := New(dodgeConfig(), WithKV(kv), WithSounds(snd), WithResult(func(s Snapshot) (int, bool) {
		return core.Max(0, 100-20*s.Hits), true
	}))
	e.Start()
	e.hits = 4
	e.resizePlayer()

	at := e.PlayerBox().Center()
	for i := 0; i < 3; i++ {
		e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryObstacleBad})
	}
	e.store.Add(Entity{Pos: core.Vec{X: 10, Y: 10}, Vel: core.Vec{X: 1}, W: 10, H: 10, Category: CategoryObstacleBad})

	res := e.Tick(1)

	if e.Hits() != 5 {
		t.Errorf("hits = %d, expected 5", e.Hits())
	}
	if res.Status != StatusGameOver || !res.Ended {
		t.Errorf("expected gameover on this tick, got %+v", res)
	}
	if e.Snapshot().Progress != 0 {
		t.Error("progression must not run after the session ended")
	}
	if snd.count(SoundHit) != 1 || snd.count(SoundGameOver) != 1 {
		t.Errorf("sounds = %v", snd.played)
	}
	if v, _ := kv.Get("scopeCreepHighScore"); v != "0" {
		t.Errorf("stored best = %q, expected \"0\"", v)
	}

	before := e.Entities()
	res = e.Tick(1)
	if !reflect.DeepEqual(before, e.Entities()) || len(res.Events) != 0 || res.Ended {
		t.Error("no mutation is allowed once the session has ended")
	}
}

func TestEngineCollectibleClampsAndWins(t *testing.T) {
	e := New(dodgeConfig())
	e.Start()
	e.prog.Advance(97)

	at := e.PlayerBox().Center()
	e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryCollectibleGood, Value: 6})

	res := e.Tick(1)
	if e.Progress() != 100 {
		t.Errorf("progress = %v, expected 100", e.Progress())
	}
	if res.Status != StatusWin || !res.Has(EventWin) || !res.Has(EventCollect) {
		t.Errorf("expected collect and win events, got %+v", res)
	}
}

func TestEnginePowerUp(t *testing.T) {
	snd := &recorder{}
	e := New(dodgeConfig(), WithSounds(snd))
	e.Start()
	e.hits = 2
	e.spawner.acc = 17

	at := e.PlayerBox().Center()
	e.store.Add(Entity{Pos: core.Vec{X: 5, Y: 5}, W: 10, H: 10, Category: CategoryObstacleBad})
	e.store.Add(Entity{Pos: core.Vec{X: 600, Y: 5}, W: 10, H: 10, Category: CategoryCollectibleGood})
	e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryPowerUp})

	res := e.Tick(1)
	if !res.Has(EventPowerUp) {
		t.Fatalf("expected a power-up event, got %+v", res.Events)
	}
	if e.Hits() != 1 {
		t.Errorf("hits = %d, expected 1", e.Hits())
	}
	if n := e.store.Count(CategoryObstacleBad, CategoryCollectibleGood); n != 0 {
		t.Errorf("power-up should clear the field, %d left", n)
	}
	if e.spawner.Accumulator() != 0 {
		t.Errorf("power-up should reset the spawn timer, got %v", e.spawner.Accumulator())
	}
	if snd.count(SoundPowerUp) != 1 {
		t.Error("expected the power-up sound")
	}

	e.hits = 0
	e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryPowerUp})
	e.Tick(1)
	if e.Hits() != 0 {
		t.Errorf("hits must not go below zero, got %d", e.Hits())
	}
}

func TestEnginePlayerGrowsWithHits(t *testing.T) {
	e := New(dodgeConfig())
	e.Start()

	at := e.PlayerBox().Center()
	e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryObstacleBad})
	e.Tick(1)

	if got := e.PlayerBox().W; math.Abs(got-24*1.15) > 1e-9 {
		t.Errorf("player size = %v, expected %v", got, 24*1.15)
	}
}

func TestEngineBoundsClampingFromInput(t *testing.T) {
	e := New(dodgeConfig())
	e.Start()
	view := core.Box{X: 0, Y: 2, W: 80, H: 21}

	inputs := []float64{-1e9, -5, 0, 40, 79, 1e9, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, x := range inputs {
		for _, y := range inputs {
			e.MoveBy(x, y)
			assertPlayerInField(t, e)
			e.MoveTo(x, y)
			assertPlayerInField(t, e)
			e.PointAt(x, y, view)
			assertPlayerInField(t, e)
			e.Hold(x, y)
			e.Tick(1)
			assertPlayerInField(t, e)
		}
	}
}

func assertPlayerInField(t *testing.T, e *Engine) {
	t.Helper()
	b := e.PlayerBox()
	if b.X < -1e-9 || b.Y < -1e-9 || b.Right() > 640+1e-9 || b.Bottom() > 300+1e-9 {
		t.Fatalf("player box %+v left the field", b)
	}
}

func TestEngineMapPointer(t *testing.T) {
	e := New(dodgeConfig())
	view := core.Box{X: 10, Y: 2, W: 64, H: 30}

	tests := []struct {
		sx, sy float64
		want   core.Vec
	}{
		{10, 2, core.Vec{X: 0, Y: 0}},
		{42, 17, core.Vec{X: 320, Y: 150}},
		{74, 32, core.Vec{X: 640, Y: 300}},
		{500, -50, core.Vec{X: 640, Y: 0}},
	}
	for _, tc := range tests {
		got := e.MapPointer(tc.sx, tc.sy, view)
		if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
			t.Errorf("MapPointer(%v, %v) = %v, expected %v", tc.sx, tc.sy, got, tc.want)
		}
	}
}

func TestEngineHeldMovementFrameRateIndependent(t *testing.T) {
	fine := New(dodgeConfig())
	coarse := New(dodgeConfig())
	fine.Start()
	coarse.Start()
	fine.Hold(1, -1)
	coarse.Hold(1, -1)

	for i := 0; i < 6; i++ {
		fine.PollMovement(0.5)
	}
	coarse.PollMovement(3)

	a, b := fine.PlayerBox().Center(), coarse.PlayerBox().Center()
	if math.Abs(a.X-b.X) > 1e-9 || math.Abs(a.Y-b.Y) > 1e-9 {
		t.Errorf("held movement diverges: %v vs %v", a, b)
	}
	if a.X != 332 || a.Y != 138 {
		t.Errorf("moved to %v, expected (332, 138)", a)
	}
}

func TestEngineDeterminism(t *testing.T) {
	cfg := dodgeConfig()
	cfg.Spawn = dodgeSpawn()
	cfg.Spawn.PowerUp = PowerUpSpawn{Enabled: true, MinInterval: 100, MaxInterval: 200, Size: core.Vec{X: 36, Y: 36}, Area: core.Box{X: 50, Y: 30, W: 540, H: 220}}
	cfg.Passive = func(hits int, _ float64) float64 { return math.Max(0.02, 0.06-0.012*float64(hits)) }

	run := func() (Snapshot, []EventKind) {
		e := New(cfg, WithSeed(42))
		e.Start()
		var kinds []EventKind
		for i := 0; i < 3000 && e.Status() == StatusPlaying; i++ {
			switch (i / 40) % 4 {
			case 0:
				e.Hold(1, 0)
			case 1:
				e.Hold(0, 1)
			case 2:
				e.Hold(-1, 0)
			default:
				e.Hold(0, -1)
			}
			for _, ev := range e.Tick(1).Events {
				kinds = append(kinds, ev.Kind)
			}
		}
		return e.Snapshot(), kinds
	}

	s1, k1 := run()
	s2, k2 := run()
	if !reflect.DeepEqual(s1, s2) {
		t.Error("snapshots differ for identical seed and input")
	}
	if !reflect.DeepEqual(k1, k2) {
		t.Error("event streams differ for identical seed and input")
	}
	if len(k1) == 0 {
		t.Error("expected some events over 3000 ticks")
	}
}

func TestEngineBestWrittenOncePerSession(t *testing.T) {
	kv := NewMemoryKV()
	results := []int{3, 5, 2}
	session := 0

	cfg := dodgeConfig()
	cfg.MaxHits = 1
	e := New(cfg, WithKV(kv), WithResult(func(Snapshot) (int, bool) {
		return results[session], true
	}))

	var newBest []bool
	for session = range results {
		e.Start()
		at := e.PlayerBox().Center()
		e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryObstacleBad})
		e.store.Add(Entity{Pos: at, W: 10, H: 10, Category: CategoryObstacleBad})
		res := e.Tick(1)
		newBest = append(newBest, res.Has(EventNewBest))
		e.Tick(1)
	}

	if !reflect.DeepEqual(newBest, []bool{true, true, false}) {
		t.Errorf("new-best flags = %v", newBest)
	}
	if kv.Writes() != 2 {
		t.Errorf("writes = %d, expected 2", kv.Writes())
	}
	if v, _ := e.Best(); v != 5 {
		t.Errorf("best = %d, expected 5", v)
	}
}

func TestEngineResultOptional(t *testing.T) {
	kv := NewMemoryKV()
	cfg := dodgeConfig()
	cfg.MaxHits = 1
	e := New(cfg, WithKV(kv), WithResult(func(Snapshot) (int, bool) { return 0, false }))
	e.Start()
	e.store.Add(Entity{Pos: e.PlayerBox().Center(), W: 10, H: 10, Category: CategoryObstacleBad})

	if res := e.Tick(1); res.Status != StatusGameOver || res.Has(EventNewBest) {
		t.Errorf("unexpected result %+v", res)
	}
	if kv.Writes() != 0 {
		t.Error("sessions without a result must not write")
	}
}

func TestEngineSeededBestSkipsEmptySession(t *testing.T) {
	kv := NewMemoryKV()
	cfg := dodgeConfig()
	cfg.MaxHits = 1
	cfg.BestKey = "best"
	cfg.SeedBest = true
	e := New(cfg, WithKV(kv), WithResult(func(Snapshot) (int, bool) { return 0, true }))
	e.Start()
	e.store.Add(Entity{Pos: e.PlayerBox().Center(), W: 10, H: 10, Category: CategoryObstacleBad})

	if res := e.Tick(1); res.Status != StatusGameOver || res.Has(EventNewBest) {
		t.Errorf("unexpected result %+v", res)
	}
	if _, ok := kv.Get("best"); ok {
		t.Error("a zero result must not beat the seeded best")
	}
}

func TestEngineRestartResetsEverything(t *testing.T) {
	cfg := dodgeConfig()
	cfg.MaxHits = 1
	e := New(cfg)
	e.Start()
	e.MoveBy(100, 50)
	e.store.Add(Entity{Pos: e.PlayerBox().Center(), W: 10, H: 10, Category: CategoryObstacleBad})
	e.store.Add(Entity{Pos: core.Vec{X: 5, Y: 5}, W: 10, H: 10, Category: CategoryObstacleBad})
	e.Tick(1)
	gen := e.Generation()

	if !e.Reset() || e.Status() != StatusStart {
		t.Fatal("terminal sessions reset to start")
	}
	s := e.Snapshot()
	if s.Hits != 0 || s.Progress != 0 || len(s.Entities) != 0 || s.Ticks != 0 {
		t.Errorf("reset left state behind: %+v", s)
	}
	if c := s.Player.Center(); c.X != 320 || c.Y != 150 {
		t.Errorf("player not repositioned: %v", c)
	}
	if e.Generation() == gen {
		t.Error("reset must start a new generation")
	}
}

func TestEngineDelayedEffectsAreSessionScoped(t *testing.T) {
	cfg := dodgeConfig()
	cfg.MaxHits = 1
	e := New(cfg)
	e.Start()

	fired := 0
	e.After(5, func() { fired++ })
	e.Tick(1)

	e.store.Add(Entity{Pos: e.PlayerBox().Center(), W: 10, H: 10, Category: CategoryObstacleBad})
	e.Tick(1)
	e.Start()
	for i := 0; i < 10; i++ {
		e.Tick(1)
	}
	if fired != 0 {
		t.Error("effect scheduled in a previous session fired after restart")
	}

	e.After(2, func() { fired++ })
	e.Tick(1)
	e.Tick(1)
	if fired != 1 {
		t.Errorf("current-session effect fired %d times, expected 1", fired)
	}
}

func TestEnginePause(t *testing.T) {
	e := New(dodgeConfig())
	if e.TogglePause() {
		t.Error("cannot pause before playing")
	}
	e.Start()
	e.TogglePause()

	before := e.Snapshot()
	e.Step(time.Now())
	e.Tick(1)
	if e.Snapshot().Ticks != before.Ticks {
		t.Error("paused engine advanced")
	}

	e.TogglePause()
	now := time.Now()
	e.Step(now)
	if e.Snapshot().Ticks != 1 {
		t.Errorf("first tick after resume should be nominal, ticks=%v", e.Snapshot().Ticks)
	}
	e.Step(now.Add(10 * time.Second))
	if e.Snapshot().Ticks != 1+DefaultMaxDt {
		t.Errorf("long gaps clamp to MaxDt, ticks=%v", e.Snapshot().Ticks)
	}
}

func TestEngineAnnouncesFirstPhase(t *testing.T) {
	e := New(dodgeConfig())
	e.Start()
	res := e.Tick(1)

	if !res.Has(EventAnnounce) || res.Has(EventPhase) {
		t.Errorf("first tick should announce phase 0 without a phase-up, got %+v", res.Events)
	}
	if e.Snapshot().Announcement != "Phase 1: Random Drift" {
		t.Errorf("announcement = %q", e.Snapshot().Announcement)
	}
}

func TestEngineCollectByID(t *testing.T) {
	cfg := dodgeConfig()
	e := New(cfg)

	card := e.store.Add(Entity{Pos: core.Vec{X: 5, Y: 5}, W: 10, H: 10, Category: CategoryObstacleBad, Value: 10})
	if _, ok := e.Collect(card.ID); ok {
		t.Error("collect before start must be ignored")
	}

	e.Start()
	card = e.store.Add(Entity{Pos: core.Vec{X: 5, Y: 5}, W: 10, H: 10, Category: CategoryObstacleBad, Value: 10})
	res, ok := e.Collect(card.ID)
	if !ok || !res.Has(EventCollect) || e.Progress() != 10 {
		t.Errorf("Collect() = %+v, %v; progress %v", res, ok, e.Progress())
	}
	if _, ok := e.Collect(card.ID); ok {
		t.Error("an entity can be collected only once")
	}
}

func TestEngineBurstParticlesExpire(t *testing.T) {
	cfg := dodgeConfig()
	cfg.Burst = 6
	cfg.EntityGravity = 0.2
	e := New(cfg)
	e.Start()
	e.store.Add(Entity{Pos: e.PlayerBox().Center(), W: 10, H: 10, Category: CategoryCollectibleGood, Value: 1})

	e.Tick(1)
	if n := e.store.Count(CategoryParticle); n != 6 {
		t.Fatalf("expected 6 particles, got %d", n)
	}
	for i := 0; i < 25; i++ {
		e.Tick(1)
	}
	if n := e.store.Count(CategoryParticle); n != 0 {
		t.Errorf("particles should expire, %d left", n)
	}
}
