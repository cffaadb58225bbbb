// Package audio plays the games' sound effects as short square-wave beeps.
// The speaker is opened lazily on the first effect; when no audio device is
// available every effect is silently dropped.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/pm-arcade/internal/engine"
)

const sampleRate = beep.SampleRate(44100)

// floor is the gain every beep decays to by the end of its duration.
const floor = 0.01

// Tone is one beep inside an effect.
type Tone struct {
	Freq   float64       // Hz
	Dur    time.Duration // length of the beep
	Volume float64       // starting gain, 0..1
	At     time.Duration // offset from the start of the effect
}

// Effects maps each engine sound to its beeps.
var Effects = map[engine.Sound][]Tone{
	engine.SoundDeal:    {{440, 50 * time.Millisecond, 0.08, 0}},
	engine.SoundIterate: {{500, 80 * time.Millisecond, 0.08, 0}},
	engine.SoundShipIt: {
		{600, 60 * time.Millisecond, 0.08, 0},
		{800, 80 * time.Millisecond, 0.08, 50 * time.Millisecond},
	},
	engine.SoundWin: {
		{523, 120 * time.Millisecond, 0.1, 0},
		{659, 120 * time.Millisecond, 0.1, 100 * time.Millisecond},
		{784, 120 * time.Millisecond, 0.1, 200 * time.Millisecond},
		{1047, 300 * time.Millisecond, 0.12, 300 * time.Millisecond},
	},
	engine.SoundLose: {
		{400, 150 * time.Millisecond, 0.1, 0},
		{300, 150 * time.Millisecond, 0.1, 150 * time.Millisecond},
		{200, 200 * time.Millisecond, 0.08, 300 * time.Millisecond},
	},
	engine.SoundGameOver: {
		{400, 150 * time.Millisecond, 0.1, 0},
		{300, 150 * time.Millisecond, 0.1, 150 * time.Millisecond},
		{200, 200 * time.Millisecond, 0.08, 300 * time.Millisecond},
	},
	engine.SoundUnicorn: {
		{523, 100 * time.Millisecond, 0.1, 0},
		{659, 100 * time.Millisecond, 0.1, 80 * time.Millisecond},
		{784, 100 * time.Millisecond, 0.1, 160 * time.Millisecond},
		{1047, 250 * time.Millisecond, 0.12, 240 * time.Millisecond},
	},
	engine.SoundBust: {{200, 200 * time.Millisecond, 0.1, 0}},
	engine.SoundHit: {
		{300, 150 * time.Millisecond, 0.1, 0},
		{200, 150 * time.Millisecond, 0.08, 100 * time.Millisecond},
	},
	engine.SoundCollect: {
		{659, 80 * time.Millisecond, 0.08, 0},
		{784, 80 * time.Millisecond, 0.08, 60 * time.Millisecond},
		{1047, 120 * time.Millisecond, 0.1, 120 * time.Millisecond},
	},
	engine.SoundPowerUp: {
		{523, 100 * time.Millisecond, 0.08, 0},
		{784, 100 * time.Millisecond, 0.08, 80 * time.Millisecond},
		{1047, 150 * time.Millisecond, 0.1, 160 * time.Millisecond},
	},
	engine.SoundPhase: {
		{440, 80 * time.Millisecond, 0.08, 0},
		{660, 120 * time.Millisecond, 0.08, 90 * time.Millisecond},
	},
	engine.SoundJump: {{350, 60 * time.Millisecond, 0.06, 0}},
}

// Length is the time from the start of the effect to the end of its last beep.
func Length(tones []Tone) time.Duration {
	var end time.Duration
	for _, t := range tones {
		end = max(end, t.At+t.Dur)
	}
	return end
}

// Stream renders an effect. It returns nil for unknown sounds.
func Stream(s engine.Sound) beep.Streamer {
	tones, ok := Effects[s]
	if !ok || len(tones) == 0 {
		return nil
	}
	mix := &beep.Mixer{}
	for _, t := range tones {
		b := beepStream(t)
		if b == nil {
			continue
		}
		mix.Add(beep.Seq(beep.Silence(sampleRate.N(t.At)), b))
	}
	// The mixer never ends on its own.
	return beep.Take(sampleRate.N(Length(tones)), mix)
}

func beepStream(t Tone) beep.Streamer {
	if t.Freq <= 0 || t.Dur <= 0 {
		return nil
	}
	n := sampleRate.N(t.Dur)
	return &decay{
		Streamer: beep.Take(n, &square{step: t.Freq / float64(sampleRate)}),
		total:    n,
		volume:   t.Volume,
	}
}

// square is an endless square wave oscillator.
type square struct {
	phase float64
	step  float64
}

func (o *square) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := 1.0
		if o.phase >= 0.5 {
			v = -1.0
		}
		samples[i][0] = v
		samples[i][1] = v
		o.phase += o.step
		o.phase -= math.Floor(o.phase)
	}
	return len(samples), true
}

func (o *square) Err() error { return nil }

// decay ramps the gain exponentially from volume down to floor.
type decay struct {
	beep.Streamer
	pos    int
	total  int
	volume float64
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := range n {
		g := d.gain(d.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}

func (d *decay) gain(pos int) float64 {
	if d.total <= 0 || d.volume <= floor {
		return d.volume
	}
	frac := float64(pos) / float64(d.total)
	return d.volume * math.Pow(floor/d.volume, frac)
}

// Player plays effects through the system speaker.
type Player struct {
	mu     sync.Mutex
	muted  bool
	logger *log.Logger
}

// Option configures a Player.
type Option func(*Player)

// WithMute drops every effect.
func WithMute(muted bool) Option {
	return func(p *Player) { p.muted = muted }
}

// WithLogger reports a failed speaker init at warn level.
func WithLogger(l *log.Logger) Option {
	return func(p *Player) { p.logger = l }
}

// New creates a Player. The speaker is not touched until the first Play.
func New(opts ...Option) *Player {
	p := &Player{}
	for _, o := range opts {
		o(p)
	}
	return p
}

var _ engine.SoundPlayer = (*Player)(nil)

// The speaker is process-wide; one mixer feeds it for every Player.
var (
	speakerOnce sync.Once
	speakerErr  error
	output      = &beep.Mixer{}

	// openSpeaker is swapped in tests.
	openSpeaker = func() error {
		if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
			return err
		}
		speaker.Play(output)
		return nil
	}
	enqueue = func(s beep.Streamer) {
		speaker.Lock()
		output.Add(s)
		speaker.Unlock()
	}
)

func ready(logger *log.Logger) bool {
	speakerOnce.Do(func() {
		speakerErr = openSpeaker()
		if speakerErr != nil && logger != nil {
			logger.Warn("audio disabled", "err", speakerErr)
		}
	})
	return speakerErr == nil
}

// Play starts the effect and returns immediately.
func (p *Player) Play(s engine.Sound) {
	p.mu.Lock()
	muted := p.muted
	p.mu.Unlock()
	if muted {
		return
	}
	stream := Stream(s)
	if stream == nil || !ready(p.logger) {
		return
	}
	enqueue(stream)
}

// SetMuted toggles output at runtime.
func (p *Player) SetMuted(m bool) {
	p.mu.Lock()
	p.muted = m
	p.mu.Unlock()
}

// Muted reports whether effects are dropped.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}
