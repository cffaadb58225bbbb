package engine

import (
	"fmt"
	"math"
)

// ProgressionConfig describes the progress scale and its difficulty bands.
type ProgressionConfig struct {
	Max        float64   // win threshold; zero means endless
	Bands      []float64 // ascending progress thresholds, one per phase after the first
	PhaseNames []string

	BaseSpeed float64
	SpeedStep float64 // speed added per phase
	MaxSpeed  float64 // zero means uncapped

	AnnounceTicks float64 // how long a phase announcement stays visible
}

// Change reports what a progress update caused.
type Change struct {
	Phase     int
	PhaseUp   bool // phase increased
	Announced bool // a new announcement started
	Won       bool // progress reached Max for the first time
}

// Progression tracks the progress metric and derives phase and speed.
type Progression struct {
	cfg ProgressionConfig

	progress  float64
	phase     int
	started   bool
	won       bool
	announce  string
	announceT float64
}

// NewProgression creates a progression at zero.
func NewProgression(cfg ProgressionConfig) *Progression {
	return &Progression{cfg: cfg}
}

// Reset returns to zero progress, phase 0, no announcement.
func (p *Progression) Reset() {
	p.progress = 0
	p.phase = 0
	p.started = false
	p.won = false
	p.announce = ""
	p.announceT = 0
}

// PhaseFor returns the number of band thresholds at or below progress.
func (p *Progression) PhaseFor(progress float64) int {
	n := 0
	for _, b := range p.cfg.Bands {
		if progress >= b {
			n++
		}
	}
	return n
}

// Advance adds delta to progress, clamped to [0, Max]. The phase only
// ever moves up; the first call of a session announces phase 0.
func (p *Progression) Advance(delta float64) Change {
	if !math.IsNaN(delta) {
		p.progress = math.Max(p.progress+delta, 0)
	}
	if p.cfg.Max > 0 && p.progress > p.cfg.Max {
		p.progress = p.cfg.Max
	}

	ch := Change{Phase: p.phase}
	if !p.started {
		p.started = true
		p.startAnnouncement()
		ch.Announced = true
	}

	if next := p.PhaseFor(p.progress); next > p.phase {
		p.phase = next
		p.startAnnouncement()
		ch.Phase = next
		ch.PhaseUp = true
		ch.Announced = true
	}

	if p.cfg.Max > 0 && !p.won && p.progress >= p.cfg.Max {
		p.won = true
		ch.Won = true
	}
	return ch
}

// Tick ages the current announcement by dt.
func (p *Progression) Tick(dt float64) {
	if p.announce == "" {
		return
	}
	p.announceT -= dt
	if p.announceT <= 0 {
		p.announce = ""
		p.announceT = 0
	}
}

func (p *Progression) startAnnouncement() {
	if p.cfg.AnnounceTicks <= 0 {
		return
	}
	p.announce = p.PhaseLabel(p.phase)
	p.announceT = p.cfg.AnnounceTicks
}

// PhaseLabel formats the announcement text for a phase, e.g. "Phase 2: Stream Waves".
func (p *Progression) PhaseLabel(phase int) string {
	if phase >= 0 && phase < len(p.cfg.PhaseNames) {
		return fmt.Sprintf("Phase %d: %s", phase+1, p.cfg.PhaseNames[phase])
	}
	return fmt.Sprintf("Phase %d", phase+1)
}

// PhaseName returns the configured name of the current phase, if any.
func (p *Progression) PhaseName() string {
	if p.phase < len(p.cfg.PhaseNames) {
		return p.cfg.PhaseNames[p.phase]
	}
	return ""
}

// Speed returns BaseSpeed + SpeedStep*phase, capped at MaxSpeed.
func (p *Progression) Speed() float64 {
	s := p.cfg.BaseSpeed + p.cfg.SpeedStep*float64(p.phase)
	if p.cfg.MaxSpeed > 0 && s > p.cfg.MaxSpeed {
		s = p.cfg.MaxSpeed
	}
	return s
}

// Progress returns the current progress.
func (p *Progression) Progress() float64 { return p.progress }

// Max returns the win threshold.
func (p *Progression) Max() float64 { return p.cfg.Max }

// Phase returns the current phase index.
func (p *Progression) Phase() int { return p.phase }

// Won reports whether Max has been reached this session.
func (p *Progression) Won() bool { return p.won }

// Announcement returns the visible announcement text, or "".
func (p *Progression) Announcement() string { return p.announce }
