// Package engine implements the shared arcade simulation loop: a normalized
// clock, an entity store, a phase-driven spawner, simple kinematics, an AABB
// collision resolver, difficulty progression and the session state machine.
//
// Every game variant configures one Engine instead of carrying its own loop.
// The package never renders, logs or touches the terminal; callers read a
// Snapshot and react to the Events returned by each tick.
package engine

import "time"

// Frame timing defaults. One "tick" of dt=1 corresponds to one 60 Hz frame.
const (
	DefaultFrameInterval = 16670 * time.Microsecond
	DefaultMaxDt         = 3.0
)

// Clock converts wall-clock frame callbacks into a dimensionless delta
// multiplier so that simulation speed does not depend on the frame rate.
type Clock struct {
	FrameInterval time.Duration
	MaxDt         float64

	prev    time.Time
	started bool
}

// NewClock creates a clock with the default 60 Hz frame interval.
func NewClock() *Clock {
	return &Clock{FrameInterval: DefaultFrameInterval, MaxDt: DefaultMaxDt}
}

// Reset forgets the previous timestamp; the next Tick returns 1.
func (c *Clock) Reset() {
	c.prev = time.Time{}
	c.started = false
}

// Tick returns clamp((now-prev)/FrameInterval, 0, MaxDt) and stores now.
// The first tick after Reset returns 1, as does a zero timestamp.
func (c *Clock) Tick(now time.Time) float64 {
	if now.IsZero() {
		return 1
	}
	if !c.started {
		c.prev = now
		c.started = true
		return 1
	}

	interval := c.FrameInterval
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	maxDt := c.MaxDt
	if maxDt <= 0 {
		maxDt = DefaultMaxDt
	}

	dt := float64(now.Sub(c.prev)) / float64(interval)
	c.prev = now

	if dt < 0 {
		return 0
	}
	if dt > maxDt {
		return maxDt
	}
	return dt
}

// Ticks converts a wall-clock duration into nominal frame ticks.
func Ticks(d time.Duration) float64 {
	return float64(d) / float64(DefaultFrameInterval)
}
