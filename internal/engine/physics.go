package engine

import (
	"math"

	"github.com/vovakirdan/pm-arcade/internal/core"
)

// JumpBody is a player that runs on a ground plane and jumps.
// Y is the top of the player; GroundY is the resting Y.
type JumpBody struct {
	Y        float64
	VY       float64
	Airborne bool

	Gravity     float64
	JumpImpulse float64 // negative is upward
	GroundY     float64
	MaxFall     float64 // zero means unlimited
}

// Land puts the body back on the ground at rest.
func (b *JumpBody) Land() {
	b.Y = b.GroundY
	b.VY = 0
	b.Airborne = false
}

// Jump starts a jump. It is rejected while airborne.
func (b *JumpBody) Jump() bool {
	if b.Airborne {
		return false
	}
	b.VY = b.JumpImpulse
	b.Airborne = true
	return true
}

// Integrate applies vy += g*dt; y += vy*dt and clamps to the ground.
func (b *JumpBody) Integrate(dt float64) {
	if !b.Airborne {
		return
	}
	b.VY += b.Gravity * dt
	if b.MaxFall > 0 && b.VY > b.MaxFall {
		b.VY = b.MaxFall
	}
	b.Y += b.VY * dt
	if b.Y >= b.GroundY {
		b.Land()
	}
}

// FreeBody is a player positioned directly by input. X and Y are the
// centre and always stay within [Half, Field-Half] on both axes.
type FreeBody struct {
	X, Y           float64
	Half           float64
	FieldW, FieldH float64
}

// MoveBy shifts the body and clamps it.
func (b *FreeBody) MoveBy(dx, dy float64) {
	b.X += dx
	b.Y += dy
	b.Clamp()
}

// MoveTo places the body and clamps it.
func (b *FreeBody) MoveTo(x, y float64) {
	b.X, b.Y = x, y
	b.Clamp()
}

// SetHalf changes the half-size and re-clamps, since a grown body may now
// poke past an edge.
func (b *FreeBody) SetHalf(half float64) {
	b.Half = half
	b.Clamp()
}

// Clamp forces the centre into bounds. NaN and infinities are handled;
// a body larger than the field sits at the field centre.
func (b *FreeBody) Clamp() {
	b.X = clampAxis(b.X, b.Half, b.FieldW)
	b.Y = clampAxis(b.Y, b.Half, b.FieldH)
}

// Box returns the body's bounding box.
func (b FreeBody) Box() core.Box {
	return core.BoxAround(b.X, b.Y, 2*b.Half, 2*b.Half)
}

func clampAxis(v, half, size float64) float64 {
	lo, hi := half, size-half
	if lo > hi {
		return size / 2
	}
	if math.IsNaN(v) {
		return lo
	}
	return core.ClampF(v, lo, hi)
}

// IntegrateEntity moves an entity by its velocity. Gravity only applies to
// entities flagged for it, and particles age by dt.
func IntegrateEntity(e *Entity, dt, gravity float64) {
	if e.Gravity {
		e.Vel.Y += gravity * dt
	}
	e.Pos = e.Pos.Add(e.Vel.Scale(dt))
	if e.Category == CategoryParticle {
		e.TTL -= dt
	}
}
