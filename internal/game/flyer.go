// Package game implements the side-scrolling flyer simulation: flyer physics,
// the obstacle field, timed power-ups, collision resolution, scoring and the
// per-tick orchestration that ties them together.
package game

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/skydash/internal/core"
)

// referenceFrame is the frame length per-frame constants are tuned for.
const referenceFrame = time.Second / 60

// normalize converts a frame time into reference frames.
func normalize(dt time.Duration) float64 {
	return float64(dt) / float64(referenceFrame)
}

// DeathCause records what ended a run.
type DeathCause int

const (
	DeathNone DeathCause = iota
	DeathGround
	DeathObstacle
)

// String returns a human-readable name for the cause.
func (c DeathCause) String() string {
	switch c {
	case DeathNone:
		return "none"
	case DeathGround:
		return "ground"
	case DeathObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Flyer is the controllable entity. Y is the top of its baseline hitbox.
type Flyer struct {
	X, Y     float64
	Velocity float64
	Alive    bool
	Size     float64
	Cause    DeathCause
}

// FlyerPhysics integrates gravity and velocity for the flyer and detects
// boundary death.
type FlyerPhysics struct {
	flyer      Flyer
	startY     float64
	groundLine float64
	maxFall    float64
}

// NewFlyerPhysics creates a flyer at (x, startY). groundLine is the y
// coordinate of the ground surface.
func NewFlyerPhysics(x, startY, size, groundLine, maxFall float64) *FlyerPhysics {
	p := &FlyerPhysics{
		flyer:      Flyer{X: x, Size: size},
		startY:     startY,
		groundLine: groundLine,
		maxFall:    maxFall,
	}
	p.Reset()
	return p
}

// Reset places the flyer back at its start position, alive and at rest.
func (p *FlyerPhysics) Reset() {
	p.flyer.Y = p.startY
	p.flyer.Velocity = 0
	p.flyer.Alive = true
	p.flyer.Cause = DeathNone
}

// Flap overwrites the vertical velocity with jumpForce. It is deliberately
// not additive. Returns false when the flyer is dead.
func (p *FlyerPhysics) Flap(jumpForce float64) bool {
	if !p.flyer.Alive {
		return false
	}
	p.flyer.Velocity = jumpForce
	return true
}

// Step advances the flyer by n reference frames under gravity.
// Touching the ceiling stops the flyer; touching the ground kills it unless
// invulnerable. Returns true if the flyer is resting on the ground.
func (p *FlyerPhysics) Step(n, gravity float64, invulnerable bool) bool {
	f := &p.flyer

	f.Velocity += gravity * n
	if f.Velocity > p.maxFall {
		f.Velocity = p.maxFall
	}
	f.Y += f.Velocity * n

	if f.Y < 0 {
		f.Y = 0
		f.Velocity = 0
	}

	if f.Y+f.Size > p.groundLine {
		f.Y = p.groundLine - f.Size
		f.Velocity = 0
		if f.Alive && !invulnerable {
			p.Kill(DeathGround)
		}
		return true
	}
	return false
}

// Kill is the one-shot terminal transition. Later calls keep the first cause.
func (p *FlyerPhysics) Kill(cause DeathCause) {
	if !p.flyer.Alive {
		return
	}
	p.flyer.Alive = false
	p.flyer.Cause = cause
}

// Flyer returns a copy of the flyer state.
func (p *FlyerPhysics) Flyer() Flyer {
	return p.flyer
}

// Center returns the center of the flyer's baseline hitbox.
func (p *FlyerPhysics) Center() mgl64.Vec2 {
	half := p.flyer.Size / 2
	return mgl64.Vec2{p.flyer.X + half, p.flyer.Y + half}
}

// Box returns the effective hitbox, scaled by sizeMultiplier around the
// flyer's center.
func (p *FlyerPhysics) Box(sizeMultiplier float64) core.Rect {
	size := p.flyer.Size * sizeMultiplier
	c := p.Center()
	return core.NewRect(c.X()-size/2, c.Y()-size/2, size, size)
}

// GroundLine returns the y coordinate of the ground surface.
func (p *FlyerPhysics) GroundLine() float64 {
	return p.groundLine
}
