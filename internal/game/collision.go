package game

import "github.com/vovakirdan/skydash/internal/core"

// Resolution is the outcome of a collision check.
type Resolution struct {
	Alive bool
	Cause DeathCause
}

// CollisionResolver decides whether the flyer survives a tick. It holds no
// state besides the ground line, so Resolve is a pure function of its inputs.
type CollisionResolver struct {
	GroundLine float64
}

// Resolve checks box against the ground and every obstacle. A dead flyer
// stays dead with its original cause. An invulnerable flyer ignores both
// obstacle and ground contact.
func (r CollisionResolver) Resolve(f Flyer, box core.Rect, obstacles []Obstacle, invulnerable bool) Resolution {
	if !f.Alive {
		return Resolution{Alive: false, Cause: f.Cause}
	}
	if invulnerable {
		return Resolution{Alive: true}
	}
	if box.Bottom() >= r.GroundLine {
		return Resolution{Alive: false, Cause: DeathGround}
	}
	for _, o := range obstacles {
		if o.Blocks(box) {
			return Resolution{Alive: false, Cause: DeathObstacle}
		}
	}
	return Resolution{Alive: true}
}
