package game

import (
	"math"
	"testing"

	"github.com/vovakirdan/skydash/internal/core"
)

func TestFlapOverwritesVelocity(t *testing.T) {
	p := NewFlyerPhysics(10, 10, 2, 22, 3)

	p.Flap(-1.8)
	p.Flap(-1.8)
	if got := p.Flyer().Velocity; got != -1.8 {
		t.Errorf("double flap velocity = %v, expected -1.8", got)
	}

	p.flyer.Velocity = 2.5
	p.Flap(-1.8)
	if got := p.Flyer().Velocity; got != -1.8 {
		t.Errorf("flap while falling velocity = %v, expected -1.8", got)
	}
}

func TestFlapIgnoredWhenDead(t *testing.T) {
	p := NewFlyerPhysics(10, 10, 2, 22, 3)
	p.Kill(DeathObstacle)
	if p.Flap(-1.8) {
		t.Error("Flap() should fail for a dead flyer")
	}
}

func TestGravityRespectsTerminalVelocity(t *testing.T) {
	p := NewFlyerPhysics(10, 0, 2, 1000, 3)
	for i := 0; i < 100; i++ {
		p.Step(1, 0.25, false)
	}
	if got := p.Flyer().Velocity; got != 3 {
		t.Errorf("velocity = %v, expected terminal velocity 3", got)
	}
}

func TestCeilingStopsFlyer(t *testing.T) {
	p := NewFlyerPhysics(10, 0.5, 2, 22, 3)
	p.Flap(-1.8)
	p.Step(1, 0.25, false)

	f := p.Flyer()
	if f.Y != 0 || f.Velocity != 0 {
		t.Errorf("after hitting ceiling y=%v vel=%v, expected 0 and 0", f.Y, f.Velocity)
	}
	if !f.Alive {
		t.Error("ceiling contact should not kill")
	}
}

func TestGroundKillsUnlessInvulnerable(t *testing.T) {
	p := NewFlyerPhysics(10, 19.5, 2, 22, 3)
	p.flyer.Velocity = 3
	if !p.Step(1, 0.25, true) {
		t.Error("Step() should report ground contact")
	}
	if !p.Flyer().Alive {
		t.Error("invulnerable flyer should survive the ground")
	}
	if got := p.Flyer().Y; got != 20 {
		t.Errorf("y = %v, expected to rest at 20", got)
	}

	p.Step(1, 0.25, false)
	f := p.Flyer()
	if f.Alive || f.Cause != DeathGround {
		t.Errorf("flyer should die on the ground, alive=%v cause=%v", f.Alive, f.Cause)
	}
}

func TestKillKeepsFirstCause(t *testing.T) {
	p := NewFlyerPhysics(10, 10, 2, 22, 3)
	p.Kill(DeathObstacle)
	p.Kill(DeathGround)
	if got := p.Flyer().Cause; got != DeathObstacle {
		t.Errorf("cause = %v, expected obstacle", got)
	}
}

func TestBoxScalesAroundCenter(t *testing.T) {
	p := NewFlyerPhysics(10, 10, 2, 22, 3)
	full := p.Box(1)
	tiny := p.Box(0.5)

	fx, fy := full.Center()
	tx, ty := tiny.Center()
	if math.Abs(fx-tx) > 1e-9 || math.Abs(fy-ty) > 1e-9 {
		t.Errorf("scaled box center moved: (%v,%v) vs (%v,%v)", fx, fy, tx, ty)
	}
	if tiny.W != 1 || tiny.H != 1 {
		t.Errorf("tiny box = %vx%v, expected 1x1", tiny.W, tiny.H)
	}
}

func TestResolve(t *testing.T) {
	r := CollisionResolver{GroundLine: 22}
	wall := []Obstacle{{X: 9, Width: 5, GapY: 12, GapHeight: 6}}
	alive := Flyer{X: 10, Y: 5, Size: 2, Alive: true}
	box := core.NewRect(10, 5, 2, 2)

	tests := []struct {
		name         string
		flyer        Flyer
		box          core.Rect
		obstacles    []Obstacle
		invulnerable bool
		want         Resolution
	}{
		{"clear", alive, core.NewRect(10, 13, 2, 2), wall, false, Resolution{Alive: true}},
		{"obstacle", alive, box, wall, false, Resolution{Alive: false, Cause: DeathObstacle}},
		{"shielded obstacle", alive, box, wall, true, Resolution{Alive: true}},
		{"ground", alive, core.NewRect(10, 20, 2, 2), nil, false, Resolution{Alive: false, Cause: DeathGround}},
		{"shielded ground", alive, core.NewRect(10, 20, 2, 2), nil, true, Resolution{Alive: true}},
		{"already dead", Flyer{Alive: false, Cause: DeathGround}, box, nil, true, Resolution{Alive: false, Cause: DeathGround}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Resolve(tc.flyer, tc.box, tc.obstacles, tc.invulnerable); got != tc.want {
				t.Errorf("Resolve() = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestScoreKeeper(t *testing.T) {
	var s ScoreKeeper
	s.Add(2)
	s.Add(0)
	s.Add(-3)
	if s.Score() != 2 {
		t.Errorf("score = %d, expected 2", s.Score())
	}
	s.Reset()
	s.Add(1)
	if s.Score() != 1 || s.Best() != 2 {
		t.Errorf("after reset score=%d best=%d, expected 1 and 2", s.Score(), s.Best())
	}
}
