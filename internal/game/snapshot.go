package game

import (
	"encoding/binary"
	"math"
	"time"

	"github.com/zeebo/xxh3"
)

// Snapshot contains the complete simulation state at a tick boundary.
// Renderers and the achievement toasts read from it; nothing writes back.
type Snapshot struct {
	Tick      uint64
	Elapsed   time.Duration
	Seed      int64
	Flyer     Flyer
	Obstacles []Obstacle
	PowerUps  []PowerUp
	Effects   []ActiveEffect

	Score           int
	Best            int
	SpeedMultiplier float64
	SizeMultiplier  float64
	Invulnerable    bool
	GameOver        bool
	Paused          bool
}

// Snapshot captures the current world state.
func (w *World) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(w.obstacles.Obstacles()))
	copy(obstacles, w.obstacles.Obstacles())

	return Snapshot{
		Tick:            w.tick,
		Elapsed:         w.now,
		Seed:            w.seed,
		Flyer:           w.physics.Flyer(),
		Obstacles:       obstacles,
		PowerUps:        w.powerUps.PowerUps(),
		Effects:         w.powerUps.Effects(),
		Score:           w.score.Score(),
		Best:            w.score.Best(),
		SpeedMultiplier: w.powerUps.SpeedMultiplier(),
		SizeMultiplier:  w.powerUps.SizeMultiplier(),
		Invulnerable:    w.powerUps.IsInvulnerable(),
		GameOver:        w.gameOver,
		Paused:          w.paused,
	}
}

// Hash returns a fingerprint of the snapshot. Two runs with the same seed
// and inputs produce equal hashes at every tick.
func (s Snapshot) Hash() uint64 {
	buf := make([]byte, 0, 256)
	u := func(v uint64) { buf = binary.LittleEndian.AppendUint64(buf, v) }
	f := func(v float64) { u(math.Float64bits(v)) }
	b := func(v bool) {
		if v {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
	}

	u(s.Tick)
	u(uint64(s.Elapsed))
	u(uint64(s.Seed))

	f(s.Flyer.Y)
	f(s.Flyer.Velocity)
	b(s.Flyer.Alive)
	u(uint64(s.Flyer.Cause))

	for _, o := range s.Obstacles {
		f(o.X)
		f(o.GapY)
		f(o.GapHeight)
		b(o.Passed)
	}
	for _, p := range s.PowerUps {
		u(p.ID)
		u(uint64(p.Type))
		f(p.Pos.X())
		f(p.Pos.Y())
	}
	for _, e := range s.Effects {
		u(uint64(e.Type))
		u(uint64(e.Remaining))
	}

	u(uint64(s.Score))
	b(s.GameOver)
	b(s.Paused)

	return xxh3.Hash(buf)
}
