package game

import (
	"math/rand"
	"sort"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
)

// PowerUp is a collectible floating through the play field. Pos is its center.
type PowerUp struct {
	ID        uint64
	Type      core.PowerUpType
	Pos       mgl64.Vec2
	SpawnedAt time.Duration
	Collected bool
}

// ActiveEffect is a timed effect applied to the flyer. Remaining never
// exceeds Max.
type ActiveEffect struct {
	Type      core.PowerUpType
	Remaining time.Duration
	Max       time.Duration
	StartedAt time.Duration
}

// Fraction returns the share of the effect still left, in [0, 1].
func (e ActiveEffect) Fraction() float64 {
	if e.Max <= 0 {
		return 0
	}
	return core.ClampF(float64(e.Remaining)/float64(e.Max), 0, 1)
}

// PowerUpManager owns collectibles and active effects. At most one effect per
// type is active; collecting a type that is already active restarts its
// timer rather than stacking.
type PowerUpManager struct {
	cfg      config.PowerUps
	rng      *rand.Rand
	powerUps []PowerUp
	effects  map[core.PowerUpType]*ActiveEffect

	nextID    uint64
	lastSpawn time.Duration

	canvasW    float64
	groundLine float64
}

// NewPowerUpManager creates a manager with its own seeded RNG.
func NewPowerUpManager(seed int64, canvasW, groundLine float64, cfg config.PowerUps) *PowerUpManager {
	m := &PowerUpManager{
		cfg:        cfg,
		canvasW:    canvasW,
		groundLine: groundLine,
	}
	m.Reset(seed)
	return m
}

// Reset removes all collectibles and effects and reseeds the RNG.
func (m *PowerUpManager) Reset(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
	m.powerUps = m.powerUps[:0]
	m.effects = make(map[core.PowerUpType]*ActiveEffect, int(core.PowerUpCount))
	m.nextID = 0
	m.lastSpawn = 0
}

// Update runs spawn gating, movement, despawn and magnet pull for one tick.
// now is the session clock after this tick's dt was added; obstacleSpeed is
// the unmodified scroll speed per reference frame.
func (m *PowerUpManager) Update(now time.Duration, n, obstacleSpeed float64, flyerCenter mgl64.Vec2) []PowerUp {
	var spawned []PowerUp
	if p, ok := m.trySpawn(now); ok {
		spawned = append(spawned, p)
	}

	dx := obstacleSpeed * n * m.SpeedMultiplier()
	for i := range m.powerUps {
		m.powerUps[i].Pos[0] -= dx
	}

	kept := m.powerUps[:0]
	for _, p := range m.powerUps {
		if p.Collected || now-p.SpawnedAt >= m.cfg.DespawnTime || p.Pos.X()+m.cfg.Size/2 < 0 {
			continue
		}
		kept = append(kept, p)
	}
	m.powerUps = kept

	if m.HasEffect(core.PowerUpMagnet) {
		m.pull(n, flyerCenter)
	}

	return spawned
}

func (m *PowerUpManager) trySpawn(now time.Duration) (PowerUp, bool) {
	if len(m.powerUps) >= m.cfg.MaxActive {
		return PowerUp{}, false
	}
	if now-m.lastSpawn < m.cfg.MinSpawnInterval {
		return PowerUp{}, false
	}
	if m.rng.Float64() >= m.cfg.SpawnChance {
		return PowerUp{}, false
	}

	t := m.rollType()
	half := m.cfg.Size / 2
	minY := half
	maxY := m.groundLine - half
	if maxY < minY {
		maxY = minY
	}

	m.nextID++
	p := PowerUp{
		ID:        m.nextID,
		Type:      t,
		Pos:       mgl64.Vec2{m.canvasW + half, minY + m.rng.Float64()*(maxY-minY)},
		SpawnedAt: now,
	}
	m.powerUps = append(m.powerUps, p)
	m.lastSpawn = now
	return p, true
}

// rollType draws a type with probability proportional to its weight.
func (m *PowerUpManager) rollType() core.PowerUpType {
	types := core.AllPowerUpTypes()
	total := 0.0
	for _, t := range types {
		total += m.cfg.Effect(t).Weight
	}

	roll := m.rng.Float64() * total
	for _, t := range types {
		w := m.cfg.Effect(t).Weight
		if roll < w {
			return t
		}
		roll -= w
	}

	// Float rounding can leave roll just above the last bucket
	for i := len(types) - 1; i >= 0; i-- {
		if m.cfg.Effect(types[i]).Weight > 0 {
			return types[i]
		}
	}
	return types[0]
}

// pull moves power-ups inside the magnet radius toward the flyer without
// overshooting it.
func (m *PowerUpManager) pull(n float64, target mgl64.Vec2) {
	step := m.cfg.Magnet.Strength * n
	if m.cfg.MagnetFollowsSlowMo {
		step *= m.SpeedMultiplier()
	}

	for i := range m.powerUps {
		p := &m.powerUps[i]
		delta := target.Sub(p.Pos)
		dist := delta.Len()
		if dist == 0 || dist > m.cfg.Magnet.Radius {
			continue
		}
		if step >= dist {
			p.Pos = target
			continue
		}
		p.Pos = p.Pos.Add(delta.Mul(step / dist))
	}
}

// Collect activates every power-up within the collection radius of the
// flyer and removes it from play. When view is non-nil, distances are
// measured against the positions in view instead of the live ones.
func (m *PowerUpManager) Collect(flyerCenter mgl64.Vec2, now time.Duration, view []PowerUp) []PowerUp {
	if view == nil {
		view = m.powerUps
	}

	hit := make(map[uint64]bool)
	for _, p := range view {
		if !p.Collected && p.Pos.Sub(flyerCenter).Len() <= m.cfg.CollectRadius {
			hit[p.ID] = true
		}
	}
	if len(hit) == 0 {
		return nil
	}

	var collected []PowerUp
	kept := m.powerUps[:0]
	for _, p := range m.powerUps {
		if hit[p.ID] {
			p.Collected = true
			collected = append(collected, p)
			m.Activate(p.Type, now)
			continue
		}
		kept = append(kept, p)
	}
	m.powerUps = kept
	return collected
}

// Activate starts the effect for t, or restarts it at full duration when
// it is already running.
func (m *PowerUpManager) Activate(t core.PowerUpType, now time.Duration) {
	d := m.cfg.Effect(t).Duration
	m.effects[t] = &ActiveEffect{
		Type:      t,
		Remaining: d,
		Max:       d,
		StartedAt: now,
	}
}

// Decay reduces every effect by dt scaled by the current speed multiplier
// and removes those that ran out. Returns the expired types in type order.
func (m *PowerUpManager) Decay(dt time.Duration) []core.PowerUpType {
	scaled := time.Duration(float64(dt) * m.SpeedMultiplier())

	var expired []core.PowerUpType
	for _, t := range core.AllPowerUpTypes() {
		e, ok := m.effects[t]
		if !ok {
			continue
		}
		e.Remaining -= scaled
		if e.Remaining <= 0 {
			delete(m.effects, t)
			expired = append(expired, t)
		}
	}
	return expired
}

// HasEffect reports whether an effect of type t is active.
func (m *PowerUpManager) HasEffect(t core.PowerUpType) bool {
	_, ok := m.effects[t]
	return ok
}

// SpeedMultiplier returns the factor applied to scrolling and effect decay.
func (m *PowerUpManager) SpeedMultiplier() float64 {
	if m.HasEffect(core.PowerUpSlowMo) {
		return m.cfg.SlowMo.SpeedMultiplier
	}
	return 1
}

// SizeMultiplier returns the factor applied to the flyer's hitbox.
func (m *PowerUpManager) SizeMultiplier() float64 {
	if m.HasEffect(core.PowerUpTiny) {
		return m.cfg.Tiny.SizeMultiplier
	}
	return 1
}

// IsInvulnerable reports whether collisions are currently ignored.
func (m *PowerUpManager) IsInvulnerable() bool {
	return m.HasEffect(core.PowerUpShield)
}

// ActiveTypes returns the active effect types in type order.
func (m *PowerUpManager) ActiveTypes() []core.PowerUpType {
	types := make([]core.PowerUpType, 0, len(m.effects))
	for t := range m.effects {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Effects returns copies of the active effects in type order.
func (m *PowerUpManager) Effects() []ActiveEffect {
	out := make([]ActiveEffect, 0, len(m.effects))
	for _, t := range m.ActiveTypes() {
		out = append(out, *m.effects[t])
	}
	return out
}

// Effect returns the active effect of type t.
func (m *PowerUpManager) Effect(t core.PowerUpType) (ActiveEffect, bool) {
	e, ok := m.effects[t]
	if !ok {
		return ActiveEffect{}, false
	}
	return *e, true
}

// PowerUps returns a copy of the collectibles in play.
func (m *PowerUpManager) PowerUps() []PowerUp {
	out := make([]PowerUp, len(m.powerUps))
	copy(out, m.powerUps)
	return out
}

// Place adds a collectible at pos, bypassing spawn gating.
func (m *PowerUpManager) Place(t core.PowerUpType, pos mgl64.Vec2, now time.Duration) PowerUp {
	m.nextID++
	p := PowerUp{ID: m.nextID, Type: t, Pos: pos, SpawnedAt: now}
	m.powerUps = append(m.powerUps, p)
	return p
}
