package game

import (
	"time"

	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
)

// Tracker receives progress signals from the simulation. The achievement
// engine implements it; a nil Tracker disables tracking.
type Tracker interface {
	StartSession()
	UpdateScore(score int)
	CollectPowerUp(t core.PowerUpType)
	TrackCloseCall()
	TrackRapidFlap()
	TrackPowerUpCombo(active []core.PowerUpType)
	EndSession(finalScore int)
}

// State is the coarse run state exposed to the platform.
type State struct {
	Score    int
	Best     int
	GameOver bool
	Paused   bool
}

// StepResult holds the state after a step and the events it produced.
type StepResult struct {
	State  State
	Events []Event
}

// World owns every simulation component and advances them in a fixed order
// each tick: flap, flyer physics, power-ups and collection, obstacles,
// collision, scoring, achievement signals, effect decay.
type World struct {
	cfg config.Config

	canvasW    float64
	canvasH    float64
	groundLine float64
	seed       int64

	physics    *FlyerPhysics
	obstacles  *ObstacleField
	powerUps   *PowerUpManager
	resolver   CollisionResolver
	score      ScoreKeeper
	difficulty *config.DifficultyManager
	tracker    Tracker

	now       time.Duration
	tick      uint64
	flapTimes []time.Duration

	gameOver      bool
	paused        bool
	sessionActive bool
}

// NewWorld builds a world for cfg. Non-zero screen dimensions in rt replace
// the configured canvas size. Call Reset to begin a session.
func NewWorld(cfg config.Config, rt core.RuntimeConfig, tracker Tracker) *World {
	w := &World{
		cfg:        cfg,
		canvasW:    cfg.Canvas.Width,
		canvasH:    cfg.Canvas.Height,
		seed:       rt.Seed,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		tracker:    tracker,
	}
	if rt.ScreenW > 0 {
		w.canvasW = float64(rt.ScreenW)
	}
	if rt.ScreenH > 0 {
		w.canvasH = float64(rt.ScreenH)
	}
	w.groundLine = w.canvasH - cfg.Canvas.GroundHeight
	w.resolver = CollisionResolver{GroundLine: w.groundLine}

	startY := w.groundLine/2 - cfg.Flyer.Size/2
	w.physics = NewFlyerPhysics(cfg.Flyer.X, startY, cfg.Flyer.Size, w.groundLine, cfg.Physics.MaxFallSpeed)
	w.obstacles = NewObstacleField(w.seed, w.canvasW, w.groundLine, cfg.Obstacles, w.difficulty)
	w.powerUps = NewPowerUpManager(w.seed+1, w.canvasW, w.groundLine, cfg.PowerUps)
	return w
}

// Reset starts a new session with the given seed. An unfinished session is
// ended first with its current score.
func (w *World) Reset(seed int64) {
	w.endSession()

	w.seed = seed
	w.physics.Reset()
	w.obstacles.Reset(seed)
	w.powerUps.Reset(seed + 1)
	w.score.Reset()
	w.now = 0
	w.tick = 0
	w.flapTimes = w.flapTimes[:0]
	w.gameOver = false
	w.paused = false

	if w.tracker != nil {
		w.tracker.StartSession()
	}
	w.sessionActive = true
}

// Close ends the current session if one is active.
func (w *World) Close() {
	w.endSession()
}

func (w *World) endSession() {
	if !w.sessionActive {
		return
	}
	w.sessionActive = false
	if w.tracker != nil {
		w.tracker.EndSession(w.score.Score())
	}
}

// Step advances the world by dt. dt is clamped to the configured maximum so
// long stalls cannot tunnel entities through each other.
func (w *World) Step(dt time.Duration, in core.InputFrame) StepResult {
	if w.gameOver {
		return StepResult{State: w.State()}
	}

	if in.Has(core.ActionPause) {
		w.paused = !w.paused
	}
	if w.paused || dt <= 0 {
		return StepResult{State: w.State()}
	}

	if dt > w.cfg.Scheduler.MaxDelta {
		dt = w.cfg.Scheduler.MaxDelta
	}
	n := normalize(dt)
	w.now += dt
	w.tick++

	var events []Event

	if in.Has(core.ActionFlap) && w.physics.Flap(w.cfg.Physics.JumpForce) {
		if ev, ok := w.trackFlap(); ok {
			events = append(events, ev)
		}
	}

	w.physics.Step(n, w.cfg.Physics.Gravity, w.powerUps.IsInvulnerable())

	// Power-ups
	var view []PowerUp
	if w.cfg.PowerUps.StaleCollection {
		view = w.powerUps.PowerUps()
	}
	score := w.score.Score()
	speed := w.difficulty.Speed(w.cfg.Physics.BaseSpeed, score, w.now)
	center := w.physics.Center()

	for _, p := range w.powerUps.Update(w.now, n, speed, center) {
		events = append(events, SpawnedEvent{PowerUp: p})
	}
	collected := w.powerUps.Collect(center, w.now, view)
	for _, p := range collected {
		events = append(events, CollectedEvent{PowerUp: p})
		if w.tracker != nil {
			w.tracker.CollectPowerUp(p.Type)
		}
	}
	if len(collected) > 0 && w.tracker != nil {
		w.tracker.TrackPowerUpCombo(w.powerUps.ActiveTypes())
	}

	// Obstacles
	box := w.physics.Box(w.powerUps.SizeMultiplier())
	field := w.obstacles.Update(n, speed*w.powerUps.SpeedMultiplier(), box, score, w.now)

	// Collision
	res := w.resolver.Resolve(w.physics.Flyer(), box, w.obstacles.Obstacles(), w.powerUps.IsInvulnerable())
	if !res.Alive {
		w.physics.Kill(res.Cause)
	}

	// Scoring is never suppressed, not even on the tick the flyer dies
	if field.Passed > 0 {
		score = w.score.Add(field.Passed)
		events = append(events, ScoredEvent{Passed: field.Passed, Score: score})
		if w.tracker != nil {
			w.tracker.UpdateScore(score)
		}
	}
	for i := 0; i < field.CloseCalls; i++ {
		events = append(events, CloseCallEvent{})
		if w.tracker != nil {
			w.tracker.TrackCloseCall()
		}
	}

	if f := w.physics.Flyer(); !f.Alive {
		w.gameOver = true
		events = append(events, DeathEvent{Cause: f.Cause, Score: score})
		w.endSession()
	}

	for _, t := range w.powerUps.Decay(dt) {
		events = append(events, ExpiredEvent{Type: t})
	}

	return StepResult{State: w.State(), Events: events}
}

// trackFlap records a flap and reports a rapid-flap burst once enough flaps
// fall inside the configured window.
func (w *World) trackFlap() (Event, bool) {
	window := w.cfg.Achievements.RapidFlapWindow
	w.flapTimes = append(w.flapTimes, w.now)

	kept := w.flapTimes[:0]
	for _, t := range w.flapTimes {
		if w.now-t <= window {
			kept = append(kept, t)
		}
	}
	w.flapTimes = kept

	if len(w.flapTimes) < w.cfg.Achievements.RapidFlapCount {
		return nil, false
	}
	flaps := len(w.flapTimes)
	w.flapTimes = w.flapTimes[:0]
	if w.tracker != nil {
		w.tracker.TrackRapidFlap()
	}
	return RapidFlapEvent{Flaps: flaps}, true
}

// State returns the current run state.
func (w *World) State() State {
	return State{
		Score:    w.score.Score(),
		Best:     w.score.Best(),
		GameOver: w.gameOver,
		Paused:   w.paused,
	}
}

// SetPaused pauses or resumes the simulation.
func (w *World) SetPaused(paused bool) {
	w.paused = paused
}

// Elapsed returns simulated session time.
func (w *World) Elapsed() time.Duration {
	return w.now
}

// Seed returns the seed of the current session.
func (w *World) Seed() int64 {
	return w.seed
}

// Flyer returns the flyer state.
func (w *World) Flyer() Flyer {
	return w.physics.Flyer()
}

// FlyerBox returns the flyer's effective hitbox.
func (w *World) FlyerBox() core.Rect {
	return w.physics.Box(w.powerUps.SizeMultiplier())
}

// Obstacles returns the live obstacles.
func (w *World) Obstacles() []Obstacle {
	return w.obstacles.Obstacles()
}

// PowerUps exposes the power-up manager.
func (w *World) PowerUps() *PowerUpManager {
	return w.powerUps
}

// Canvas returns the canvas width, height and ground line.
func (w *World) Canvas() (width, height, groundLine float64) {
	return w.canvasW, w.canvasH, w.groundLine
}
