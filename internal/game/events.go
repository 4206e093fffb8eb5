package game

import "github.com/vovakirdan/skydash/internal/core"

// Event is something that happened during a single World step.
type Event interface {
	worldEvent()
}

// ScoredEvent is emitted when one or more obstacles were passed.
type ScoredEvent struct {
	Passed int
	Score  int
}

func (ScoredEvent) worldEvent() {}

// SpawnedEvent is emitted when a power-up enters the field.
type SpawnedEvent struct {
	PowerUp PowerUp
}

func (SpawnedEvent) worldEvent() {}

// CollectedEvent is emitted when the flyer picks up a power-up.
type CollectedEvent struct {
	PowerUp PowerUp
}

func (CollectedEvent) worldEvent() {}

// ExpiredEvent is emitted when an active effect runs out.
type ExpiredEvent struct {
	Type core.PowerUpType
}

func (ExpiredEvent) worldEvent() {}

// CloseCallEvent is emitted when an obstacle was cleared within the
// close-call margin.
type CloseCallEvent struct{}

func (CloseCallEvent) worldEvent() {}

// RapidFlapEvent is emitted when enough flaps land inside the rapid-flap window.
type RapidFlapEvent struct {
	Flaps int
}

func (RapidFlapEvent) worldEvent() {}

// DeathEvent is emitted once, on the tick the flyer dies.
type DeathEvent struct {
	Cause DeathCause
	Score int
}

func (DeathEvent) worldEvent() {}
