// Package achievements tracks durable player progress across sessions,
// evaluates unlock rules against it and queues notifications for the
// presentation layer.
package achievements

import (
	"time"

	"github.com/vovakirdan/skydash/internal/core"
)

// Requirement is the unlock rule of a definition. The set of kinds is closed;
// each kind carries its own threshold.
type Requirement interface {
	// Threshold is the value at which the requirement is met.
	Threshold() float64
	// value computes the current measure from progress at time now.
	value(p *Progress, now time.Time) float64
}

// SingleScore is met by reaching Score in one run.
type SingleScore struct{ Score int }

// TotalScore is met once scores across all runs add up to Score.
type TotalScore struct{ Score int }

// PowerUpCollected is met by collecting Count power-ups of any type in one session.
type PowerUpCollected struct{ Count int }

// PowerUpTypeCollected is met by collecting Count power-ups of Type overall.
type PowerUpTypeCollected struct {
	Type  core.PowerUpType
	Count int
}

// TotalPowerUps is met by collecting Count power-ups overall.
type TotalPowerUps struct{ Count int }

// GamesPlayed is met after Count started sessions.
type GamesPlayed struct{ Count int }

// WinStreak is met by Count consecutive runs at or above the win score.
type WinStreak struct{ Count int }

// PlayStreak is met by playing on Days consecutive calendar days.
type PlayStreak struct{ Days int }

// SessionTime is met by keeping one session alive for Duration.
type SessionTime struct{ Duration time.Duration }

// ScoreWithoutPowerUps is met by reaching Score in a run with no pickups.
type ScoreWithoutPowerUps struct{ Score int }

// RapidFlaps is met after Count rapid-flap bursts overall.
type RapidFlaps struct{ Count int }

// CloseCalls is met after Count close calls overall.
type CloseCalls struct{ Count int }

// Combo is met when every type in Types is active at the same moment. It is
// only checked from Engine.TrackPowerUpCombo, never by numeric evaluation.
type Combo struct{ Types []core.PowerUpType }

func (r SingleScore) Threshold() float64          { return float64(r.Score) }
func (r TotalScore) Threshold() float64           { return float64(r.Score) }
func (r PowerUpCollected) Threshold() float64     { return float64(r.Count) }
func (r PowerUpTypeCollected) Threshold() float64 { return float64(r.Count) }
func (r TotalPowerUps) Threshold() float64        { return float64(r.Count) }
func (r GamesPlayed) Threshold() float64          { return float64(r.Count) }
func (r WinStreak) Threshold() float64            { return float64(r.Count) }
func (r PlayStreak) Threshold() float64           { return float64(r.Days) }
func (r SessionTime) Threshold() float64          { return r.Duration.Seconds() }
func (r ScoreWithoutPowerUps) Threshold() float64 { return float64(r.Score) }
func (r RapidFlaps) Threshold() float64           { return float64(r.Count) }
func (r CloseCalls) Threshold() float64           { return float64(r.Count) }
func (r Combo) Threshold() float64                { return 1 }

func (r SingleScore) value(p *Progress, _ time.Time) float64 {
	return float64(max(p.MaxScore, p.Session.Score))
}

func (r TotalScore) value(p *Progress, _ time.Time) float64 {
	return float64(p.TotalScore)
}

func (r PowerUpCollected) value(p *Progress, _ time.Time) float64 {
	return float64(p.Session.PowerUps)
}

func (r PowerUpTypeCollected) value(p *Progress, _ time.Time) float64 {
	return float64(p.PowerUpsByType[r.Type])
}

func (r TotalPowerUps) value(p *Progress, _ time.Time) float64 {
	return float64(p.TotalPowerUps)
}

func (r GamesPlayed) value(p *Progress, _ time.Time) float64 {
	return float64(p.GamesPlayed)
}

func (r WinStreak) value(p *Progress, _ time.Time) float64 {
	return float64(p.CurrentWinStreak)
}

func (r PlayStreak) value(p *Progress, _ time.Time) float64 {
	return float64(p.CurrentPlayStreak)
}

func (r SessionTime) value(p *Progress, now time.Time) float64 {
	if !p.Session.Active {
		return 0
	}
	return now.Sub(p.Session.StartedAt).Seconds()
}

func (r ScoreWithoutPowerUps) value(p *Progress, _ time.Time) float64 {
	if p.Session.PowerUps > 0 {
		return 0
	}
	return float64(p.Session.Score)
}

func (r RapidFlaps) value(p *Progress, _ time.Time) float64 {
	return float64(p.RapidFlaps)
}

func (r CloseCalls) value(p *Progress, _ time.Time) float64 {
	return float64(p.CloseCalls)
}

func (r Combo) value(*Progress, time.Time) float64 {
	return 0
}

// satisfiedBy reports whether every type of the combo is in active.
func (r Combo) satisfiedBy(active map[core.PowerUpType]bool) bool {
	if len(r.Types) == 0 {
		return false
	}
	for _, t := range r.Types {
		if !active[t] {
			return false
		}
	}
	return true
}
