package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic obstacle parameters based on score or
// elapsed play time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0).
func (d *DifficultyManager) Level(score int, elapsed time.Duration) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = elapsed.Seconds() / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the obstacle scroll speed for the current level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, elapsed time.Duration) float64 {
	level := d.Level(score, elapsed)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize returns the gap height for the current level, never below minGap.
func (d *DifficultyManager) GapSize(baseGap, minGap float64, score int, elapsed time.Duration) float64 {
	level := d.Level(score, elapsed)
	return math.Max(minGap, baseGap-level*d.cfg.Scaling.GapReduction)
}

// Spacing returns the obstacle spawn distance for the current level, never below minSpacing.
func (d *DifficultyManager) Spacing(baseSpacing, minSpacing float64, score int, elapsed time.Duration) float64 {
	level := d.Level(score, elapsed)
	return math.Max(minSpacing, baseSpacing-level*d.cfg.Scaling.SpacingReduction)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
