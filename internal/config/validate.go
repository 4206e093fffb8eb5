package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/skydash/internal/core"
)

// ConfigError describes one invalid or missing configuration value.
// Gameplay parameters are undefined without a valid config, so callers
// treat it as fatal.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate checks every value the simulation depends on. All problems are
// reported at once, joined with errors.Join.
func Validate(cfg Config) error {
	var errs []error
	bad := func(field, format string, args ...any) {
		errs = append(errs, &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)})
	}
	positive := func(field string, v float64) {
		if v <= 0 {
			bad(field, "must be > 0, got %v", v)
		}
	}
	unit := func(field string, v float64) {
		if v <= 0 || v > 1 {
			bad(field, "must be in (0, 1], got %v", v)
		}
	}

	positive("physics.gravity", cfg.Physics.Gravity)
	if cfg.Physics.JumpForce >= 0 {
		bad("physics.jump_force", "must be negative (upward), got %v", cfg.Physics.JumpForce)
	}
	positive("physics.max_fall_speed", cfg.Physics.MaxFallSpeed)
	positive("physics.base_speed", cfg.Physics.BaseSpeed)

	positive("canvas.width", cfg.Canvas.Width)
	positive("canvas.height", cfg.Canvas.Height)
	if cfg.Canvas.GroundHeight < 0 {
		bad("canvas.ground_height", "must be >= 0, got %v", cfg.Canvas.GroundHeight)
	}

	positive("flyer.size", cfg.Flyer.Size)
	if cfg.Flyer.X < 0 {
		bad("flyer.x", "must be >= 0, got %v", cfg.Flyer.X)
	}

	positive("obstacles.width", cfg.Obstacles.Width)
	positive("obstacles.gap_height", cfg.Obstacles.GapHeight)
	positive("obstacles.spawn_distance", cfg.Obstacles.SpawnDistance)
	if cfg.Obstacles.MinGapHeight <= 0 || cfg.Obstacles.MinGapHeight > cfg.Obstacles.GapHeight {
		bad("obstacles.min_gap_height", "must be in (0, gap_height], got %v", cfg.Obstacles.MinGapHeight)
	}
	if cfg.Obstacles.MinSpawnDistance <= 0 || cfg.Obstacles.MinSpawnDistance > cfg.Obstacles.SpawnDistance {
		bad("obstacles.min_spawn_distance", "must be in (0, spawn_distance], got %v", cfg.Obstacles.MinSpawnDistance)
	}
	if cfg.Obstacles.MarginTop < 0 || cfg.Obstacles.MarginBottom < 0 || cfg.Obstacles.CloseCallMargin < 0 {
		bad("obstacles", "margins must be >= 0")
	}

	pu := cfg.PowerUps
	if pu.MaxActive < 0 {
		bad("powerups.max_active", "must be >= 0, got %d", pu.MaxActive)
	}
	if pu.MinSpawnInterval < 0 {
		bad("powerups.min_spawn_interval", "must be >= 0, got %v", pu.MinSpawnInterval)
	}
	if pu.SpawnChance < 0 || pu.SpawnChance > 1 {
		bad("powerups.spawn_chance", "must be in [0, 1], got %v", pu.SpawnChance)
	}
	if pu.DespawnTime <= 0 {
		bad("powerups.despawn_time", "must be > 0, got %v", pu.DespawnTime)
	}
	positive("powerups.collect_radius", pu.CollectRadius)
	positive("powerups.size", pu.Size)

	totalWeight := 0.0
	for _, t := range core.AllPowerUpTypes() {
		eff := pu.Effect(t)
		if eff.Duration <= 0 {
			bad("powerups."+t.String()+".duration", "must be > 0, got %v", eff.Duration)
		}
		if eff.Weight < 0 {
			bad("powerups."+t.String()+".weight", "must be >= 0, got %v", eff.Weight)
		}
		totalWeight += eff.Weight
	}
	if totalWeight <= 0 {
		bad("powerups", "at least one power-up type needs a positive weight")
	}
	unit("powerups.slowmo.speed_multiplier", pu.SlowMo.SpeedMultiplier)
	unit("powerups.tiny.size_multiplier", pu.Tiny.SizeMultiplier)
	positive("powerups.magnet.radius", pu.Magnet.Radius)
	positive("powerups.magnet.strength", pu.Magnet.Strength)

	if cfg.Scheduler.MaxDelta <= 0 {
		bad("scheduler.max_delta", "must be > 0, got %v", cfg.Scheduler.MaxDelta)
	}

	if cfg.Achievements.WinScore <= 0 {
		bad("achievements.win_score", "must be > 0, got %d", cfg.Achievements.WinScore)
	}
	if cfg.Achievements.RapidFlapCount <= 0 {
		bad("achievements.rapid_flap_count", "must be > 0, got %d", cfg.Achievements.RapidFlapCount)
	}
	if cfg.Achievements.RapidFlapWindow <= 0 {
		bad("achievements.rapid_flap_window", "must be > 0, got %v", cfg.Achievements.RapidFlapWindow)
	}

	switch cfg.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		bad("difficulty.progression.type", "unknown progression %q", cfg.Difficulty.Progression.Type)
	}

	return errors.Join(errs...)
}
