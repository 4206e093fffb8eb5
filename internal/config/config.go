// Package config provides YAML-based configuration loading, validation and
// difficulty management for the simulation.
package config

import (
	"time"

	"github.com/vovakirdan/skydash/internal/core"
)

// Config contains every tunable table used by the simulation and the
// achievement engine. It is loaded once and treated as immutable.
type Config struct {
	Physics      Physics          `yaml:"physics"`
	Canvas       Canvas           `yaml:"canvas"`
	Flyer        Flyer            `yaml:"flyer"`
	Obstacles    Obstacles        `yaml:"obstacles"`
	PowerUps     PowerUps         `yaml:"powerups"`
	Scheduler    Scheduler        `yaml:"scheduler"`
	Achievements Achievements     `yaml:"achievements"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// Physics defines per-frame physics constants. A frame is 1/60 s; the
// simulation scales every value by dt normalized to that frame.
type Physics struct {
	Gravity      float64 `yaml:"gravity"`        // Downward acceleration per frame
	JumpForce    float64 `yaml:"jump_force"`     // Velocity set on flap (negative = up)
	MaxFallSpeed float64 `yaml:"max_fall_speed"` // Terminal velocity
	BaseSpeed    float64 `yaml:"base_speed"`     // Obstacle scroll speed per frame
}

// Canvas defines the default play-field size in canvas units. The platform
// may override width and height with the terminal size.
type Canvas struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// Flyer defines the controllable entity.
type Flyer struct {
	X    float64 `yaml:"x"`    // Fixed horizontal position
	Size float64 `yaml:"size"` // Baseline hitbox edge length
}

// Obstacles defines obstacle geometry and spawning.
type Obstacles struct {
	Width            float64 `yaml:"width"`
	GapHeight        float64 `yaml:"gap_height"`
	MinGapHeight     float64 `yaml:"min_gap_height"`
	SpawnDistance    float64 `yaml:"spawn_distance"`
	MinSpawnDistance float64 `yaml:"min_spawn_distance"`
	MarginTop        float64 `yaml:"margin_top"`
	MarginBottom     float64 `yaml:"margin_bottom"`
	CloseCallMargin  float64 `yaml:"close_call_margin"` // Distance to a gap edge that counts as a close call
}

// EffectConfig holds the parameters every power-up type shares.
type EffectConfig struct {
	Duration time.Duration `yaml:"duration"`
	Weight   float64       `yaml:"weight"` // Relative spawn weight
}

// SlowMoConfig configures the slow-motion power-up.
type SlowMoConfig struct {
	EffectConfig    `yaml:",inline"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
}

// TinyConfig configures the shrink power-up.
type TinyConfig struct {
	EffectConfig   `yaml:",inline"`
	SizeMultiplier float64 `yaml:"size_multiplier"`
}

// MagnetConfig configures the attraction power-up.
type MagnetConfig struct {
	EffectConfig `yaml:",inline"`
	Radius       float64 `yaml:"radius"`
	Strength     float64 `yaml:"strength"` // Pull distance per frame
}

// PowerUps defines spawn gating and the per-type effect table.
type PowerUps struct {
	MaxActive        int           `yaml:"max_active"`
	MinSpawnInterval time.Duration `yaml:"min_spawn_interval"`
	SpawnChance      float64       `yaml:"spawn_chance"` // Probability per tick once gating passes
	DespawnTime      time.Duration `yaml:"despawn_time"`
	CollectRadius    float64       `yaml:"collect_radius"`
	Size             float64       `yaml:"size"`

	// StaleCollection evaluates collection against power-up positions from
	// the start of the tick, before movement. It reproduces a one-tick lag
	// some players tune around.
	StaleCollection bool `yaml:"stale_collection"`

	// MagnetFollowsSlowMo scales magnet pull by the slow-motion multiplier.
	MagnetFollowsSlowMo bool `yaml:"magnet_follows_slowmo"`

	Shield EffectConfig `yaml:"shield"`
	SlowMo SlowMoConfig `yaml:"slowmo"`
	Tiny   TinyConfig   `yaml:"tiny"`
	Magnet MagnetConfig `yaml:"magnet"`
}

// Effect returns the shared parameters for the given power-up type.
func (p PowerUps) Effect(t core.PowerUpType) EffectConfig {
	switch t {
	case core.PowerUpShield:
		return p.Shield
	case core.PowerUpSlowMo:
		return p.SlowMo.EffectConfig
	case core.PowerUpTiny:
		return p.Tiny.EffectConfig
	case core.PowerUpMagnet:
		return p.Magnet.EffectConfig
	default:
		return EffectConfig{}
	}
}

// Scheduler defines tick pacing.
type Scheduler struct {
	MaxDelta time.Duration `yaml:"max_delta"` // Upper bound on dt fed to a single tick
}

// Achievements defines thresholds the engine needs beyond the static table.
type Achievements struct {
	WinScore        int           `yaml:"win_score"`         // Final score that counts as a win for streaks
	RapidFlapCount  int           `yaml:"rapid_flap_count"`  // Flaps needed inside the window
	RapidFlapWindow time.Duration `yaml:"rapid_flap_window"` // Window for a rapid-flap burst
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score (or seconds) at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier  float64 `yaml:"speed_multiplier"`  // Added to speed factor at max difficulty
	GapReduction     float64 `yaml:"gap_reduction"`     // Gap height reduction at max difficulty
	SpacingReduction float64 `yaml:"spacing_reduction"` // Spawn distance reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset. Empty and unknown
// strings yield "" which leaves the config untouched.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(s)
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
