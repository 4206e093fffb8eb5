package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/skydash.yaml
var defaultYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultYAML
}

// Default returns the hardcoded default configuration. It matches the
// embedded YAML and is used when the embed cannot be decoded.
func Default() Config {
	return Config{
		Physics: Physics{
			Gravity:      0.25,
			JumpForce:    -1.8,
			MaxFallSpeed: 3.0,
			BaseSpeed:    0.8,
		},
		Canvas: Canvas{
			Width:        80,
			Height:       24,
			GroundHeight: 2,
		},
		Flyer: Flyer{
			X:    10,
			Size: 2,
		},
		Obstacles: Obstacles{
			Width:            5,
			GapHeight:        9,
			MinGapHeight:     6,
			SpawnDistance:    40,
			MinSpawnDistance: 24,
			MarginTop:        2,
			MarginBottom:     2,
			CloseCallMargin:  0.75,
		},
		PowerUps: PowerUps{
			MaxActive:           2,
			MinSpawnInterval:    4 * time.Second,
			SpawnChance:         0.01,
			DespawnTime:         12 * time.Second,
			CollectRadius:       2,
			Size:                1,
			StaleCollection:     false,
			MagnetFollowsSlowMo: true,
			Shield:              EffectConfig{Duration: 5 * time.Second, Weight: 3},
			SlowMo: SlowMoConfig{
				EffectConfig:    EffectConfig{Duration: 6 * time.Second, Weight: 3},
				SpeedMultiplier: 0.5,
			},
			Tiny: TinyConfig{
				EffectConfig:   EffectConfig{Duration: 8 * time.Second, Weight: 2},
				SizeMultiplier: 0.5,
			},
			Magnet: MagnetConfig{
				EffectConfig: EffectConfig{Duration: 8 * time.Second, Weight: 2},
				Radius:       14,
				Strength:     0.6,
			},
		},
		Scheduler: Scheduler{
			MaxDelta: 50 * time.Millisecond,
		},
		Achievements: Achievements{
			WinScore:        10,
			RapidFlapCount:  5,
			RapidFlapWindow: time.Second,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 60,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:  0.75,
				GapReduction:     3,
				SpacingReduction: 12,
			},
		},
	}
}
