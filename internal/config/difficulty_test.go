package config

import (
	"testing"
	"time"
)

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1, GapReduction: 4, SpacingReduction: 10},
	})

	tests := []struct {
		score    int
		expected float64
	}{
		{0, 0.2},
		{5, 0.6},
		{10, 1.0},
		{50, 1.0},
	}
	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got < tc.expected-1e-9 || got > tc.expected+1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.expected)
		}
	}
}

func TestDifficultyTimeProgression(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "time", MaxAt: 100},
	})
	if got := d.Level(0, 50*time.Second); got != 0.5 {
		t.Errorf("Level at 50s = %v, expected 0.5", got)
	}
}

func TestDifficultyDisabledIsIdentity(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     false,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1, GapReduction: 4, SpacingReduction: 10},
	})
	if d.Speed(0.8, 100, 0) != 0.8 {
		t.Error("disabled difficulty should not scale speed")
	}
	if d.GapSize(9, 6, 100, 0) != 9 {
		t.Error("disabled difficulty should not shrink gaps")
	}
	if d.Spacing(40, 20, 100, 0) != 40 {
		t.Error("disabled difficulty should not shrink spacing")
	}
}

func TestDifficultyFloors(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 1},
		Scaling:      ScalingConfig{GapReduction: 100, SpacingReduction: 100},
	})
	if got := d.GapSize(9, 6, 5, 0); got != 6 {
		t.Errorf("GapSize should floor at min, got %v", got)
	}
	if got := d.Spacing(40, 24, 5, 0); got != 24 {
		t.Errorf("Spacing should floor at min, got %v", got)
	}
}
