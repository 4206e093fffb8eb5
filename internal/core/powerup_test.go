package core

import "testing"

func TestPowerUpTypeText(t *testing.T) {
	for _, pt := range AllPowerUpTypes() {
		text, err := pt.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v) failed: %v", pt, err)
		}
		var back PowerUpType
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText(%q) failed: %v", text, err)
		}
		if back != pt {
			t.Errorf("round trip of %v produced %v", pt, back)
		}
	}

	if _, err := ParsePowerUpType("laser"); err == nil {
		t.Error("ParsePowerUpType should reject unknown names")
	}
	if _, err := PowerUpCount.MarshalText(); err == nil {
		t.Error("MarshalText should reject the sentinel value")
	}
}

func TestEffectColorsAreDistinct(t *testing.T) {
	seen := make(map[Color]PowerUpType)
	for _, pt := range AllPowerUpTypes() {
		c := EffectColor(pt)
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share color %d", prev, pt, c)
		}
		seen[c] = pt
	}
	if EffectColor(PowerUpCount) != ColorGray {
		t.Error("unknown types should render gray")
	}
}
