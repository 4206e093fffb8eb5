package core

import "fmt"

// PowerUpType identifies one of the fixed set of collectible power-ups.
type PowerUpType int

const (
	PowerUpShield PowerUpType = iota // Invulnerability
	PowerUpSlowMo                    // Slows obstacles, power-ups and effect decay
	PowerUpTiny                      // Shrinks the flyer's hitbox
	PowerUpMagnet                    // Pulls nearby power-ups toward the flyer
	PowerUpCount                     // Sentinel for counting types
)

// AllPowerUpTypes lists every power-up type in declaration order.
func AllPowerUpTypes() []PowerUpType {
	return []PowerUpType{PowerUpShield, PowerUpSlowMo, PowerUpTiny, PowerUpMagnet}
}

// String returns the stable identifier used in config files and saves.
func (p PowerUpType) String() string {
	switch p {
	case PowerUpShield:
		return "shield"
	case PowerUpSlowMo:
		return "slowmo"
	case PowerUpTiny:
		return "tiny"
	case PowerUpMagnet:
		return "magnet"
	default:
		return "unknown"
	}
}

// Glyph returns the display character for a power-up type.
func (p PowerUpType) Glyph() rune {
	switch p {
	case PowerUpShield:
		return 'S'
	case PowerUpSlowMo:
		return '~'
	case PowerUpTiny:
		return 't'
	case PowerUpMagnet:
		return 'U'
	default:
		return '?'
	}
}

// Valid reports whether p is one of the known types.
func (p PowerUpType) Valid() bool {
	return p >= 0 && p < PowerUpCount
}

// ParsePowerUpType converts an identifier back to a PowerUpType.
func ParsePowerUpType(s string) (PowerUpType, error) {
	for _, t := range AllPowerUpTypes() {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("core: unknown power-up type %q", s)
}

// MarshalText implements encoding.TextMarshaler so the type can key JSON maps.
func (p PowerUpType) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("core: invalid power-up type %d", int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PowerUpType) UnmarshalText(text []byte) error {
	t, err := ParsePowerUpType(string(text))
	if err != nil {
		return err
	}
	*p = t
	return nil
}
