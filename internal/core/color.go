package core

// Color represents a foreground color for a screen cell.
// Values map to ANSI 256-color codes in the terminal renderer.
type Color uint8

// Base terminal colors.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// Palette roles for the world renderer.
const (
	ColorFlyer       = ColorBrightYellow
	ColorShieldAura  = ColorBrightCyan
	ColorObstacle    = ColorGreen
	ColorObstacleCap = ColorBrightGreen
	ColorGround      = ColorOrange
	ColorHUD         = ColorBrightWhite
)

// EffectColor returns the display color for a power-up type and its effect.
func EffectColor(t PowerUpType) Color {
	switch t {
	case PowerUpShield:
		return ColorShieldAura
	case PowerUpSlowMo:
		return ColorBrightBlue
	case PowerUpTiny:
		return ColorBrightMagenta
	case PowerUpMagnet:
		return ColorBrightRed
	default:
		return ColorGray
	}
}
