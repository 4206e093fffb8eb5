package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/skydash/internal/core"
)

// Visual characters for rendering
const (
	FlyerChar      = '▶'
	FlyerBodyChar  = '●'
	ObstacleChar   = '█'
	ObstacleCapTop = '▄'
	ObstacleCapBot = '▀'
	GroundChar     = '═'
)

// Render draws the snapshot onto dst, scaling canvas units to cells.
func (s Snapshot) Render(dst *core.Screen, canvasW, canvasH, groundLine float64) {
	dst.Clear()
	if canvasW <= 0 || canvasH <= 0 {
		return
	}
	sx := float64(dst.Width()) / canvasW
	sy := float64(dst.Height()) / canvasH
	cx := func(x float64) int { return int(math.Floor(x * sx)) }
	cy := func(y float64) int { return int(math.Floor(y * sy)) }

	ground := cy(groundLine)
	for y := ground; y < dst.Height(); y++ {
		dst.DrawHLine(0, y, dst.Width(), GroundChar, core.ColorGround)
	}

	for _, o := range s.Obstacles {
		x0, x1 := cx(o.X), cx(o.Right())
		gapTop, gapBot := cy(o.GapY), cy(o.GapBottom())
		dst.FillRect(x0, 0, x1-x0, gapTop, ObstacleChar, core.ColorObstacle)
		dst.FillRect(x0, gapBot, x1-x0, ground-gapBot, ObstacleChar, core.ColorObstacle)
		if gapTop > 0 {
			dst.DrawHLine(x0, gapTop-1, x1-x0, ObstacleCapTop, core.ColorObstacleCap)
		}
		if gapBot < ground {
			dst.DrawHLine(x0, gapBot, x1-x0, ObstacleCapBot, core.ColorObstacleCap)
		}
	}

	for _, p := range s.PowerUps {
		dst.SetColored(cx(p.Pos.X()), cy(p.Pos.Y()), p.Type.Glyph(), core.EffectColor(p.Type))
	}

	s.drawFlyer(dst, cx, cy)
	s.drawHUD(dst)

	if s.Paused {
		drawCenteredMessage(dst, "PAUSED", "Press P to resume")
	}
	if s.GameOver {
		drawCenteredMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", s.Score))
	}
}

func (s Snapshot) drawFlyer(dst *core.Screen, cx, cy func(float64) int) {
	size := s.Flyer.Size * s.SizeMultiplier
	half := s.Flyer.Size / 2
	left := s.Flyer.X + half - size/2
	top := s.Flyer.Y + half - size/2

	x0, y0 := cx(left), cy(top)
	x1, y1 := core.Max(cx(left+size), x0+1), core.Max(cy(top+size), y0+1)

	color := core.ColorFlyer
	if s.Invulnerable {
		color = core.ColorShieldAura
	}
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			r := FlyerBodyChar
			if x == x1-1 && y == y0 {
				r = FlyerChar
			}
			dst.SetColored(x, y, r, color)
		}
	}
}

func (s Snapshot) drawHUD(dst *core.Screen) {
	dst.DrawTextColored(2, 0, fmt.Sprintf(" Score: %d ", s.Score), core.ColorHUD)

	if len(s.Effects) == 0 {
		return
	}
	parts := make([]string, 0, len(s.Effects))
	for _, e := range s.Effects {
		parts = append(parts, fmt.Sprintf("%c %.1fs", e.Type.Glyph(), e.Remaining.Seconds()))
	}
	text := " " + strings.Join(parts, "  ") + " "
	dst.DrawText(dst.Width()-len([]rune(text))-2, 0, text)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.FillRect(boxX, boxY, boxW, boxH, ' ', core.ColorDefault)
	dst.DrawBox(boxX, boxY, boxW, boxH)

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}

// Render draws the current world state onto dst.
func (w *World) Render(dst *core.Screen) {
	w.Snapshot().Render(dst, w.canvasW, w.canvasH, w.groundLine)
}
