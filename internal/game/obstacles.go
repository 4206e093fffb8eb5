package game

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
)

// Obstacle is a vertical wall pair with a gap the flyer passes through.
type Obstacle struct {
	X         float64 // Left edge
	Width     float64
	GapY      float64 // Top of the gap
	GapHeight float64
	Passed    bool

	// Clearance is the smallest distance between the flyer's box and a gap
	// edge while the two overlapped horizontally. +Inf until they overlap.
	Clearance float64
}

// Right returns the x coordinate of the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// GapBottom returns the y coordinate of the bottom of the gap.
func (o Obstacle) GapBottom() float64 {
	return o.GapY + o.GapHeight
}

// TopRect returns the collision rectangle of the upper wall.
func (o Obstacle) TopRect() core.Rect {
	return core.NewRect(o.X, 0, o.Width, o.GapY)
}

// BottomRect returns the collision rectangle of the lower wall.
func (o Obstacle) BottomRect(groundLine float64) core.Rect {
	bottom := o.GapBottom()
	return core.NewRect(o.X, bottom, o.Width, groundLine-bottom)
}

// Blocks reports whether box overlaps the obstacle horizontally while
// extending outside the gap vertically.
func (o Obstacle) Blocks(box core.Rect) bool {
	if !box.OverlapsX(core.NewRect(o.X, 0, o.Width, 1)) {
		return false
	}
	return box.Y < o.GapY || box.Bottom() > o.GapBottom()
}

// FieldUpdate reports what happened to the field during one update.
type FieldUpdate struct {
	Passed     int // Obstacles whose trailing edge crossed the flyer this tick
	CloseCalls int // Passed obstacles cleared within the close-call margin
	Spawned    int
}

// ObstacleField spawns, advances and prunes obstacles.
type ObstacleField struct {
	obstacles  []Obstacle
	rng        *rand.Rand
	canvasW    float64
	groundLine float64
	cfg        config.Obstacles
	difficulty *config.DifficultyManager
}

// NewObstacleField creates an empty field seeded for deterministic layouts.
func NewObstacleField(seed int64, canvasW, groundLine float64, cfg config.Obstacles, diff *config.DifficultyManager) *ObstacleField {
	f := &ObstacleField{
		obstacles:  make([]Obstacle, 0, 8),
		canvasW:    canvasW,
		groundLine: groundLine,
		cfg:        cfg,
		difficulty: diff,
	}
	f.Reset(seed)
	return f
}

// Reset clears all obstacles and reseeds the RNG.
func (f *ObstacleField) Reset(seed int64) {
	f.obstacles = f.obstacles[:0]
	f.rng = rand.New(rand.NewSource(seed))
}

// Update advances every obstacle by speed*n, records passes and close calls
// against flyerBox, prunes obstacles past the left edge and spawns a new one
// once the trailing obstacle is far enough from the right edge.
func (f *ObstacleField) Update(n, speed float64, flyerBox core.Rect, score int, elapsed time.Duration) FieldUpdate {
	var res FieldUpdate

	dx := speed * n
	for i := range f.obstacles {
		f.obstacles[i].X -= dx
	}

	for i := range f.obstacles {
		o := &f.obstacles[i]
		if o.Passed {
			continue
		}
		if flyerBox.OverlapsX(core.NewRect(o.X, 0, o.Width, 1)) {
			clearance := math.Min(flyerBox.Y-o.GapY, o.GapBottom()-flyerBox.Bottom())
			o.Clearance = math.Min(o.Clearance, clearance)
		}
		if o.Right() < flyerBox.X {
			o.Passed = true
			res.Passed++
			if o.Clearance >= 0 && o.Clearance < f.cfg.CloseCallMargin {
				res.CloseCalls++
			}
		}
	}

	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		if o.Right() > 0 {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept

	spacing := f.difficulty.Spacing(f.cfg.SpawnDistance, f.cfg.MinSpawnDistance, score, elapsed)
	if len(f.obstacles) == 0 || f.obstacles[len(f.obstacles)-1].X < f.canvasW-spacing {
		f.spawn(score, elapsed)
		res.Spawned++
	}

	return res
}

func (f *ObstacleField) spawn(score int, elapsed time.Duration) {
	gap := f.difficulty.GapSize(f.cfg.GapHeight, f.cfg.MinGapHeight, score, elapsed)

	minY := f.cfg.MarginTop
	maxY := f.groundLine - f.cfg.MarginBottom - gap
	if maxY < minY {
		maxY = minY // Canvas too small for the margins
	}
	gapY := minY + f.rng.Float64()*(maxY-minY)

	f.obstacles = append(f.obstacles, Obstacle{
		X:         f.canvasW,
		Width:     f.cfg.Width,
		GapY:      gapY,
		GapHeight: gap,
		Clearance: math.Inf(1),
	})
}

// Obstacles returns the live obstacles ordered left to right.
func (f *ObstacleField) Obstacles() []Obstacle {
	return f.obstacles
}

// Collides reports whether box is blocked by any obstacle.
func (f *ObstacleField) Collides(box core.Rect) bool {
	for _, o := range f.obstacles {
		if o.Blocks(box) {
			return true
		}
	}
	return false
}
