package game

// ScoreKeeper counts obstacles passed during a run.
type ScoreKeeper struct {
	score int
	best  int
}

// Add increments the score by passed and returns the new score.
func (s *ScoreKeeper) Add(passed int) int {
	if passed <= 0 {
		return s.score
	}
	s.score += passed
	if s.score > s.best {
		s.best = s.score
	}
	return s.score
}

// Score returns the current run's score.
func (s *ScoreKeeper) Score() int {
	return s.score
}

// Best returns the highest score seen by this keeper across resets.
func (s *ScoreKeeper) Best() int {
	return s.best
}

// Reset zeroes the current score, keeping the best.
func (s *ScoreKeeper) Reset() {
	s.score = 0
}
