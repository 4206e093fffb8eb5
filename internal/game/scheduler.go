package game

import "time"

// Scheduler turns wall-clock frame times into clamped simulation deltas.
// While suspended it produces no ticks; the first frame after Resume only
// re-baselines the clock so the suspended interval is never simulated.
type Scheduler struct {
	maxDelta  time.Duration
	last      time.Time
	baselined bool
	suspended bool
}

// NewScheduler creates a scheduler that clamps every delta to maxDelta.
func NewScheduler(maxDelta time.Duration) *Scheduler {
	return &Scheduler{maxDelta: maxDelta}
}

// Frame records a frame at now and returns the delta to simulate.
// ok is false when no tick should run.
func (s *Scheduler) Frame(now time.Time) (dt time.Duration, ok bool) {
	if s.suspended {
		return 0, false
	}
	if !s.baselined {
		s.last = now
		s.baselined = true
		return 0, false
	}

	dt = now.Sub(s.last)
	s.last = now
	if dt <= 0 {
		return 0, false
	}
	if dt > s.maxDelta {
		dt = s.maxDelta
	}
	return dt, true
}

// Suspend stops tick production, e.g. while the terminal is unfocused.
func (s *Scheduler) Suspend() {
	s.suspended = true
	s.baselined = false
}

// Resume restarts tick production from a fresh baseline.
func (s *Scheduler) Resume() {
	s.suspended = false
	s.baselined = false
}

// Suspended reports whether the scheduler is suspended.
func (s *Scheduler) Suspended() bool {
	return s.suspended
}

// MaxDelta returns the clamp applied to each delta.
func (s *Scheduler) MaxDelta() time.Duration {
	return s.maxDelta
}
