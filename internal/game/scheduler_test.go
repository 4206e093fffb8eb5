package game

import (
	"testing"
	"time"
)

func TestSchedulerBaseline(t *testing.T) {
	s := NewScheduler(50 * time.Millisecond)
	start := time.Unix(0, 0)

	if _, ok := s.Frame(start); ok {
		t.Error("first frame should only set the baseline")
	}
	dt, ok := s.Frame(start.Add(16 * time.Millisecond))
	if !ok || dt != 16*time.Millisecond {
		t.Errorf("Frame() = %v, %v; expected 16ms, true", dt, ok)
	}
}

func TestSchedulerClampsDelta(t *testing.T) {
	s := NewScheduler(50 * time.Millisecond)
	start := time.Unix(0, 0)
	s.Frame(start)

	dt, ok := s.Frame(start.Add(2 * time.Second))
	if !ok || dt != 50*time.Millisecond {
		t.Errorf("Frame() after stall = %v, expected clamp to 50ms", dt)
	}
}

func TestSchedulerIgnoresBackwardsClock(t *testing.T) {
	s := NewScheduler(50 * time.Millisecond)
	start := time.Unix(10, 0)
	s.Frame(start)
	if _, ok := s.Frame(start.Add(-time.Second)); ok {
		t.Error("a backwards clock should not produce a tick")
	}
}

func TestSchedulerSuspendResume(t *testing.T) {
	s := NewScheduler(50 * time.Millisecond)
	start := time.Unix(0, 0)
	s.Frame(start)
	s.Frame(start.Add(16 * time.Millisecond))

	s.Suspend()
	if !s.Suspended() {
		t.Fatal("Suspended() should be true")
	}
	if _, ok := s.Frame(start.Add(time.Second)); ok {
		t.Error("no ticks while suspended")
	}

	s.Resume()
	if _, ok := s.Frame(start.Add(10 * time.Second)); ok {
		t.Error("first frame after resume should only re-baseline")
	}
	dt, ok := s.Frame(start.Add(10*time.Second + 16*time.Millisecond))
	if !ok || dt != 16*time.Millisecond {
		t.Errorf("Frame() after resume = %v, %v; expected 16ms", dt, ok)
	}
}
