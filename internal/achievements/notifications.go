package achievements

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxNotifications bounds the persisted queue.
const maxNotifications = 50

// Notification announces an unlock to the presentation layer.
type Notification struct {
	ID          string    `json:"id"`
	Achievement Info      `json:"achievement"`
	Timestamp   time.Time `json:"timestamp"`
	Seen        bool      `json:"seen"`
}

func newNotification(d Definition, now time.Time) Notification {
	return Notification{
		ID:          uuid.NewString(),
		Achievement: d.Info(),
		Timestamp:   now,
	}
}

// trimNotifications drops the oldest seen notifications, then the oldest
// unseen ones, until the queue fits.
func trimNotifications(ns []Notification) []Notification {
	excess := len(ns) - maxNotifications
	if excess <= 0 {
		return ns
	}

	kept := make([]Notification, 0, maxNotifications)
	for _, n := range ns {
		if n.Seen && excess > 0 {
			excess--
			continue
		}
		kept = append(kept, n)
	}
	if excess > 0 {
		kept = kept[excess:]
	}
	return kept
}

// Dismisser marks notifications seen after a fixed delay. Its timers run
// independently of the simulation and are all cancelled by Close.
type Dismisser struct {
	mu      sync.Mutex
	after   time.Duration
	dismiss func(id string)
	timers  map[string]*time.Timer
	closed  bool
}

// NewDismisser creates a dismisser that calls dismiss for each scheduled id
// once after has elapsed.
func NewDismisser(after time.Duration, dismiss func(id string)) *Dismisser {
	return &Dismisser{
		after:   after,
		dismiss: dismiss,
		timers:  make(map[string]*time.Timer),
	}
}

// Schedule arms the timer for id. Scheduling an id twice restarts its timer.
func (d *Dismisser) Schedule(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	if t, ok := d.timers[id]; ok {
		t.Stop()
	}
	d.timers[id] = time.AfterFunc(d.after, func() { d.fire(id) })
}

// fire runs dismiss with the lock held, so dismiss must not call back into
// the Dismisser.
func (d *Dismisser) fire(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	delete(d.timers, id)
	d.dismiss(id)
}

// Cancel stops the timer for id without dismissing it.
func (d *Dismisser) Cancel(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.timers[id]; ok {
		t.Stop()
		delete(d.timers, id)
	}
}

// Pending returns the number of armed timers.
func (d *Dismisser) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// Close stops every timer. No dismissal fires after Close returns.
func (d *Dismisser) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	for id, t := range d.timers {
		t.Stop()
		delete(d.timers, id)
	}
}
