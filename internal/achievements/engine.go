package achievements

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
)

// Entry pairs a definition with its runtime state.
type Entry struct {
	Definition Definition
	State      State
}

// Engine tracks progress, evaluates definitions and queues notifications.
// It is safe for concurrent use; unlock callbacks run without the lock held.
//
// Persistence failures never reach callers: they are logged and the engine
// keeps its in-memory state.
type Engine struct {
	mu sync.Mutex

	defs  *Definitions
	blob  *Blob
	store Store
	cfg   config.Achievements

	logger   *log.Logger
	now      func() time.Time
	onUnlock []func(Definition)
}

// Option customizes an Engine.
type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithDefinitions replaces the built-in definition table.
func WithDefinitions(defs *Definitions) Option {
	return func(e *Engine) { e.defs = defs }
}

// NewEngine creates an engine and loads saved progress from store. A nil
// store keeps progress in memory only; a nil logger discards logs. Saved
// progress that cannot be read is discarded with a warning.
func NewEngine(store Store, cfg config.Achievements, logger *log.Logger, opts ...Option) *Engine {
	if store == nil {
		store = NewMemoryStore()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	e := &Engine{
		store:  store,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.defs == nil {
		e.defs = DefaultDefinitions()
	}

	e.load()
	return e
}

func (e *Engine) load() {
	blob, err := e.store.Load()
	switch {
	case err != nil:
		e.logger.Warn("discarding unreadable achievement progress", "error", err)
		blob = NewBlob()
	case blob == nil:
		blob = NewBlob()
	}

	merge(blob, e.defs)
	// A session cannot survive a restart
	blob.Progress.Session = SessionProgress{}
	e.blob = blob
}

// OnUnlock registers fn to be called for every unlock.
func (e *Engine) OnUnlock(fn func(Definition)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onUnlock = append(e.onUnlock, fn)
}

// StartSession resets session counters, counts the game and advances the
// play streak.
func (e *Engine) StartSession() {
	e.mutate(true, func(p *Progress, now time.Time) {
		p.Session = SessionProgress{Active: true, StartedAt: now}
		p.GamesPlayed++
		p.recordPlayDay(now)
	})
}

// UpdateScore records the current session score.
func (e *Engine) UpdateScore(score int) {
	e.mutate(false, func(p *Progress, _ time.Time) {
		p.recordScore(score)
	})
}

// CollectPowerUp records one collected power-up.
func (e *Engine) CollectPowerUp(t core.PowerUpType) {
	if !t.Valid() {
		e.logger.Warn("ignoring unknown power-up type", "type", int(t))
		return
	}
	e.mutate(false, func(p *Progress, _ time.Time) {
		p.PowerUpsByType[t]++
		p.TotalPowerUps++
		p.Session.PowerUps++
	})
}

// TrackCloseCall records one close call.
func (e *Engine) TrackCloseCall() {
	e.mutate(false, func(p *Progress, _ time.Time) {
		p.CloseCalls++
	})
}

// TrackRapidFlap records one rapid-flap burst.
func (e *Engine) TrackRapidFlap() {
	e.mutate(false, func(p *Progress, _ time.Time) {
		p.RapidFlaps++
	})
}

// TrackPowerUpCombo unlocks every combo whose types are all in active.
func (e *Engine) TrackPowerUpCombo(active []core.PowerUpType) {
	set := make(map[core.PowerUpType]bool, len(active))
	for _, t := range active {
		set[t] = true
	}

	e.mu.Lock()
	now := e.now()
	var unlocked []Definition
	for el := e.defs.Front(); el != nil; el = el.Next() {
		combo, ok := el.Value.Requirement.(Combo)
		if !ok || e.blob.Achievements[el.Key].Unlocked {
			continue
		}
		if combo.satisfiedBy(set) {
			e.unlock(el.Value, now)
			unlocked = append(unlocked, el.Value)
		}
	}
	if len(unlocked) > 0 {
		e.persist(now)
	}
	callbacks := e.onUnlock
	e.mu.Unlock()

	notify(callbacks, unlocked)
}

// EndSession applies the final score, updates the win streak and play time
// and closes the session. Calls without an active session are ignored.
func (e *Engine) EndSession(finalScore int) {
	e.mu.Lock()
	p := &e.blob.Progress
	if !p.Session.Active {
		e.mu.Unlock()
		return
	}

	now := e.now()
	p.recordScore(finalScore)
	p.recordResult(finalScore, e.cfg.WinScore)
	if elapsed := now.Sub(p.Session.StartedAt); elapsed > 0 {
		p.TotalPlayTime += elapsed
	}
	unlocked := e.evaluateAll(now)
	p.Session.Active = false
	e.persist(now)
	callbacks := e.onUnlock
	e.mu.Unlock()

	notify(callbacks, unlocked)
}

// EvaluateAll re-evaluates every locked definition and returns how many
// were unlocked. Without intervening events a second call changes nothing.
func (e *Engine) EvaluateAll() int {
	e.mu.Lock()
	now := e.now()
	unlocked := e.evaluateAll(now)
	if len(unlocked) > 0 {
		e.persist(now)
	}
	callbacks := e.onUnlock
	e.mu.Unlock()

	notify(callbacks, unlocked)
	return len(unlocked)
}

// mutate applies fn to progress, evaluates and persists when something was
// unlocked or always is set.
func (e *Engine) mutate(always bool, fn func(p *Progress, now time.Time)) {
	e.mu.Lock()
	now := e.now()
	fn(&e.blob.Progress, now)
	unlocked := e.evaluateAll(now)
	if always || len(unlocked) > 0 {
		e.persist(now)
	}
	callbacks := e.onUnlock
	e.mu.Unlock()

	notify(callbacks, unlocked)
}

// evaluateAll updates progress fractions of locked definitions and unlocks
// the ones whose requirement is met. Combos are skipped.
func (e *Engine) evaluateAll(now time.Time) []Definition {
	var unlocked []Definition
	for el := e.defs.Front(); el != nil; el = el.Next() {
		def := el.Value
		st := e.blob.Achievements[def.ID]
		if st.Unlocked {
			continue
		}
		if _, ok := def.Requirement.(Combo); ok {
			continue
		}

		threshold := def.Requirement.Threshold()
		value := def.Requirement.value(&e.blob.Progress, now)
		if threshold <= 0 || value >= threshold {
			e.unlock(def, now)
			unlocked = append(unlocked, def)
			continue
		}
		st.Progress = clampUnit(value / threshold)
		e.blob.Achievements[def.ID] = st
	}
	return unlocked
}

func (e *Engine) unlock(def Definition, now time.Time) {
	at := now
	e.blob.Achievements[def.ID] = State{Unlocked: true, Progress: 1, UnlockedAt: &at}
	e.blob.TotalAchievementPoints += def.Points
	e.blob.UnlockedCount++
	e.blob.Notifications = trimNotifications(append(e.blob.Notifications, newNotification(def, now)))

	e.logger.Info("achievement unlocked", "id", def.ID, "points", def.Points)
}

func (e *Engine) persist(now time.Time) {
	e.blob.LastUpdated = now
	if err := e.store.Save(e.blob); err != nil {
		e.logger.Warn("could not save achievement progress", "error", err)
	}
}

func notify(callbacks []func(Definition), unlocked []Definition) {
	for _, def := range unlocked {
		for _, fn := range callbacks {
			fn(def)
		}
	}
}

// Snapshot returns a deep copy of the engine state.
func (e *Engine) Snapshot() *Blob {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blob.clone()
}

// All returns every definition with its state, in registration order.
func (e *Engine) All() []Entry {
	e.mu.Lock()
	defer e.mu.Unlock()
	entries := make([]Entry, 0, e.defs.Len())
	for el := e.defs.Front(); el != nil; el = el.Next() {
		entries = append(entries, Entry{Definition: el.Value, State: e.blob.Achievements[el.Key]})
	}
	return entries
}

// Visible returns the definitions that are not hidden or already unlocked.
func (e *Engine) Visible() []Entry {
	all := e.All()
	visible := all[:0]
	for _, en := range all {
		if !en.Definition.Hidden || en.State.Unlocked {
			visible = append(visible, en)
		}
	}
	return visible
}

// UnseenNotifications returns the queued notifications not yet seen, oldest first.
func (e *Engine) UnseenNotifications() []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []Notification
	for _, n := range e.blob.Notifications {
		if !n.Seen {
			out = append(out, n)
		}
	}
	return out
}

// MarkNotificationSeen marks the notification with id as seen. It returns
// false if no such notification is queued.
func (e *Engine) MarkNotificationSeen(id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i := range e.blob.Notifications {
		n := &e.blob.Notifications[i]
		if n.ID != id {
			continue
		}
		if !n.Seen {
			n.Seen = true
			e.persist(e.now())
		}
		return true
	}
	return false
}

// TotalPoints returns the sum of points of unlocked definitions.
func (e *Engine) TotalPoints() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blob.TotalAchievementPoints
}

// UnlockedCount returns the number of unlocked definitions.
func (e *Engine) UnlockedCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blob.UnlockedCount
}

// Progress returns a copy of the cumulative counters.
func (e *Engine) Progress() Progress {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.blob.clone().Progress
}

// Definition looks up a definition by id.
func (e *Engine) Definition(id string) (Definition, bool) {
	return e.defs.Get(id)
}

func (b *Blob) clone() *Blob {
	c := *b
	c.Achievements = make(map[string]State, len(b.Achievements))
	for id, st := range b.Achievements {
		if st.UnlockedAt != nil {
			at := *st.UnlockedAt
			st.UnlockedAt = &at
		}
		c.Achievements[id] = st
	}
	c.Progress.PowerUpsByType = make(map[core.PowerUpType]int, len(b.Progress.PowerUpsByType))
	for t, n := range b.Progress.PowerUpsByType {
		c.Progress.PowerUpsByType[t] = n
	}
	c.Notifications = append([]Notification(nil), b.Notifications...)
	return &c
}
