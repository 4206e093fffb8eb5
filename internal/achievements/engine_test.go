package achievements

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, store Store) (*Engine, *fakeClock) {
	t.Helper()
	clk := &fakeClock{t: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewEngine(store, config.Default().Achievements, nil, WithClock(clk.Now)), clk
}

func unlocked(e *Engine, id string) bool {
	return e.Snapshot().Achievements[id].Unlocked
}

func TestFirstPowerUpReward(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()

	points, count := e.TotalPoints(), e.UnlockedCount()
	e.CollectPowerUp(core.PowerUpMagnet)

	if !unlocked(e, "first_powerup") {
		t.Fatal("first_powerup should unlock on the first collection")
	}
	if got := e.TotalPoints() - points; got != 15 {
		t.Errorf("points gained = %d, expected 15", got)
	}
	if got := e.UnlockedCount() - count; got != 1 {
		t.Errorf("unlocked count gained = %d, expected 1", got)
	}
}

func TestFirstScoreBeforeScore10(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()

	e.UpdateScore(1)
	if !unlocked(e, "first_score") {
		t.Fatal("first_score should unlock at score 1")
	}
	if unlocked(e, "score_10") {
		t.Fatal("score_10 should not unlock at score 1")
	}
	if got := e.Snapshot().Achievements["score_10"].Progress; got != 0.1 {
		t.Errorf("score_10 progress = %v, expected 0.1", got)
	}

	for s := 2; s <= 10; s++ {
		e.UpdateScore(s)
	}
	if !unlocked(e, "score_10") {
		t.Error("score_10 should unlock at score 10")
	}

	ns := e.UnseenNotifications()
	if len(ns) < 2 || ns[0].Achievement.ID != "first_score" || ns[1].Achievement.ID != "score_10" {
		t.Errorf("notification order = %+v", ns)
	}
}

func TestUnlockIsMonotonic(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	win := config.Default().Achievements.WinScore

	for i := 0; i < 3; i++ {
		e.StartSession()
		e.EndSession(win)
	}
	if !unlocked(e, "win_streak_3") {
		t.Fatal("win_streak_3 should unlock after three wins")
	}

	e.StartSession()
	e.EndSession(0)
	if e.Progress().CurrentWinStreak != 0 {
		t.Fatal("a loss should reset the win streak")
	}
	e.EvaluateAll()

	st := e.Snapshot().Achievements["win_streak_3"]
	if !st.Unlocked || st.Progress != 1 || st.UnlockedAt == nil {
		t.Errorf("win_streak_3 reverted: %+v", st)
	}
}

func TestEvaluateAllIsIdempotent(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.UpdateScore(7)
	e.CollectPowerUp(core.PowerUpShield)
	e.TrackCloseCall()

	e.EvaluateAll()
	before := e.Snapshot()
	if n := e.EvaluateAll(); n != 0 {
		t.Errorf("second EvaluateAll() unlocked %d", n)
	}
	if after := e.Snapshot(); !reflect.DeepEqual(before, after) {
		t.Error("second EvaluateAll() changed state")
	}
}

func TestTotalsMatchUnlockedDefinitions(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.UpdateScore(30)
	e.CollectPowerUp(core.PowerUpShield)
	e.TrackPowerUpCombo([]core.PowerUpType{core.PowerUpShield, core.PowerUpTiny})
	e.EndSession(30)

	points, count := 0, 0
	for _, en := range e.All() {
		if en.State.Unlocked {
			points += en.Definition.Points
			count++
		}
	}
	if e.TotalPoints() != points || e.UnlockedCount() != count {
		t.Errorf("totals = %d/%d, expected %d/%d", e.TotalPoints(), e.UnlockedCount(), points, count)
	}
}

func TestCombos(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()

	for _, en := range e.Visible() {
		if en.Definition.Hidden {
			t.Fatalf("hidden %s should not be visible while locked", en.Definition.ID)
		}
	}

	e.EvaluateAll()
	if unlocked(e, "combo_shield_slowmo") {
		t.Fatal("combos must not unlock from numeric evaluation")
	}

	e.TrackPowerUpCombo([]core.PowerUpType{core.PowerUpSlowMo, core.PowerUpShield})
	if !unlocked(e, "combo_shield_slowmo") {
		t.Error("combo_shield_slowmo should unlock")
	}
	if unlocked(e, "combo_shield_tiny") || unlocked(e, "combo_all") {
		t.Error("unrelated combos should stay locked")
	}

	e.TrackPowerUpCombo(core.AllPowerUpTypes())
	if !unlocked(e, "combo_all") || !unlocked(e, "combo_shield_tiny") {
		t.Error("all four active should unlock combo_all and combo_shield_tiny")
	}

	found := false
	for _, en := range e.Visible() {
		if en.Definition.ID == "combo_all" {
			found = true
		}
	}
	if !found {
		t.Error("unlocked hidden achievements should be visible")
	}
}

func TestSessionLifecycle(t *testing.T) {
	e, clk := newTestEngine(t, nil)

	e.StartSession()
	clk.Advance(90 * time.Second)
	e.EndSession(12)
	e.EndSession(12)

	p := e.Progress()
	if p.GamesPlayed != 1 {
		t.Errorf("GamesPlayed = %d, expected 1", p.GamesPlayed)
	}
	if p.TotalScore != 12 || p.MaxScore != 12 {
		t.Errorf("scores total=%d max=%d, expected 12 and 12", p.TotalScore, p.MaxScore)
	}
	if p.CurrentWinStreak != 1 {
		t.Errorf("win streak = %d, expected 1 after one ended session", p.CurrentWinStreak)
	}
	if p.TotalPlayTime != 90*time.Second {
		t.Errorf("TotalPlayTime = %v, expected 90s", p.TotalPlayTime)
	}
	if p.Session.Active {
		t.Error("session should be closed")
	}
}

func TestTotalScoreCountsIncreasesOnly(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.UpdateScore(3)
	e.UpdateScore(3)
	e.UpdateScore(2)
	e.UpdateScore(5)
	e.EndSession(5)

	e.StartSession()
	e.UpdateScore(4)
	e.EndSession(4)

	if got := e.Progress().TotalScore; got != 9 {
		t.Errorf("TotalScore = %d, expected 9", got)
	}
}

func TestPlayStreak(t *testing.T) {
	e, clk := newTestEngine(t, nil)

	steps := []struct {
		advance time.Duration
		want    int
	}{
		{0, 1},
		{24 * time.Hour, 2},
		{time.Hour, 2},
		{23 * time.Hour, 3},
		{72 * time.Hour, 1},
	}
	for i, s := range steps {
		clk.Advance(s.advance)
		e.StartSession()
		e.EndSession(0)
		if got := e.Progress().CurrentPlayStreak; got != s.want {
			t.Errorf("step %d: play streak = %d, expected %d", i, got, s.want)
		}
	}
	if !unlocked(e, "play_streak_3") {
		t.Error("play_streak_3 should have unlocked")
	}
	if got := e.Progress().BestPlayStreak; got != 3 {
		t.Errorf("best play streak = %d, expected 3", got)
	}
}

func TestSessionTime(t *testing.T) {
	e, clk := newTestEngine(t, nil)
	e.StartSession()
	clk.Advance(5 * time.Minute)
	e.UpdateScore(1)
	if !unlocked(e, "session_5m") {
		t.Error("session_5m should unlock after five minutes")
	}
}

func TestScoreWithoutPowerUps(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.CollectPowerUp(core.PowerUpTiny)
	e.UpdateScore(25)
	e.EndSession(25)
	if unlocked(e, "purist_20") {
		t.Fatal("purist_20 should not unlock after a pickup")
	}

	e.StartSession()
	e.UpdateScore(20)
	if !unlocked(e, "purist_20") {
		t.Error("purist_20 should unlock at 20 without pickups")
	}
}

func TestSkillCounters(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	for i := 0; i < 10; i++ {
		e.TrackCloseCall()
		e.TrackRapidFlap()
	}
	if !unlocked(e, "close_calls_10") || !unlocked(e, "rapid_flaps_10") {
		t.Error("skill achievements should unlock at 10")
	}
	if p := e.Snapshot().Achievements["close_calls_50"].Progress; p != 0.2 {
		t.Errorf("close_calls_50 progress = %v, expected 0.2", p)
	}
}

func TestCollectPowerUpIgnoresUnknownType(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.CollectPowerUp(core.PowerUpCount)
	if e.Progress().TotalPowerUps != 0 {
		t.Error("unknown type should not be counted")
	}
}

func TestOnUnlockCallback(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	var got []string
	e.OnUnlock(func(d Definition) { got = append(got, d.ID) })

	e.StartSession()
	e.UpdateScore(1)
	if len(got) != 1 || got[0] != "first_score" {
		t.Errorf("callback ids = %v, expected [first_score]", got)
	}
}

func TestNotificationsSeen(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	e.StartSession()
	e.UpdateScore(1)

	ns := e.UnseenNotifications()
	if len(ns) != 1 || ns[0].ID == "" {
		t.Fatalf("expected one notification with an id, got %+v", ns)
	}
	if !e.MarkNotificationSeen(ns[0].ID) {
		t.Fatal("MarkNotificationSeen() should find the notification")
	}
	if len(e.UnseenNotifications()) != 0 {
		t.Error("seen notifications should not be listed")
	}
	if e.MarkNotificationSeen("missing") {
		t.Error("unknown id should report false")
	}
}

func TestPersistAcrossEngines(t *testing.T) {
	store := NewMemoryStore()
	e1, _ := newTestEngine(t, store)
	e1.StartSession()
	e1.UpdateScore(10)
	e1.CollectPowerUp(core.PowerUpSlowMo)
	e1.EndSession(10)

	e2, _ := newTestEngine(t, store)
	if e2.TotalPoints() != e1.TotalPoints() || e2.UnlockedCount() != e1.UnlockedCount() {
		t.Errorf("reloaded totals %d/%d, expected %d/%d",
			e2.TotalPoints(), e2.UnlockedCount(), e1.TotalPoints(), e1.UnlockedCount())
	}
	if got := e2.Progress().PowerUpsByType[core.PowerUpSlowMo]; got != 1 {
		t.Errorf("slowmo count = %d, expected 1", got)
	}
	if e2.Progress().Session.Active {
		t.Error("a reloaded engine should not have an active session")
	}
}

func TestCorruptBlobYieldsFreshState(t *testing.T) {
	store := NewMemoryStore()
	store.SetRaw([]byte(`{"achievements": [not json`))

	e, _ := newTestEngine(t, store)

	if e.UnlockedCount() != 0 || e.TotalPoints() != 0 {
		t.Errorf("corrupt blob should yield empty totals, got %d/%d", e.UnlockedCount(), e.TotalPoints())
	}
	snap := e.Snapshot()
	if len(snap.Achievements) != DefaultDefinitions().Len() {
		t.Errorf("fresh state has %d achievements, expected %d", len(snap.Achievements), DefaultDefinitions().Len())
	}
	for id, st := range snap.Achievements {
		if st.Unlocked || st.Progress != 0 {
			t.Errorf("%s should be locked with zero progress, got %+v", id, st)
		}
	}
	if snap.Version != BlobVersion {
		t.Errorf("version = %d, expected %d", snap.Version, BlobVersion)
	}
}

func TestSaveFailuresAreAbsorbed(t *testing.T) {
	store := NewMemoryStore()
	store.FailSaves(errors.New("disk full"))
	e, _ := newTestEngine(t, store)

	e.StartSession()
	e.UpdateScore(1)
	if !unlocked(e, "first_score") {
		t.Error("unlocks should survive a failing store")
	}
	if store.Saves() != 0 {
		t.Errorf("Saves() = %d, expected 0", store.Saves())
	}
}

func TestCustomDefinitions(t *testing.T) {
	defs := NewDefinitions(
		Definition{ID: "one", Points: 1, Requirement: GamesPlayed{Count: 1}},
		Definition{ID: "two", Points: 2, Requirement: GamesPlayed{Count: 2}},
	)
	e := NewEngine(nil, config.Default().Achievements, nil, WithDefinitions(defs))
	e.StartSession()
	e.EndSession(0)
	e.StartSession()

	if e.TotalPoints() != 3 || e.UnlockedCount() != 2 {
		t.Errorf("totals = %d/%d, expected 3/2", e.TotalPoints(), e.UnlockedCount())
	}
	if _, ok := e.Definition("two"); !ok {
		t.Error("Definition(two) should exist")
	}
}
