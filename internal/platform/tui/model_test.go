package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/skydash/internal/achievements"
	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
	"github.com/vovakirdan/skydash/internal/storage"
)

const frame = 16 * time.Millisecond

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Config.Canvas.Width == 0 {
		opts.Config = config.Default()
	}
	if opts.Runtime.ScreenW == 0 {
		opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 26, TickRate: 60, Seed: 1}
	}
	m := NewModel(opts)
	m.Init()
	t.Cleanup(m.Close)
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want core.Action
	}{
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFlap},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, core.ActionFlap},
		{"w", runeKey("w"), core.ActionFlap},
		{"p", runeKey("p"), core.ActionPause},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionPause},
		{"r", runeKey("r"), core.ActionRestart},
		{"q", runeKey("q"), core.ActionQuit},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{"x", runeKey("x"), core.ActionNone},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestFirstTickOnlyBaselines(t *testing.T) {
	m := newTestModel(t, Options{})
	t0 := time.Unix(1000, 0)

	m, _ = update(t, m, TickMsg(t0))
	if m.world.Elapsed() != 0 {
		t.Fatalf("first tick should not simulate, elapsed %v", m.world.Elapsed())
	}

	m, cmd := update(t, m, TickMsg(t0.Add(frame)))
	if m.world.Elapsed() != frame {
		t.Errorf("elapsed = %v, expected %v", m.world.Elapsed(), frame)
	}
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestBlurSuspendsSimulation(t *testing.T) {
	m := newTestModel(t, Options{})
	t0 := time.Unix(1000, 0)

	m, _ = update(t, m, TickMsg(t0))
	m, _ = update(t, m, TickMsg(t0.Add(frame)))
	before := m.world.Elapsed()

	m, _ = update(t, m, tea.BlurMsg{})
	m, _ = update(t, m, TickMsg(t0.Add(time.Second)))
	m, _ = update(t, m, TickMsg(t0.Add(2*time.Second)))
	if m.world.Elapsed() != before {
		t.Fatalf("simulation advanced while blurred: %v -> %v", before, m.world.Elapsed())
	}

	m, _ = update(t, m, tea.FocusMsg{})
	m, _ = update(t, m, TickMsg(t0.Add(3*time.Second)))
	m, _ = update(t, m, TickMsg(t0.Add(3*time.Second+frame)))
	if got := m.world.Elapsed(); got != before+frame {
		t.Errorf("elapsed after focus = %v, expected %v", got, before+frame)
	}
}

func TestRunSavedOnceOnDeath(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m := newTestModel(t, Options{Store: store, Player: "ana"})
	now := time.Unix(1000, 0)
	for i := 0; i < 2000 && !m.State().GameOver; i++ {
		m, _ = update(t, m, TickMsg(now))
		now = now.Add(frame)
	}
	if !m.State().GameOver {
		t.Fatal("flyer should die without flapping")
	}
	// More ticks after game over must not record the run again
	for i := 0; i < 5; i++ {
		m, _ = update(t, m, TickMsg(now))
		now = now.Add(frame)
	}

	runs, err := store.TopRuns("ana", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 saved run, got %d", len(runs))
	}
	if runs[0].DeathCause == "" || runs[0].DeathCause == "none" {
		t.Errorf("death cause not recorded: %+v", runs[0])
	}
	if runs[0].Seed != 1 {
		t.Errorf("seed = %d, expected 1", runs[0].Seed)
	}

	m, _ = update(t, m, runeKey("r"))
	if m.State().GameOver {
		t.Error("restart should begin a new run")
	}
}

func TestRestartIgnoredWhileAlive(t *testing.T) {
	m := newTestModel(t, Options{})
	seed := m.world.Seed()
	m, _ = update(t, m, runeKey("r"))
	if m.world.Seed() != seed {
		t.Error("restart should only apply after game over")
	}
}

func TestQuitEndsSession(t *testing.T) {
	engine := achievements.NewEngine(nil, config.Default().Achievements, nil)
	m := newTestModel(t, Options{Engine: engine})

	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil || !m.Quitting() {
		t.Fatal("q should quit")
	}
	if engine.Progress().Session.Active {
		t.Error("quitting should end the achievement session")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestToastsScheduledForUnseenNotifications(t *testing.T) {
	defs := achievements.NewDefinitions(achievements.Definition{
		ID: "first_flight", Name: "First Flight", Points: 5,
		Requirement: achievements.GamesPlayed{Count: 1},
	})
	engine := achievements.NewEngine(nil, config.Default().Achievements, nil, achievements.WithDefinitions(defs))
	engine.StartSession()
	engine.EndSession(0)

	m := newTestModel(t, Options{Engine: engine})
	m, _ = update(t, m, TickMsg(time.Unix(1000, 0)))

	if got := m.dismisser.Pending(); got != 1 {
		t.Fatalf("pending toasts = %d, expected 1", got)
	}
	if !strings.Contains(m.View(), "First Flight") {
		t.Error("view should show the unlocked toast")
	}

	// A second tick must not re-arm the same toast
	m, _ = update(t, m, TickMsg(time.Unix(1000, 0).Add(frame)))
	if got := m.dismisser.Pending(); got != 1 {
		t.Errorf("pending toasts = %d, expected 1", got)
	}

	m.Close()
	if m.dismisser.Pending() != 0 {
		t.Error("Close should cancel toast timers")
	}
}

func TestBoardToggle(t *testing.T) {
	m := newTestModel(t, Options{})
	tab := tea.KeyMsg{Type: tea.KeyTab}

	m, _ = update(t, m, tab)
	if !m.showBoard || !m.State().Paused {
		t.Fatal("tab should open the board and pause the run")
	}
	if !strings.Contains(m.View(), "Achievements") {
		t.Error("board should list achievements")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.board.tab != tabRuns {
		t.Error("right should switch to the runs tab")
	}

	m, _ = update(t, m, tab)
	if m.showBoard {
		t.Error("tab should close the board")
	}
}

func TestResizeKeepsRun(t *testing.T) {
	m := newTestModel(t, Options{})
	seed := m.world.Seed()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	if m.screen.Width() != 120 || m.screen.Height() != 40-footerLines {
		t.Errorf("screen = %dx%d", m.screen.Width(), m.screen.Height())
	}
	if m.world.Seed() != seed || m.State().GameOver {
		t.Error("resize should not restart the run")
	}
}
