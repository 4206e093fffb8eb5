package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skydash/internal/achievements"
	"github.com/vovakirdan/skydash/internal/config"
	"github.com/vovakirdan/skydash/internal/core"
	"github.com/vovakirdan/skydash/internal/game"
	"github.com/vovakirdan/skydash/internal/storage"
)

const (
	footerLines   = 2 // Toast line + help line
	toastDuration = 4 * time.Second
)

// Options configures a Model.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store       // Run history; nil disables it
	Engine  *achievements.Engine // nil uses an in-memory engine
	Player  string
	Logger  *log.Logger
}

// Model is the Bubble Tea model for a skydash session.
type Model struct {
	world     *game.World
	engine    *achievements.Engine
	sched     *game.Scheduler
	screen    *core.Screen
	store     *storage.Store
	player    string
	rt        core.RuntimeConfig
	logger    *log.Logger
	input     core.InputFrame
	keys      KeyMap
	help      help.Model
	dismisser *achievements.Dismisser
	toasted   map[string]bool
	board     BoardModel

	width       int
	height      int
	showBoard   bool
	runSaved    bool
	runPowerUps int
	quitting    bool
}

// NewModel creates a new Bubble Tea model for a run.
func NewModel(opts Options) Model {
	rt := opts.Runtime
	// Use time-based seed if not specified
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	engine := opts.Engine
	if engine == nil {
		engine = achievements.NewEngine(nil, opts.Config.Achievements, logger)
	}

	playH := max(rt.ScreenH-footerLines, 1)
	world := game.NewWorld(opts.Config, core.RuntimeConfig{
		ScreenW:  rt.ScreenW,
		ScreenH:  playH,
		TickRate: rt.TickRate,
		Seed:     rt.Seed,
	}, engine)

	h := help.New()
	h.Width = rt.ScreenW

	return Model{
		world:     world,
		engine:    engine,
		sched:     game.NewScheduler(opts.Config.Scheduler.MaxDelta),
		screen:    core.NewScreen(rt.ScreenW, playH),
		store:     opts.Store,
		player:    opts.Player,
		rt:        rt,
		logger:    logger,
		input:     core.NewInputFrame(),
		keys:      DefaultKeyMap(),
		help:      h,
		dismisser: achievements.NewDismisser(toastDuration, func(id string) { engine.MarkNotificationSeen(id) }),
		toasted:   make(map[string]bool),
		board:     NewBoardModel(engine, opts.Store, opts.Player, rt.ScreenW, rt.ScreenH),
		width:     rt.ScreenW,
		height:    rt.ScreenH,
	}
}

// Init starts the first session and the tick loop.
func (m Model) Init() tea.Cmd {
	m.world.Reset(m.rt.Seed)
	m.logger.Debug("session started", "player", m.player, "seed", m.rt.Seed)
	return tickCmd(m.rt.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.FocusMsg:
		m.sched.Resume()
		return m, nil

	case tea.BlurMsg:
		m.sched.Suspend()
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	if key.Matches(msg, m.keys.Board) {
		m.showBoard = !m.showBoard
		if m.showBoard {
			if !m.world.State().GameOver {
				m.world.SetPaused(true)
			}
			m.board.Refresh()
		}
		return m, nil
	}

	if m.showBoard {
		var cmd tea.Cmd
		m.board, cmd = m.board.Update(msg)
		return m, cmd
	}

	switch action := m.keys.Action(msg); action {
	case core.ActionRestart:
		if m.world.State().GameOver {
			m.restart()
		}
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

// handleResize keeps the canvas and rescales rendering to the new size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-footerLines, 1))
	m.help.Width = msg.Width
	m.board.SetSize(msg.Width, msg.Height)
	return m, nil
}

// handleTick advances the simulation by the frame delta.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if dt, ok := m.sched.Frame(now); ok && !m.showBoard {
		result := m.world.Step(dt, m.input)
		m.input.Clear()
		m.handleEvents(result.Events)
	}
	m.scheduleToasts()
	return m, tickCmd(m.rt.TickRate)
}

func (m *Model) handleEvents(events []game.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case game.CollectedEvent:
			m.runPowerUps++
		case game.DeathEvent:
			m.saveRun(ev)
		}
	}
}

// saveRun records the finished run once.
func (m *Model) saveRun(ev game.DeathEvent) {
	if m.runSaved || m.store == nil {
		return
	}
	m.runSaved = true
	_, err := m.store.SaveRun(storage.Run{
		Player:     m.player,
		Score:      ev.Score,
		Duration:   m.world.Elapsed(),
		DeathCause: ev.Cause.String(),
		PowerUps:   m.runPowerUps,
		Seed:       m.world.Seed(),
	})
	if err != nil {
		m.logger.Warn("could not save run", "player", m.player, "error", err)
	}
}

// scheduleToasts arms a dismissal timer for every newly queued notification.
func (m *Model) scheduleToasts() {
	for _, n := range m.engine.UnseenNotifications() {
		if m.toasted[n.ID] {
			continue
		}
		m.toasted[n.ID] = true
		m.dismisser.Schedule(n.ID)
	}
}

func (m *Model) restart() {
	m.rt.Seed = time.Now().UnixNano()
	m.world.Reset(m.rt.Seed)
	m.input.Clear()
	m.runSaved = false
	m.runPowerUps = 0
	m.logger.Debug("run restarted", "player", m.player, "seed", m.rt.Seed)
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Close()
	m.quitting = true
	return m, tea.Quit
}

// Close ends the active session and stops pending toast timers. It is safe
// to call more than once.
func (m Model) Close() {
	m.world.Close()
	m.dismisser.Close()
}

// State returns the current run state.
func (m Model) State() game.State {
	return m.world.State()
}

// Quitting reports whether the model has asked the program to exit.
func (m Model) Quitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.board.View()
	}

	// Render game to screen buffer
	m.world.Render(m.screen)

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		renderToasts(m.engine.UnseenNotifications(), m.width),
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model := NewModel(opts)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),   // Use alternate screen buffer
		tea.WithReportFocus(), // Suspend ticking while unfocused
	)

	_, err := p.Run()
	model.Close()
	return err
}
