package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/skydash/internal/achievements"
	"github.com/vovakirdan/skydash/internal/storage"
)

// Board layout constants
const (
	boardChrome = 8  // Header, tabs, help and margins
	maxRuns     = 50 // Max runs to load
)

// boardTab selects what the board lists.
type boardTab int

const (
	tabAchievements boardTab = iota
	tabRuns
	tabCount
)

func (t boardTab) String() string {
	switch t {
	case tabAchievements:
		return "Achievements"
	case tabRuns:
		return "Best Runs"
	default:
		return ""
	}
}

// BoardKeyMap defines the key bindings for the board.
type BoardKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Close key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k BoardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Close}
}

// FullHelp returns key bindings for the full help view.
func (k BoardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Left, k.Right, k.Close},
	}
}

// DefaultBoardKeyMap returns default key bindings.
func DefaultBoardKeyMap() BoardKeyMap {
	return BoardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev tab"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next tab"),
		),
		Close: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "back to game"),
		),
	}
}

// BoardModel lists achievements and the player's best runs.
type BoardModel struct {
	engine *achievements.Engine
	store  *storage.Store
	player string
	tab    boardTab
	rows   []table.Row
	table  table.Model
	help   help.Model
	keys   BoardKeyMap
	width  int
	height int
}

// NewBoardModel creates a new board model.
func NewBoardModel(engine *achievements.Engine, store *storage.Store, player string, width, height int) BoardModel {
	m := BoardModel{
		engine: engine,
		store:  store,
		player: player,
		help:   help.New(),
		keys:   DefaultBoardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m
}

// createTable creates a table with columns for the current tab.
func (m *BoardModel) createTable() table.Model {
	var columns []table.Column
	switch m.tab {
	case tabRuns:
		columns = []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Cause", Width: 10},
			{Title: "Date", Width: 14},
		}
	default:
		descWidth := max(m.width-4-36, 10)
		columns = []table.Column{
			{Title: " ", Width: 2},
			{Title: "Name", Width: 18},
			{Title: "Pts", Width: 5},
			{Title: "Done", Width: 5},
			{Title: "Description", Width: descWidth},
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-boardChrome, 3)),
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Refresh reloads the rows for the current tab.
func (m *BoardModel) Refresh() {
	switch m.tab {
	case tabRuns:
		m.rows = m.runRows()
	default:
		m.rows = m.achievementRows()
	}
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *BoardModel) achievementRows() []table.Row {
	if m.engine == nil {
		return nil
	}
	entries := m.engine.Visible()
	rows := make([]table.Row, len(entries))
	for i, en := range entries {
		mark := "·"
		if en.State.Unlocked {
			mark = "★"
		}
		rows[i] = table.Row{
			mark,
			en.Definition.Name,
			fmt.Sprintf("%d", en.Definition.Points),
			fmt.Sprintf("%3.0f%%", en.State.Progress*100),
			en.Definition.Description,
		}
	}
	return rows
}

func (m *BoardModel) runRows() []table.Row {
	if m.store == nil {
		return nil
	}
	runs, err := m.store.TopRuns(m.player, maxRuns)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.Duration.Round(100 * time.Millisecond).String(),
			r.DeathCause,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// SetSize updates the layout for a new terminal size.
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
	m.table = m.createTable()
	m.table.SetRows(m.rows)
}

// Update handles key messages for the board.
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Right):
			m.switchTab((m.tab + 1) % tabCount)
			return m, nil

		case key.Matches(msg, m.keys.Left):
			m.switchTab((m.tab + tabCount - 1) % tabCount)
			return m, nil
		}
	}

	// Pass other messages to table for scrolling
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *BoardModel) switchTab(t boardTab) {
	m.tab = t
	m.table = m.createTable()
	m.Refresh()
}

// View renders the board.
func (m BoardModel) View() string {
	var b strings.Builder

	// Title
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "SKYDASH"
	if m.engine != nil {
		title = fmt.Sprintf("SKYDASH - %d unlocked, %d points", m.engine.UnlockedCount(), m.engine.TotalPoints())
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(tableStyle.Render(m.renderTableContent()))

	// Help bar
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m BoardModel) renderTabs() string {
	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, 0, tabCount)
	for t := boardTab(0); t < tabCount; t++ {
		if t == m.tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(" "+t.String()+" "))
		}
	}
	return strings.Join(tabs, " ")
}

// renderTableContent renders the table or empty message.
func (m BoardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.tab == tabRuns {
			return emptyStyle.Render("No runs recorded yet.\nFinish a run to set a high score!")
		}
		return emptyStyle.Render("Nothing to show yet.")
	}

	return m.table.View()
}

// centerText pads text to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
