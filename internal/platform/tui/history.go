package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tetris-net/internal/journal"
)

const historyLimit = 100

// HistorySource is the part of the journal the history screen reads.
type HistorySource interface {
	Games(limit int) ([]journal.GameSummary, error)
	Recent(limit int) ([]journal.Event, error)
}

// HistoryKeyMap defines the key bindings of the history screen.
type HistoryKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Tab  key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Tab, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Tab, k.Quit}}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "games/events"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

type historyView int

const (
	viewGames historyView = iota
	viewEvents
)

// HistoryModel browses the board journal.
type HistoryModel struct {
	src    HistorySource
	view   historyView
	table  table.Model
	help   help.Model
	keys   HistoryKeyMap
	err    error
	width  int
	height int
}

// NewHistoryModel creates a history screen of the given size.
func NewHistoryModel(src HistorySource, width, height int) HistoryModel {
	m := HistoryModel{
		src:    src,
		help:   help.New(),
		keys:   DefaultHistoryKeyMap(),
		width:  width,
		height: height,
	}
	m.load()
	return m
}

// load rebuilds the table for the current view.
func (m *HistoryModel) load() {
	var (
		columns []table.Column
		rows    []table.Row
	)

	switch m.view {
	case viewGames:
		columns = []table.Column{
			{Title: "Game", Width: 10},
			{Title: "Started", Width: 14},
			{Title: "Locks", Width: 6},
			{Title: "Lines", Width: 6},
			{Title: "Status", Width: 10},
		}
		games, err := m.src.Games(historyLimit)
		m.err = err
		for _, g := range games {
			status := "playing"
			if g.Over {
				status = "game over"
			}
			rows = append(rows, table.Row{
				shortID(g.Game),
				g.StartedAt.Local().Format("Jan 02 15:04"),
				fmt.Sprintf("%d", g.Locks),
				fmt.Sprintf("%d", g.Lines),
				status,
			})
		}
	case viewEvents:
		columns = []table.Column{
			{Title: "Time", Width: 14},
			{Title: "Game", Width: 10},
			{Title: "Event", Width: 10},
			{Title: "Piece", Width: 6},
			{Title: "At", Width: 8},
			{Title: "Lines", Width: 6},
		}
		events, err := m.src.Recent(historyLimit)
		m.err = err
		for _, e := range events {
			at := ""
			if e.Kind != journal.KindReset {
				at = fmt.Sprintf("%d,%d", e.X, e.Y)
			}
			rows = append(rows, table.Row{
				e.CreatedAt.Local().Format("Jan 02 15:04"),
				shortID(e.Game),
				string(e.Kind),
				e.Piece,
				at,
				fmt.Sprintf("%d", e.Lines),
			})
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)
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
	m.table = t
}

// Rows returns the number of rows in the current view.
func (m HistoryModel) Rows() int {
	return len(m.table.Rows())
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history screen.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.load()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history screen.
func (m HistoryModel) View() string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTab := lipgloss.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := []string{"Games", "Events"}
	for i := range tabs {
		if historyView(i) == m.view {
			tabs[i] = activeTab.Render(tabs[i])
		} else {
			tabs[i] = tabStyle.Render(tabs[i])
		}
	}

	b.WriteString(titleStyle.Render("BOARD HISTORY"))
	b.WriteString("  ")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(box.Render("Could not read the journal:\n" + m.err.Error()))
	case m.Rows() == 0:
		empty := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
		b.WriteString(box.Render(empty.Render("No board events recorded yet.")))
	default:
		b.WriteString(box.Render(m.table.View()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// RunHistory runs the history screen.
func RunHistory(src HistorySource, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(src, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
