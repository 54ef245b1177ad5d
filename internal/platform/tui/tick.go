// Package tui is the terminal presentation client. It renders the shared
// board and turns key presses into gateway calls, locally or over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// GravityMsg asks the model to move the active piece down.
type GravityMsg time.Time

// gravityCmd schedules the next gravity step after d.
func gravityCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return GravityMsg(t)
	})
}
