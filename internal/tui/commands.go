package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// --- Messages ---

// TickMsg carries the generation of the tick loop that scheduled it; ticks
// from a loop that was stopped are dropped.
type TickMsg struct {
	Gen int
	At  time.Time
}

type reportDoneMsg struct {
	path string
	err  error
}

func tickCmd(gen int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return TickMsg{Gen: gen, At: t} })
}
