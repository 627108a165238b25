package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// bellRing is how long a frame carries the bell character. It must stay
// shorter than the gap between two tones of one alert.
const bellRing = 100 * time.Millisecond

// BellMsg asks the model to ring the terminal bell on its next frame.
type BellMsg struct{}

type bellDoneMsg struct {
	gen int
}

// ProgramBell is a tone emitter that rings the bell through a running
// program, so the bell reaches the terminal through the renderer and never
// interleaves with a frame. Tones before Attach are dropped.
type ProgramBell struct {
	prog atomic.Pointer[tea.Program]
}

func (b *ProgramBell) Attach(p *tea.Program) {
	b.prog.Store(p)
}

func (b *ProgramBell) EmitTone(float64, time.Duration) {
	if p := b.prog.Load(); p != nil {
		p.Send(BellMsg{})
	}
}

func (m Model) handleBell() (Model, tea.Cmd) {
	m.bellGen++
	m.ringing = true
	gen := m.bellGen
	return m, tea.Tick(bellRing, func(time.Time) tea.Msg { return bellDoneMsg{gen: gen} })
}
