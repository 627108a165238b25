// Package audio turns engine alerts into tones.
package audio

import (
	"io"
	"sync"
	"time"
)

// ToneEmitter produces a single tone. Calls are fire-and-forget.
//
//go:generate mockgen -source=emitter.go -destination=mock_emitter_test.go -package=audio
type ToneEmitter interface {
	EmitTone(frequency float64, d time.Duration)
}

// Bell rings the terminal bell once per tone. Terminals cannot vary pitch or
// length, so frequency and duration are ignored.
type Bell struct {
	mu sync.Mutex
	w  io.Writer
}

func NewBell(w io.Writer) *Bell {
	return &Bell{w: w}
}

func (b *Bell) EmitTone(frequency float64, d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, _ = io.WriteString(b.w, "\a")
}

// Discard drops every tone.
type Discard struct{}

func (Discard) EmitTone(float64, time.Duration) {}
