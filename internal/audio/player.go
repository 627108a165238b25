package audio

import (
	"context"
	"io"
	"sync"

	"github.com/akyairhashvil/sandglass/internal/clock"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/akyairhashvil/sandglass/internal/util"
)

// Player schedules each tone of an alert at its offset. It owns the emitter
// and releases it on Close.
type Player struct {
	mu      sync.Mutex
	clock   clock.Clock
	emitter ToneEmitter
	pending map[int]clock.Timer
	nextID  int
	closed  bool
	// idle is closed when the last pending tone has been emitted.
	idle chan struct{}
}

var _ engine.AlertSink = (*Player)(nil)

func NewPlayer(c clock.Clock, emitter ToneEmitter) *Player {
	if c == nil {
		c = clock.System
	}
	return &Player{
		clock:   c,
		emitter: emitter,
		pending: make(map[int]clock.Timer),
	}
}

func (p *Player) Play(a engine.Alert) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	util.Logger().Debug().
		Str("kind", a.Kind.String()).
		Dur("threshold", a.Threshold).
		Int("tones", len(a.Tones)).
		Msg("alert")
	for _, tone := range a.Tones {
		if len(p.pending) == 0 {
			p.idle = make(chan struct{})
		}
		p.nextID++
		id := p.nextID
		tone := tone
		p.pending[id] = p.clock.AfterFunc(tone.Offset, func() {
			p.mu.Lock()
			_, live := p.pending[id]
			emitter := p.emitter
			p.mu.Unlock()
			if live {
				emitter.EmitTone(tone.Frequency, tone.Duration)
			}
			p.mu.Lock()
			p.done(id)
			p.mu.Unlock()
		})
	}
}

// done drops a finished tone and wakes Wait callers once nothing is left.
// Callers hold p.mu.
func (p *Player) done(id int) {
	delete(p.pending, id)
	if len(p.pending) == 0 && p.idle != nil {
		close(p.idle)
		p.idle = nil
	}
}

// Wait blocks until every scheduled tone has been emitted or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	p.mu.Lock()
	idle := p.idle
	p.mu.Unlock()
	if idle == nil {
		return nil
	}
	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Pending returns the number of tones scheduled or still being emitted.
func (p *Player) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Close cancels scheduled tones and closes the emitter when it holds a
// resource. Further alerts are dropped.
func (p *Player) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	for id, t := range p.pending {
		t.Stop()
		p.done(id)
	}
	emitter := p.emitter
	p.mu.Unlock()

	if c, ok := emitter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
