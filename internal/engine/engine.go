// Package engine implements the sandglass countdown state machine.
//
// The engine holds no goroutines or timers. Hosts drive it by calling Tick
// with the time elapsed since the previous tick while Snapshot().Running is
// true, and by forwarding user controls to Start, Pause, Reset, Flip and
// SetDuration. An Engine is not safe for concurrent use.
package engine

import (
	"errors"
	"slices"
	"time"
)

// ErrInvalidDuration is returned by New and SetDuration for non-positive durations.
var ErrInvalidDuration = errors.New("invalid duration")

// Snapshot is the read-only view consumed by renderers.
type Snapshot struct {
	Remaining time.Duration
	Total     time.Duration
	Running   bool
	Flipped   bool
}

// Fraction returns the share of the total still remaining, in [0, 1].
func (s Snapshot) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Remaining) / float64(s.Total)
}

// Elapsed returns how much of the total has run out.
func (s Snapshot) Elapsed() time.Duration {
	return s.Total - s.Remaining
}

type Engine struct {
	total     time.Duration
	remaining time.Duration
	running   bool
	flipped   bool

	// triggered holds thresholds already fired in the current epoch.
	triggered map[time.Duration]bool

	alerts     AlertConfig
	thresholds []time.Duration
	sink       AlertSink
}

// New creates a stopped engine counting down from initial. sink may be nil.
func New(initial time.Duration, sink AlertSink) (*Engine, error) {
	if initial <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Engine{
		total:     initial,
		remaining: initial,
		triggered: make(map[time.Duration]bool),
		sink:      sink,
	}, nil
}

// SetAlertConfig replaces the alert configuration. Thresholds already fired
// in the current epoch stay fired.
func (e *Engine) SetAlertConfig(cfg AlertConfig) {
	cfg.AlertTimes = slices.Clone(cfg.AlertTimes)
	e.alerts = cfg
	e.thresholds = normalizeThresholds(cfg.AlertTimes)
}

func (e *Engine) AlertConfig() AlertConfig {
	cfg := e.alerts
	cfg.AlertTimes = slices.Clone(cfg.AlertTimes)
	return cfg
}

func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Remaining: e.remaining,
		Total:     e.total,
		Running:   e.running,
		Flipped:   e.flipped,
	}
}

// Triggered reports whether threshold t has fired in the current epoch.
func (e *Engine) Triggered(t time.Duration) bool {
	return e.triggered[t]
}

// Start begins the countdown. It reports whether the engine transitioned to
// running; it is a no-op when already running or when no time is left.
func (e *Engine) Start() bool {
	if e.running || e.remaining <= 0 {
		return false
	}
	e.running = true
	return true
}

// Pause stops the countdown, keeping the remaining time.
func (e *Engine) Pause() {
	e.running = false
}

// Reset refills the glass from the current total and starts a new epoch.
func (e *Engine) Reset() {
	e.running = false
	e.remaining = e.total
	e.flipped = false
	e.newEpoch()
}

// Flip turns the glass over: the elapsed time becomes the remaining time.
// A running countdown keeps running unless the flip leaves nothing to count.
func (e *Engine) Flip() {
	e.flipped = !e.flipped
	e.remaining = e.total - e.remaining
	if e.remaining <= 0 {
		e.remaining = 0
		e.running = false
	}
	e.newEpoch()
}

// SetDuration replaces the total, stops the countdown and starts a new epoch.
// Non-positive values are rejected and leave the state untouched.
func (e *Engine) SetDuration(d time.Duration) error {
	if d <= 0 {
		return ErrInvalidDuration
	}
	e.total = d
	e.remaining = d
	e.running = false
	e.flipped = false
	e.newEpoch()
	return nil
}

// Tick advances a running countdown by delta and returns the alerts that
// fired, after handing each of them to the sink. Ticks delivered while
// paused, after the countdown has finished, or with a non-positive delta
// are ignored.
func (e *Engine) Tick(delta time.Duration) []Alert {
	if !e.running || e.remaining <= 0 || delta <= 0 {
		return nil
	}
	prev := e.remaining
	next := prev - delta
	if next < 0 {
		next = 0
	}

	var fired []Alert
	if e.alerts.Enabled {
		for _, t := range e.thresholds {
			if prev > t && t >= next && !e.triggered[t] {
				e.triggered[t] = true
				fired = append(fired, Alert{Kind: AlertThreshold, Threshold: t, Tones: ThresholdTones()})
			}
		}
	}
	if next == 0 {
		e.running = false
		if e.alerts.Enabled && e.alerts.AlertFinish {
			fired = append(fired, Alert{Kind: AlertFinish, Tones: FinishTones()})
		}
	}
	e.remaining = next

	if e.sink != nil {
		for _, a := range fired {
			e.sink.Play(a)
		}
	}
	return fired
}

func (e *Engine) newEpoch() {
	clear(e.triggered)
}
