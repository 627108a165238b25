// Package headless runs a countdown without the TUI, printing the clock as
// plain lines. It is used when stdout is not a terminal.
package headless

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/akyairhashvil/sandglass/internal/util"
)

// Runner owns the engine for the lifetime of Run; every engine call happens
// on the goroutine executing Run.
type Runner struct {
	Engine   *engine.Engine
	Out      io.Writer
	MaxDelta time.Duration
}

// Run starts the countdown and advances it on every value received from
// ticks, until it finishes or ctx is cancelled. start is the reference time
// for the first tick.
func (r *Runner) Run(ctx context.Context, ticks <-chan time.Time, start time.Time) error {
	maxDelta := r.MaxDelta
	if maxDelta <= 0 {
		maxDelta = config.MaxTickDelta
	}
	log := util.Logger()

	r.Engine.Start()
	snap := r.Engine.Snapshot()
	if !snap.Running {
		r.printf("finished\n")
		return nil
	}
	log.Info().Dur("duration", snap.Total).Msg("headless countdown started")
	r.printf("%s\n", util.FormatClock(snap.Remaining))
	lastShown := wholeSeconds(snap.Remaining)
	last := start

	for {
		select {
		case <-ctx.Done():
			r.Engine.Pause()
			log.Info().Dur("remaining", r.Engine.Snapshot().Remaining).Msg("headless countdown interrupted")
			return ctx.Err()
		case now, ok := <-ticks:
			if !ok {
				r.Engine.Pause()
				return nil
			}
			delta := now.Sub(last)
			last = now
			if delta > maxDelta {
				delta = maxDelta
			}
			for _, a := range r.Engine.Tick(delta) {
				if a.Kind == engine.AlertThreshold {
					r.printf("alert: %s left\n", util.FormatClock(a.Threshold))
				}
			}
			snap = r.Engine.Snapshot()
			if !snap.Running {
				r.printf("finished\n")
				log.Info().Msg("headless countdown finished")
				return nil
			}
			if s := wholeSeconds(snap.Remaining); s != lastShown {
				lastShown = s
				r.printf("%s\n", util.FormatClock(snap.Remaining))
			}
		}
	}
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out == nil {
		return
	}
	_, _ = fmt.Fprintf(r.Out, format, args...)
}

func wholeSeconds(d time.Duration) int64 {
	return int64(d / time.Second)
}
