package headless

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/akyairhashvil/sandglass/internal/audio"
	"github.com/akyairhashvil/sandglass/internal/clock"
	"github.com/akyairhashvil/sandglass/internal/engine"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T, d time.Duration, alerts ...time.Duration) (*Runner, *bytes.Buffer) {
	t.Helper()
	eng, err := engine.New(d, nil)
	require.NoError(t, err)
	eng.SetAlertConfig(engine.AlertConfig{Enabled: true, AlertTimes: alerts, AlertFinish: true})
	var out bytes.Buffer
	return &Runner{Engine: eng, Out: &out}, &out
}

func feed(start time.Time, n int, step time.Duration) <-chan time.Time {
	ch := make(chan time.Time, n)
	for i := 1; i <= n; i++ {
		ch <- start.Add(time.Duration(i) * step)
	}
	return ch
}

func TestRunToCompletion(t *testing.T) {
	r, out := newRunner(t, 3*time.Second, 2*time.Second)
	start := time.Unix(100, 0)

	err := r.Run(context.Background(), feed(start, 40, 100*time.Millisecond), start)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, "0:03.0", lines[0])
	assert.Contains(t, lines, "0:02.9")
	assert.Contains(t, lines, "alert: 0:02.0 left")
	assert.Equal(t, "finished", lines[len(lines)-1])
	assert.False(t, r.Engine.Snapshot().Running)
	assert.Zero(t, r.Engine.Snapshot().Remaining)
}

func TestRunCapsLargeGaps(t *testing.T) {
	r, _ := newRunner(t, 10*time.Second)
	start := time.Unix(100, 0)
	ch := make(chan time.Time, 1)
	ch <- start.Add(time.Hour)
	close(ch)

	require.NoError(t, r.Run(context.Background(), ch, start))
	assert.Equal(t, 9*time.Second, r.Engine.Snapshot().Remaining)
	assert.False(t, r.Engine.Snapshot().Running)
}

func TestRunCancelled(t *testing.T) {
	r, _ := newRunner(t, 10*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Run(ctx, make(chan time.Time), time.Unix(0, 0))
	assert.ErrorIs(t, err, context.Canceled)
	snap := r.Engine.Snapshot()
	assert.False(t, snap.Running)
	assert.Equal(t, 10*time.Second, snap.Remaining)
}

func TestRunAlreadyEmpty(t *testing.T) {
	r, out := newRunner(t, 5*time.Second)
	r.Engine.Flip()
	require.NoError(t, r.Run(context.Background(), make(chan time.Time), time.Unix(0, 0)))
	assert.Equal(t, "finished\n", out.String())
}

func TestRunWithBellOnSharedOutput(t *testing.T) {
	var buf bytes.Buffer
	out := zerolog.SyncWriter(&buf)
	player := audio.NewPlayer(clock.System, audio.NewBell(out))
	defer player.Close()

	eng, err := engine.New(3*time.Second, player)
	require.NoError(t, err)
	eng.SetAlertConfig(engine.AlertConfig{Enabled: true, AlertTimes: []time.Duration{2 * time.Second}, AlertFinish: true})
	r := &Runner{Engine: eng, Out: out}
	start := time.Unix(100, 0)

	require.NoError(t, r.Run(context.Background(), feed(start, 40, 100*time.Millisecond), start))
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, player.Wait(ctx))

	got := buf.String()
	assert.Equal(t, 5, strings.Count(got, "\a"))
	assert.Contains(t, got, "alert: 0:02.0 left\n")
	assert.Contains(t, got, "finished\n")
}
