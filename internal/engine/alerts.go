package engine

import (
	"sort"
	"time"
)

// AlertKind distinguishes threshold cues from the end-of-countdown cue.
type AlertKind int

const (
	AlertThreshold AlertKind = iota
	AlertFinish
)

func (k AlertKind) String() string {
	switch k {
	case AlertThreshold:
		return "threshold"
	case AlertFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// Tone is one beep of an alert sequence. Offset is measured from the tick
// that triggered the alert.
type Tone struct {
	Frequency float64
	Duration  time.Duration
	Offset    time.Duration
}

// Alert is emitted by Tick when a threshold is crossed or the countdown ends.
type Alert struct {
	Kind      AlertKind
	Threshold time.Duration // zero for AlertFinish
	Tones     []Tone
}

// AlertSink receives alerts as they fire. Implementations must not block.
type AlertSink interface {
	Play(Alert)
}

// AlertConfig is supplied by the caller; the engine never mutates it.
type AlertConfig struct {
	Enabled     bool
	AlertTimes  []time.Duration
	AlertFinish bool
}

// ThresholdTones returns the two-beep cue played when a threshold is crossed.
func ThresholdTones() []Tone {
	return []Tone{
		{Frequency: 800, Duration: 200 * time.Millisecond, Offset: 0},
		{Frequency: 800, Duration: 200 * time.Millisecond, Offset: 250 * time.Millisecond},
	}
}

// FinishTones returns the three-beep cue played when the countdown reaches zero.
func FinishTones() []Tone {
	return []Tone{
		{Frequency: 1200, Duration: 300 * time.Millisecond, Offset: 0},
		{Frequency: 1200, Duration: 300 * time.Millisecond, Offset: 350 * time.Millisecond},
		{Frequency: 1200, Duration: 500 * time.Millisecond, Offset: 700 * time.Millisecond},
	}
}

// normalizeThresholds drops non-positive and duplicate values and orders the
// rest from largest to smallest, the order in which a countdown meets them.
func normalizeThresholds(in []time.Duration) []time.Duration {
	seen := make(map[time.Duration]bool, len(in))
	out := make([]time.Duration, 0, len(in))
	for _, t := range in {
		if t <= 0 || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] > out[j] })
	return out
}
