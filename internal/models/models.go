package models

import (
	"time"

	"github.com/akyairhashvil/sandglass/internal/config"
)

// Preferences are the user settings persisted between runs.
type Preferences struct {
	SoundsEnabled bool
	AlertTimes    []int // seconds remaining, in the order the user entered them
	AlertFinish   bool
	Duration      int // seconds
}

// DefaultPreferences returns the settings used before anything is stored.
func DefaultPreferences() Preferences {
	return Preferences{
		SoundsEnabled: true,
		AlertTimes:    append([]int(nil), config.DefaultAlertTimes...),
		AlertFinish:   true,
		Duration:      int(config.DefaultDuration / time.Second),
	}
}

// DurationValue returns the stored duration as a time.Duration.
func (p Preferences) DurationValue() time.Duration {
	return time.Duration(p.Duration) * time.Second
}

// AlertDurations converts the alert times to durations.
func (p Preferences) AlertDurations() []time.Duration {
	out := make([]time.Duration, 0, len(p.AlertTimes))
	for _, s := range p.AlertTimes {
		out = append(out, time.Duration(s)*time.Second)
	}
	return out
}

// Session is one countdown, from first start until it finished or was
// abandoned by a reset or a new duration.
type Session struct {
	ID        int64
	StartedAt time.Time
	EndedAt   time.Time
	Duration  time.Duration
	Elapsed   time.Duration
	Flips     int
	Completed bool
}

// Status returns a short label for reports.
func (s Session) Status() string {
	if s.Completed {
		return "completed"
	}
	return "abandoned"
}
