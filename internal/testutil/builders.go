package testutil

import (
	"time"

	"github.com/akyairhashvil/sandglass/internal/models"
)

// PreferencesBuilder provides fluent API for creating test preferences.
type PreferencesBuilder struct {
	prefs models.Preferences
}

func NewPreferences() *PreferencesBuilder {
	return &PreferencesBuilder{prefs: models.DefaultPreferences()}
}

func (b *PreferencesBuilder) WithSounds(enabled bool) *PreferencesBuilder {
	b.prefs.SoundsEnabled = enabled
	return b
}

func (b *PreferencesBuilder) WithAlertTimes(seconds ...int) *PreferencesBuilder {
	b.prefs.AlertTimes = append([]int{}, seconds...)
	return b
}

func (b *PreferencesBuilder) WithFinish(enabled bool) *PreferencesBuilder {
	b.prefs.AlertFinish = enabled
	return b
}

func (b *PreferencesBuilder) WithDuration(seconds int) *PreferencesBuilder {
	b.prefs.Duration = seconds
	return b
}

func (b *PreferencesBuilder) Build() models.Preferences {
	p := b.prefs
	p.AlertTimes = append([]int{}, b.prefs.AlertTimes...)
	return p
}

// SessionBuilder provides fluent API for creating test sessions.
type SessionBuilder struct {
	session models.Session
}

func NewSession() *SessionBuilder {
	start := time.Now().UTC().Truncate(time.Second)
	return &SessionBuilder{
		session: models.Session{
			StartedAt: start,
			EndedAt:   start.Add(time.Minute),
			Duration:  time.Minute,
		},
	}
}

// StartedAt moves the session, keeping its length.
func (b *SessionBuilder) StartedAt(t time.Time) *SessionBuilder {
	length := b.session.EndedAt.Sub(b.session.StartedAt)
	b.session.StartedAt = t
	b.session.EndedAt = t.Add(length)
	return b
}

func (b *SessionBuilder) WithDuration(d time.Duration) *SessionBuilder {
	b.session.Duration = d
	return b
}

func (b *SessionBuilder) WithElapsed(d time.Duration) *SessionBuilder {
	b.session.Elapsed = d
	return b
}

func (b *SessionBuilder) WithFlips(n int) *SessionBuilder {
	b.session.Flips = n
	return b
}

// Completed marks the session as run to zero, with elapsed equal to duration.
func (b *SessionBuilder) Completed() *SessionBuilder {
	b.session.Completed = true
	b.session.Elapsed = b.session.Duration
	return b
}

func (b *SessionBuilder) Build() models.Session {
	return b.session
}
