// Package clock abstracts wall time so tone scheduling and tick loops can be
// driven manually in tests.
package clock

import "time"

// Timer represents a scheduled callback that can be stopped.
type Timer interface {
	Stop() bool
}

// Clock provides time-related operations.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
	Now() time.Time
}

// System is the Clock backed by the standard library.
var System Clock = systemClock{}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

func (systemClock) Now() time.Time {
	return time.Now()
}
