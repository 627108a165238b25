package util

import (
	"fmt"
	"time"
)

// FormatClock renders a countdown as m:ss.d (minutes, seconds, tenths).
// Tenths are truncated so the display never shows more time than is left.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	tenths := int64(d / (100 * time.Millisecond))
	mins := tenths / 600
	secs := (tenths / 10) % 60
	return fmt.Sprintf("%d:%02d.%d", mins, secs, tenths%10)
}

// FormatMinutes renders a preset length such as "3 min" or "90 s".
func FormatMinutes(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%d min", seconds/60)
	}
	return fmt.Sprintf("%d s", seconds)
}
