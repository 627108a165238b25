package tui

import (
	"fmt"
	"time"
)

func secondsDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

// formatElapsed renders a session length for reports, e.g. "3m 05s".
func formatElapsed(d time.Duration) string {
	total := int(d.Round(time.Second) / time.Second)
	if total < 0 {
		total = 0
	}
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	return fmt.Sprintf("%dm %02ds", m, s)
}
