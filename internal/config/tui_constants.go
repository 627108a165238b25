package config

// Layout constants.
const (
	// BulbRows is the number of rows in each bulb.
	BulbRows = 6

	// MinProgressWidth is the narrowest progress bar drawn.
	MinProgressWidth = 20

	// MaxProgressWidth caps the progress bar on wide terminals.
	MaxProgressWidth = 50

	// CompactModeThreshold hides the hourglass below this height.
	CompactModeThreshold = 22
)

// Input constraints.
const (
	// MaxCustomMinutes bounds the custom duration input.
	MaxCustomMinutes = 24 * 60

	// MaxAlertTimesLength is the character limit of the alert times input.
	MaxAlertTimesLength = 40

	// MaxReportSessions is the number of sessions included in a report.
	MaxReportSessions = 200
)
