package config

import "time"

// Timer behaviour.
const (
	TickInterval    = 100 * time.Millisecond
	MaxTickDelta    = time.Second
	DefaultDuration = 180 * time.Second
)

// DefaultPresets are the duration shortcuts bound to keys 1-4, in seconds.
var DefaultPresets = []int{60, 180, 300, 600}

// DefaultAlertTimes are the thresholds, in seconds remaining, used before
// the user changes them.
var DefaultAlertTimes = []int{30, 5}

// Application settings.
const (
	AppName     = "sandglass"
	DBFileName  = "sandglass.db"
	LogFileName = "sandglass.log"
	ConfigFile  = "config.yaml"
)

// Preference keys in the settings table.
const (
	SettingSoundsEnabled = "sounds_enabled"
	SettingAlertTimes    = "alert_times"
	SettingAlertFinish   = "alert_finish"
	SettingDuration      = "duration"
)
