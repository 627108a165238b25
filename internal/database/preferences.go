package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"strconv"

	"github.com/akyairhashvil/sandglass/internal/config"
	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/util"
)

// LoadPreferences reads the stored preferences. Missing or malformed values
// fall back to their defaults one key at a time.
func (d *Database) LoadPreferences(ctx context.Context) models.Preferences {
	p := models.DefaultPreferences()
	log := util.Logger()

	if raw, ok := d.GetSetting(ctx, config.SettingSoundsEnabled); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			p.SoundsEnabled = v
		} else {
			log.Warn().Str("key", config.SettingSoundsEnabled).Str("value", raw).Msg("ignoring malformed setting")
		}
	}
	if raw, ok := d.GetSetting(ctx, config.SettingAlertFinish); ok {
		if v, err := strconv.ParseBool(raw); err == nil {
			p.AlertFinish = v
		} else {
			log.Warn().Str("key", config.SettingAlertFinish).Str("value", raw).Msg("ignoring malformed setting")
		}
	}
	if raw, ok := d.GetSetting(ctx, config.SettingDuration); ok {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			p.Duration = v
		} else {
			log.Warn().Str("key", config.SettingDuration).Str("value", raw).Msg("ignoring malformed setting")
		}
	}
	if raw, ok := d.GetSetting(ctx, config.SettingAlertTimes); ok {
		if times, err := decodeAlertTimes(raw); err == nil {
			p.AlertTimes = times
		} else {
			log.Warn().Err(err).Str("key", config.SettingAlertTimes).Msg("ignoring malformed setting")
		}
	}
	return p
}

// SavePreferences writes every preference key in one transaction.
func (d *Database) SavePreferences(ctx context.Context, p models.Preferences) error {
	times, err := json.Marshal(cleanAlertTimes(p.AlertTimes))
	if err != nil {
		return wrapSettingErr("encode", config.SettingAlertTimes, err)
	}
	return d.WithTx(ctx, func(tx *sql.Tx) error {
		values := [][2]string{
			{config.SettingSoundsEnabled, strconv.FormatBool(p.SoundsEnabled)},
			{config.SettingAlertTimes, string(times)},
			{config.SettingAlertFinish, strconv.FormatBool(p.AlertFinish)},
			{config.SettingDuration, strconv.Itoa(p.Duration)},
		}
		for _, kv := range values {
			if err := setSettingTx(ctx, tx, kv[0], kv[1]); err != nil {
				return err
			}
		}
		return nil
	})
}

func decodeAlertTimes(raw string) ([]int, error) {
	var times []int
	if err := json.Unmarshal([]byte(raw), &times); err != nil {
		return nil, err
	}
	return cleanAlertTimes(times), nil
}

// cleanAlertTimes drops non-positive and repeated values, keeping order.
func cleanAlertTimes(in []int) []int {
	seen := make(map[int]bool, len(in))
	out := make([]int, 0, len(in))
	for _, t := range in {
		if t <= 0 || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
