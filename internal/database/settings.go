package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/akyairhashvil/sandglass/internal/util"
)

// GetSetting returns the stored value for key and whether it exists.
func (d *Database) GetSetting(ctx context.Context, key string) (string, bool) {
	var value *string
	err := d.DB.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			util.LogError("load setting", wrapSettingErr("get", key, err))
		}
		return "", false
	}
	if value != nil {
		return *value, true
	}
	return "", false
}

func (d *Database) SetSetting(ctx context.Context, key, value string) error {
	_, err := d.DB.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapSettingErr("set", key, err)
}

func setSettingTx(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, "INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapSettingErr("set", key, err)
}
