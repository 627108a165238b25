package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akyairhashvil/sandglass/internal/util"
	_ "github.com/mattn/go-sqlite3"
)

// Database wraps the sqlite connection holding preferences and session history.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open connects to the sqlite file at path, creating it and its schema when needed.
func Open(ctx context.Context, path string) (*Database, error) {
	if err := util.EnsureParentDir(path); err != nil {
		return nil, &OpError{Op: "open", Resource: "database", Err: err}
	}
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, &OpError{Op: "open", Resource: "database", Err: err}
	}
	// One writer keeps sqlite from reporting SQLITE_BUSY under the TUI and CLI.
	conn.SetMaxOpenConns(1)
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, &OpError{Op: "ping", Resource: "database", Err: err}
	}
	d := &Database{DB: conn, dbFile: path}
	if err := d.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Path returns the file backing the database.
func (d *Database) Path() string {
	return d.dbFile
}

func (d *Database) migrate(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT
		);`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at DATETIME NOT NULL,
			ended_at DATETIME NOT NULL,
			duration_seconds REAL NOT NULL,
			elapsed_seconds REAL NOT NULL DEFAULT 0,
			flips INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0
		);`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);`,
	}
	for _, q := range queries {
		if _, err := d.DB.ExecContext(ctx, q); err != nil {
			return &OpError{Op: "migrate", Resource: "schema", Err: fmt.Errorf("%w: %s", err, q)}
		}
	}
	return nil
}

// WithTx runs fn in a transaction, rolling back when fn fails.
func (d *Database) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := d.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			util.LogError("rollback", rbErr)
		}
		return err
	}
	return tx.Commit()
}
