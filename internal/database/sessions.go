package database

import (
	"context"
	"time"

	"github.com/akyairhashvil/sandglass/internal/models"
	"github.com/akyairhashvil/sandglass/internal/util"
)

// RecordSession stores a finished or abandoned countdown and returns its ID.
func (d *Database) RecordSession(ctx context.Context, s models.Session) (int64, error) {
	res, err := d.DB.ExecContext(ctx, `
		INSERT INTO sessions (started_at, ended_at, duration_seconds, elapsed_seconds, flips, completed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.StartedAt.UTC(), s.EndedAt.UTC(), s.Duration.Seconds(), s.Elapsed.Seconds(), s.Flips, util.BoolToInt(s.Completed))
	if err != nil {
		return 0, wrapSessionErr("insert", 0, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, wrapSessionErr("insert", 0, err)
	}
	return id, nil
}

// ListSessions returns up to limit sessions, newest first. limit <= 0 means all.
func (d *Database) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	query := `
		SELECT id, started_at, ended_at, duration_seconds, elapsed_seconds, flips, completed
		FROM sessions
		ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := d.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrapSessionErr("list", 0, err)
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var (
			s                 models.Session
			duration, elapsed float64
			completed         int
		)
		if err := rows.Scan(&s.ID, &s.StartedAt, &s.EndedAt, &duration, &elapsed, &s.Flips, &completed); err != nil {
			return nil, wrapSessionErr("scan", 0, err)
		}
		s.Duration = secondsToDuration(duration)
		s.Elapsed = secondsToDuration(elapsed)
		s.Completed = util.IntToBool(completed)
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapSessionErr("list", 0, err)
	}
	return sessions, nil
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second)).Round(time.Millisecond)
}
