package database

import (
	"context"

	"github.com/akyairhashvil/sandglass/internal/models"
)

// PreferenceRepository persists user preferences.
type PreferenceRepository interface {
	LoadPreferences(ctx context.Context) models.Preferences
	SavePreferences(ctx context.Context, p models.Preferences) error
}

// SessionRepository persists countdown history.
type SessionRepository interface {
	RecordSession(ctx context.Context, s models.Session) (int64, error)
	ListSessions(ctx context.Context, limit int) ([]models.Session, error)
}

// Repository combines all repository interfaces.
//
//go:generate mockgen -source=interface.go -destination=../tui/mock_repository_test.go -package=tui
type Repository interface {
	PreferenceRepository
	SessionRepository
}

var _ Repository = (*Database)(nil)
