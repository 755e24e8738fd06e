package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// SettingsStore defines the interface for user settings persistence.
type SettingsStore interface {
	// Get retrieves the settings row for a user.
	// Returns ErrSettingsNotFound if the user has never saved settings;
	// callers fall back to domain defaults in that case.
	Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// Upsert creates or replaces the settings row for a user.
	// Returns ErrInvalidEntity wrapping the validation error if the
	// settings fail domain validation.
	Upsert(ctx context.Context, settings *domain.UserSettings) error

	// WithTx returns a SettingsStore bound to the given transaction.
	WithTx(tx *sql.Tx) SettingsStore
}
