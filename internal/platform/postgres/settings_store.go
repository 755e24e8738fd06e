package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// SettingsStore implements the store.SettingsStore interface using a
// PostgreSQL database as the storage backend. The interval table and
// heavy-day list are stored as JSONB so the schema does not need a row
// per difficulty tier.
type SettingsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSettingsStore creates a new PostgreSQL implementation of the
// SettingsStore interface. If logger is nil, a default logger will be used.
func NewSettingsStore(db store.DBTX, logger *slog.Logger) *SettingsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SettingsStore{
		db:     db,
		logger: logger.With(slog.String("component", "settings_store")),
	}
}

var _ store.SettingsStore = (*SettingsStore)(nil)

// Get implements store.SettingsStore.Get.
// Returns store.ErrSettingsNotFound if the user has never saved settings.
func (s *SettingsStore) Get(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT user_id, daily_limit, intervals, pace_mode, heavy_days, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings domain.UserSettings
	var paceMode string
	var intervalsJSON, heavyDaysJSON []byte

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&settings.UserID,
		&settings.DailyLimit,
		&intervalsJSON,
		&paceMode,
		&heavyDaysJSON,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user settings not found",
				slog.String("user_id", userID.String()))
			return nil, store.ErrSettingsNotFound
		}
		log.Error("failed to get user settings",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	settings.PaceMode = domain.PaceMode(paceMode)
	if err := json.Unmarshal(intervalsJSON, &settings.Intervals); err != nil {
		log.Error("failed to decode interval table",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to decode interval table: %w", err)
	}
	if err := json.Unmarshal(heavyDaysJSON, &settings.HeavyDays); err != nil {
		log.Error("failed to decode heavy days",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, fmt.Errorf("failed to decode heavy days: %w", err)
	}

	return &settings, nil
}

// Upsert implements store.SettingsStore.Upsert.
func (s *SettingsStore) Upsert(ctx context.Context, settings *domain.UserSettings) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := settings.Validate(); err != nil {
		log.Warn("settings validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	intervalsJSON, err := json.Marshal(settings.Intervals)
	if err != nil {
		return fmt.Errorf("failed to encode interval table: %w", err)
	}
	heavyDays := settings.HeavyDays
	if heavyDays == nil {
		heavyDays = []int{}
	}
	heavyDaysJSON, err := json.Marshal(heavyDays)
	if err != nil {
		return fmt.Errorf("failed to encode heavy days: %w", err)
	}

	settings.UpdatedAt = time.Now().UTC()
	if settings.CreatedAt.IsZero() {
		settings.CreatedAt = settings.UpdatedAt
	}

	query := `
		INSERT INTO user_settings (user_id, daily_limit, intervals, pace_mode, heavy_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id) DO UPDATE
		SET daily_limit = EXCLUDED.daily_limit,
		    intervals = EXCLUDED.intervals,
		    pace_mode = EXCLUDED.pace_mode,
		    heavy_days = EXCLUDED.heavy_days,
		    updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(
		ctx,
		query,
		settings.UserID,
		settings.DailyLimit,
		intervalsJSON,
		settings.PaceMode,
		heavyDaysJSON,
		settings.CreatedAt,
		settings.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during settings upsert",
				slog.String("user_id", settings.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, settings.UserID)
		}
		log.Error("failed to upsert user settings",
			slog.String("error", err.Error()),
			slog.String("user_id", settings.UserID.String()))
		return MapError(err)
	}

	log.Info("user settings saved",
		slog.String("user_id", settings.UserID.String()),
		slog.String("pace_mode", string(settings.PaceMode)))
	return nil
}

// WithTx implements store.SettingsStore.WithTx.
func (s *SettingsStore) WithTx(tx *sql.Tx) store.SettingsStore {
	return &SettingsStore{
		db:     tx,
		logger: s.logger,
	}
}
