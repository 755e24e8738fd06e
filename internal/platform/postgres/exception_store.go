package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// ExceptionStore implements the store.ExceptionStore interface using a
// PostgreSQL database as the storage backend. The unique constraint on
// (user_id, date) backs the upsert semantics.
type ExceptionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewExceptionStore creates a new PostgreSQL implementation of the
// ExceptionStore interface. If logger is nil, a default logger will be used.
func NewExceptionStore(db store.DBTX, logger *slog.Logger) *ExceptionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ExceptionStore{
		db:     db,
		logger: logger.With(slog.String("component", "exception_store")),
	}
}

var _ store.ExceptionStore = (*ExceptionStore)(nil)

// Upsert implements store.ExceptionStore.Upsert.
func (s *ExceptionStore) Upsert(ctx context.Context, exception *domain.DayException) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := exception.Validate(); err != nil {
		log.Warn("exception validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("exception_id", exception.ID.String()))
		return err
	}

	query := `
		INSERT INTO day_exceptions (id, user_id, date, type, capacity_multiplier, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, date) DO UPDATE
		SET type = EXCLUDED.type,
		    capacity_multiplier = EXCLUDED.capacity_multiplier
	`

	_, err := s.db.ExecContext(
		ctx,
		query,
		exception.ID,
		exception.UserID,
		exception.Date,
		exception.Type,
		exception.CapacityMultiplier,
		exception.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during exception upsert",
				slog.String("user_id", exception.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, exception.UserID)
		}
		log.Error("failed to upsert day exception",
			slog.String("error", err.Error()),
			slog.String("user_id", exception.UserID.String()),
			slog.String("date", exception.Date))
		return MapError(err)
	}

	log.Info("day exception saved",
		slog.String("user_id", exception.UserID.String()),
		slog.String("date", exception.Date),
		slog.String("type", string(exception.Type)))
	return nil
}

// GetByUserAndDate implements store.ExceptionStore.GetByUserAndDate.
// Returns store.ErrExceptionNotFound if none exists for that date.
func (s *ExceptionStore) GetByUserAndDate(
	ctx context.Context,
	userID uuid.UUID,
	date string,
) (*domain.DayException, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, date, type, capacity_multiplier, created_at
		FROM day_exceptions
		WHERE user_id = $1 AND date = $2
	`

	var exception domain.DayException
	var excType string
	err := s.db.QueryRowContext(ctx, query, userID, date).Scan(
		&exception.ID,
		&exception.UserID,
		&exception.Date,
		&excType,
		&exception.CapacityMultiplier,
		&exception.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrExceptionNotFound
		}
		log.Error("failed to get day exception",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date))
		return nil, MapError(err)
	}

	exception.Type = domain.DayExceptionType(excType)
	return &exception, nil
}

// ListByUserAndDateRange implements store.ExceptionStore.ListByUserAndDateRange.
func (s *ExceptionStore) ListByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]*domain.DayException, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, date, type, capacity_multiplier, created_at
		FROM day_exceptions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	rows, err := s.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		log.Error("failed to query day exceptions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	exceptions := []*domain.DayException{}
	for rows.Next() {
		var exception domain.DayException
		var excType string
		if err := rows.Scan(
			&exception.ID,
			&exception.UserID,
			&exception.Date,
			&excType,
			&exception.CapacityMultiplier,
			&exception.CreatedAt,
		); err != nil {
			log.Error("failed to scan day exception row",
				slog.String("error", err.Error()))
			return nil, err
		}
		exception.Type = domain.DayExceptionType(excType)
		exceptions = append(exceptions, &exception)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning day exception rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return exceptions, nil
}

// Delete implements store.ExceptionStore.Delete.
// Returns store.ErrExceptionNotFound if none exists for that date.
func (s *ExceptionStore) Delete(ctx context.Context, userID uuid.UUID, date string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(
		ctx,
		`DELETE FROM day_exceptions WHERE user_id = $1 AND date = $2`,
		userID,
		date,
	)
	if err != nil {
		log.Error("failed to delete day exception",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("date", date))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrExceptionNotFound); err != nil {
		return err
	}

	log.Info("day exception deleted",
		slog.String("user_id", userID.String()),
		slog.String("date", date))
	return nil
}

// WithTx implements store.ExceptionStore.WithTx.
func (s *ExceptionStore) WithTx(tx *sql.Tx) store.ExceptionStore {
	return &ExceptionStore{
		db:     tx,
		logger: s.logger,
	}
}
