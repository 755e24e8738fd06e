package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// RetentionStore implements the store.RetentionStore interface using a
// PostgreSQL database as the storage backend. The table is append-only.
type RetentionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewRetentionStore creates a new PostgreSQL implementation of the
// RetentionStore interface. If logger is nil, a default logger will be used.
func NewRetentionStore(db store.DBTX, logger *slog.Logger) *RetentionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &RetentionStore{
		db:     db,
		logger: logger.With(slog.String("component", "retention_store")),
	}
}

var _ store.RetentionStore = (*RetentionStore)(nil)

// Create implements store.RetentionStore.Create.
func (s *RetentionStore) Create(ctx context.Context, event *domain.RetentionEvent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := event.Validate(); err != nil {
		log.Warn("retention event validation failed",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return err
	}

	query := `
		INSERT INTO retention_events (id, user_id, content_id, type, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		event.ID,
		event.UserID,
		event.ContentID,
		event.Type,
		event.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during retention event creation",
				slog.String("event_id", event.ID.String()),
				slog.String("content_id", event.ContentID.String()))
			return fmt.Errorf("%w: content %s",
				store.ErrContentNotFound, event.ContentID)
		}
		log.Error("failed to create retention event",
			slog.String("error", err.Error()),
			slog.String("event_id", event.ID.String()))
		return MapError(err)
	}

	log.Info("retention event recorded",
		slog.String("event_id", event.ID.String()),
		slog.String("content_id", event.ContentID.String()),
		slog.String("type", string(event.Type)))
	return nil
}

// ListByUser implements store.RetentionStore.ListByUser.
func (s *RetentionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.RetentionEvent, error) {
	query := `
		SELECT id, user_id, content_id, type, created_at
		FROM retention_events
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}
	return s.list(ctx, query, args...)
}

// ListByContent implements store.RetentionStore.ListByContent.
func (s *RetentionStore) ListByContent(
	ctx context.Context,
	contentID uuid.UUID,
) ([]*domain.RetentionEvent, error) {
	query := `
		SELECT id, user_id, content_id, type, created_at
		FROM retention_events
		WHERE content_id = $1
		ORDER BY created_at DESC
	`
	return s.list(ctx, query, contentID)
}

func (s *RetentionStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.RetentionEvent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query retention events",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	events := []*domain.RetentionEvent{}
	for rows.Next() {
		var event domain.RetentionEvent
		var eventType string
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.ContentID,
			&eventType,
			&event.CreatedAt,
		); err != nil {
			log.Error("failed to scan retention event row",
				slog.String("error", err.Error()))
			return nil, err
		}
		event.Type = domain.RetentionEventType(eventType)
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning retention event rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return events, nil
}

// WithTx implements store.RetentionStore.WithTx.
func (s *RetentionStore) WithTx(tx *sql.Tx) store.RetentionStore {
	return &RetentionStore{
		db:     tx,
		logger: s.logger,
	}
}
