package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/platform/logger"
	"github.com/studiumhq/studium-api/internal/store"
)

// ContentStore implements the store.ContentStore interface using a
// PostgreSQL database as the storage backend.
type ContentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewContentStore creates a new PostgreSQL implementation of the
// ContentStore interface. If logger is nil, a default logger will be used.
func NewContentStore(db store.DBTX, logger *slog.Logger) *ContentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ContentStore{
		db:     db,
		logger: logger.With(slog.String("component", "content_store")),
	}
}

var _ store.ContentStore = (*ContentStore)(nil)

const contentColumns = `id, user_id, subject_id, topic, date_studied, difficulty, created_at, updated_at`

func scanContent(row interface{ Scan(...any) error }) (*domain.StudyContent, error) {
	var content domain.StudyContent
	var difficulty string
	err := row.Scan(
		&content.ID,
		&content.UserID,
		&content.SubjectID,
		&content.Topic,
		&content.DateStudied,
		&difficulty,
		&content.CreatedAt,
		&content.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	content.Difficulty = domain.Difficulty(difficulty)
	return &content, nil
}

// Create implements store.ContentStore.Create.
// Returns store.ErrSubjectNotFound when the referenced subject is
// missing, and store.ErrInvalidEntity for other referential failures.
func (s *ContentStore) Create(ctx context.Context, content *domain.StudyContent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := content.Validate(); err != nil {
		log.Warn("content validation failed during create",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_contents (` + contentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		content.ID,
		content.UserID,
		content.SubjectID,
		content.Topic,
		content.DateStudied,
		content.Difficulty,
		content.CreatedAt,
		content.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during content creation",
				slog.String("content_id", content.ID.String()),
				slog.String("subject_id", content.SubjectID.String()))
			return fmt.Errorf("%w: subject %s",
				store.ErrSubjectNotFound, content.SubjectID)
		}
		log.Error("failed to create study content",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return MapError(err)
	}

	log.Info("study content created successfully",
		slog.String("content_id", content.ID.String()),
		slog.String("user_id", content.UserID.String()),
		slog.String("difficulty", string(content.Difficulty)))
	return nil
}

// GetByID implements store.ContentStore.GetByID.
// Returns store.ErrContentNotFound if the entry does not exist.
func (s *ContentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyContent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + contentColumns + ` FROM study_contents WHERE id = $1`

	content, err := scanContent(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study content not found", slog.String("content_id", id.String()))
			return nil, store.ErrContentNotFound
		}
		log.Error("failed to get study content by ID",
			slog.String("error", err.Error()),
			slog.String("content_id", id.String()))
		return nil, MapError(err)
	}

	return content, nil
}

// ListByUser implements store.ContentStore.ListByUser.
func (s *ContentStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.StudyContent, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM study_contents
		WHERE user_id = $1
		ORDER BY date_studied DESC, created_at DESC
	`
	return s.list(ctx, query, userID)
}

// ListBySubject implements store.ContentStore.ListBySubject.
func (s *ContentStore) ListBySubject(
	ctx context.Context,
	userID, subjectID uuid.UUID,
) ([]*domain.StudyContent, error) {
	query := `
		SELECT ` + contentColumns + `
		FROM study_contents
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY date_studied DESC, created_at DESC
	`
	return s.list(ctx, query, userID, subjectID)
}

func (s *ContentStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.StudyContent, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query study contents",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	contents := []*domain.StudyContent{}
	for rows.Next() {
		content, err := scanContent(rows)
		if err != nil {
			log.Error("failed to scan study content row",
				slog.String("error", err.Error()))
			return nil, err
		}
		contents = append(contents, content)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning study content rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return contents, nil
}

// Update implements store.ContentStore.Update.
// Returns store.ErrContentNotFound if the entry does not exist.
func (s *ContentStore) Update(ctx context.Context, content *domain.StudyContent) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := content.Validate(); err != nil {
		log.Warn("content validation failed during update",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return err
	}

	content.UpdatedAt = time.Now().UTC()

	query := `
		UPDATE study_contents
		SET subject_id = $1, topic = $2, date_studied = $3, difficulty = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		content.SubjectID,
		content.Topic,
		content.DateStudied,
		content.Difficulty,
		content.UpdatedAt,
		content.ID,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: subject %s",
				store.ErrSubjectNotFound, content.SubjectID)
		}
		log.Error("failed to update study content",
			slog.String("error", err.Error()),
			slog.String("content_id", content.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrContentNotFound); err != nil {
		log.Debug("study content not found for update",
			slog.String("content_id", content.ID.String()))
		return err
	}

	log.Info("study content updated successfully",
		slog.String("content_id", content.ID.String()))
	return nil
}

// Delete implements store.ContentStore.Delete.
// Returns store.ErrContentNotFound if the entry does not exist.
func (s *ContentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM study_contents WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete study content",
			slog.String("error", err.Error()),
			slog.String("content_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrContentNotFound); err != nil {
		log.Debug("study content not found for delete",
			slog.String("content_id", id.String()))
		return err
	}

	log.Info("study content deleted successfully",
		slog.String("content_id", id.String()))
	return nil
}

// WithTx implements store.ContentStore.WithTx.
func (s *ContentStore) WithTx(tx *sql.Tx) store.ContentStore {
	return &ContentStore{
		db:     tx,
		logger: s.logger,
	}
}
