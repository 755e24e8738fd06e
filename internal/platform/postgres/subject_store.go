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

// SubjectStore implements the store.SubjectStore interface using a
// PostgreSQL database as the storage backend.
type SubjectStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSubjectStore creates a new PostgreSQL implementation of the
// SubjectStore interface. If logger is nil, a default logger will be used.
func NewSubjectStore(db store.DBTX, logger *slog.Logger) *SubjectStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SubjectStore{
		db:     db,
		logger: logger.With(slog.String("component", "subject_store")),
	}
}

var _ store.SubjectStore = (*SubjectStore)(nil)

// Create implements store.SubjectStore.Create.
// Returns store.ErrInvalidEntity if the owning user does not exist.
func (s *SubjectStore) Create(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during create",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		INSERT INTO subjects (id, user_id, name, color, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		subject.ID,
		subject.UserID,
		subject.Name,
		subject.Color,
		subject.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during subject creation",
				slog.String("subject_id", subject.ID.String()),
				slog.String("user_id", subject.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, subject.UserID)
		}
		log.Error("failed to create subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return MapError(err)
	}

	log.Info("subject created successfully",
		slog.String("subject_id", subject.ID.String()),
		slog.String("user_id", subject.UserID.String()))
	return nil
}

// GetByID implements store.SubjectStore.GetByID.
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *SubjectStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, color, created_at
		FROM subjects
		WHERE id = $1
	`

	var subject domain.Subject
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&subject.ID,
		&subject.UserID,
		&subject.Name,
		&subject.Color,
		&subject.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("subject not found", slog.String("subject_id", id.String()))
			return nil, store.ErrSubjectNotFound
		}
		log.Error("failed to get subject by ID",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return nil, MapError(err)
	}

	return &subject, nil
}

// ListByUser implements store.SubjectStore.ListByUser.
func (s *SubjectStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Subject, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, name, color, created_at
		FROM subjects
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query subjects",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	subjects := []*domain.Subject{}
	for rows.Next() {
		var subject domain.Subject
		if err := rows.Scan(
			&subject.ID,
			&subject.UserID,
			&subject.Name,
			&subject.Color,
			&subject.CreatedAt,
		); err != nil {
			log.Error("failed to scan subject row",
				slog.String("error", err.Error()))
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning subject rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return subjects, nil
}

// Update implements store.SubjectStore.Update.
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *SubjectStore) Update(ctx context.Context, subject *domain.Subject) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := subject.Validate(); err != nil {
		log.Warn("subject validation failed during update",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	query := `
		UPDATE subjects
		SET name = $1, color = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(ctx, query, subject.Name, subject.Color, subject.ID)
	if err != nil {
		log.Error("failed to update subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", subject.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSubjectNotFound); err != nil {
		log.Debug("subject not found for update",
			slog.String("subject_id", subject.ID.String()))
		return err
	}

	log.Info("subject updated successfully",
		slog.String("subject_id", subject.ID.String()))
	return nil
}

// Delete implements store.SubjectStore.Delete.
// Returns store.ErrSubjectNotFound if the subject does not exist.
func (s *SubjectStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete subject",
			slog.String("error", err.Error()),
			slog.String("subject_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrSubjectNotFound); err != nil {
		log.Debug("subject not found for delete",
			slog.String("subject_id", id.String()))
		return err
	}

	log.Info("subject deleted successfully",
		slog.String("subject_id", id.String()))
	return nil
}

// WithTx implements store.SubjectStore.WithTx.
func (s *SubjectStore) WithTx(tx *sql.Tx) store.SubjectStore {
	return &SubjectStore{
		db:     tx,
		logger: s.logger,
	}
}
