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

// ReviewStore implements the store.ReviewStore interface using a
// PostgreSQL database as the storage backend.
type ReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewReviewStore creates a new PostgreSQL implementation of the
// ReviewStore interface. If logger is nil, a default logger will be used.
func NewReviewStore(db store.DBTX, logger *slog.Logger) *ReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

var _ store.ReviewStore = (*ReviewStore)(nil)

const reviewColumns = `id, user_id, content_id, date, status, feedback, window_start, window_end, effort, original_date, created_at, updated_at`

func scanReview(row interface{ Scan(...any) error }) (*domain.Review, error) {
	var review domain.Review
	var status string
	var feedback sql.NullString
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.ContentID,
		&review.Date,
		&status,
		&feedback,
		&review.WindowStart,
		&review.WindowEnd,
		&review.Effort,
		&review.OriginalDate,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	review.Status = domain.ReviewStatus(status)
	if feedback.Valid {
		review.Feedback = domain.ReviewFeedback(feedback.String)
	}
	return &review, nil
}

// feedbackParam converts an empty feedback value to NULL for storage.
func feedbackParam(feedback domain.ReviewFeedback) any {
	if feedback == "" {
		return nil
	}
	return string(feedback)
}

// Create implements store.ReviewStore.Create.
// Returns store.ErrContentNotFound when the referenced content is missing.
func (s *ReviewStore) Create(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		review.ID,
		review.UserID,
		review.ContentID,
		review.Date,
		review.Status,
		feedbackParam(review.Feedback),
		review.WindowStart,
		review.WindowEnd,
		review.Effort,
		review.OriginalDate,
		review.CreatedAt,
		review.UpdatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during review creation",
				slog.String("review_id", review.ID.String()),
				slog.String("content_id", review.ContentID.String()))
			return fmt.Errorf("%w: content %s",
				store.ErrContentNotFound, review.ContentID)
		}
		log.Error("failed to create review",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	log.Info("review created successfully",
		slog.String("review_id", review.ID.String()),
		slog.String("content_id", review.ContentID.String()),
		slog.String("date", review.Date))
	return nil
}

// CreateMultiple implements store.ReviewStore.CreateMultiple.
// This method MUST run within a transaction; use WithTx with
// store.RunInTransaction so the schedule is inserted atomically.
func (s *ReviewStore) CreateMultiple(ctx context.Context, reviews []*domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	for _, review := range reviews {
		if err := review.Validate(); err != nil {
			log.Warn("review validation failed during batch create",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()))
			return err
		}
	}

	query := `
		INSERT INTO reviews (` + reviewColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		log.Error("failed to prepare review insert",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close statement", slog.String("error", err.Error()))
		}
	}()

	for _, review := range reviews {
		_, err := stmt.ExecContext(
			ctx,
			review.ID,
			review.UserID,
			review.ContentID,
			review.Date,
			review.Status,
			feedbackParam(review.Feedback),
			review.WindowStart,
			review.WindowEnd,
			review.Effort,
			review.OriginalDate,
			review.CreatedAt,
			review.UpdatedAt,
		)
		if err != nil {
			if IsForeignKeyViolation(err) {
				return fmt.Errorf("%w: content %s",
					store.ErrContentNotFound, review.ContentID)
			}
			log.Error("failed to insert review in batch",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()))
			return MapError(err)
		}
	}

	log.Info("review batch created successfully",
		slog.Int("count", len(reviews)))
	return nil
}

// GetByID implements store.ReviewStore.GetByID.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *ReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	review, err := scanReview(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("review not found", slog.String("review_id", id.String()))
			return nil, store.ErrReviewNotFound
		}
		log.Error("failed to get review by ID",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return nil, MapError(err)
	}

	return review, nil
}

// ListByUser implements store.ReviewStore.ListByUser.
func (s *ReviewStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1
		ORDER BY date, created_at
	`
	return s.list(ctx, query, userID)
}

// ListPendingByUser implements store.ReviewStore.ListPendingByUser.
func (s *ReviewStore) ListPendingByUser(
	ctx context.Context,
	userID uuid.UUID,
) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND status = $2
		ORDER BY date, created_at
	`
	return s.list(ctx, query, userID, domain.ReviewStatusPending)
}

// ListPendingByContent implements store.ReviewStore.ListPendingByContent.
func (s *ReviewStore) ListPendingByContent(
	ctx context.Context,
	contentID uuid.UUID,
) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE content_id = $1 AND status = $2
		ORDER BY date, created_at
	`
	return s.list(ctx, query, contentID, domain.ReviewStatusPending)
}

// ListByUserAndDateRange implements store.ReviewStore.ListByUserAndDateRange.
func (s *ReviewStore) ListByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to string,
) ([]*domain.Review, error) {
	query := `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, created_at
	`
	return s.list(ctx, query, userID, from, to)
}

func (s *ReviewStore) list(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Review, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query reviews",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	reviews := []*domain.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			log.Error("failed to scan review row",
				slog.String("error", err.Error()))
			return nil, err
		}
		reviews = append(reviews, review)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning review rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	return reviews, nil
}

// UpdateStatus implements store.ReviewStore.UpdateStatus.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *ReviewStore) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status domain.ReviewStatus,
	feedback domain.ReviewFeedback,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidReviewStatus(status) {
		return domain.ErrInvalidReviewStatus
	}
	if feedback != "" && !domain.IsValidReviewFeedback(feedback) {
		return domain.ErrInvalidReviewFeedback
	}

	query := `
		UPDATE reviews
		SET status = $1, feedback = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		status,
		feedbackParam(feedback),
		time.Now().UTC(),
		id,
	)
	if err != nil {
		log.Error("failed to update review status",
			slog.String("error", err.Error()),
			slog.String("review_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		log.Debug("review not found for status update",
			slog.String("review_id", id.String()))
		return err
	}

	log.Info("review status updated successfully",
		slog.String("review_id", id.String()),
		slog.String("status", string(status)))
	return nil
}

// UpdateSchedule implements store.ReviewStore.UpdateSchedule.
// Returns store.ErrReviewNotFound if the review does not exist.
func (s *ReviewStore) UpdateSchedule(ctx context.Context, review *domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := review.Validate(); err != nil {
		log.Warn("review validation failed during schedule update",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return err
	}

	query := `
		UPDATE reviews
		SET date = $1, window_start = $2, window_end = $3, original_date = $4, updated_at = $5
		WHERE id = $6
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		review.Date,
		review.WindowStart,
		review.WindowEnd,
		review.OriginalDate,
		review.UpdatedAt,
		review.ID,
	)
	if err != nil {
		log.Error("failed to update review schedule",
			slog.String("error", err.Error()),
			slog.String("review_id", review.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
		log.Debug("review not found for schedule update",
			slog.String("review_id", review.ID.String()))
		return err
	}

	return nil
}

// UpdateSchedules implements store.ReviewStore.UpdateSchedules.
// This method MUST run within a transaction; use WithTx with
// store.RunInTransaction so the rebalanced plan applies all-or-nothing.
func (s *ReviewStore) UpdateSchedules(ctx context.Context, reviews []*domain.Review) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE reviews
		SET date = $1, window_start = $2, window_end = $3, original_date = $4, updated_at = $5
		WHERE id = $6
	`
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		log.Error("failed to prepare review schedule update",
			slog.String("error", err.Error()))
		return MapError(err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close statement", slog.String("error", err.Error()))
		}
	}()

	now := time.Now().UTC()
	for _, review := range reviews {
		result, err := stmt.ExecContext(
			ctx,
			review.Date,
			review.WindowStart,
			review.WindowEnd,
			review.OriginalDate,
			now,
			review.ID,
		)
		if err != nil {
			log.Error("failed to update review in batch",
				slog.String("error", err.Error()),
				slog.String("review_id", review.ID.String()))
			return MapError(err)
		}
		if err := CheckRowsAffected(result, store.ErrReviewNotFound); err != nil {
			return fmt.Errorf("review %s: %w", review.ID, err)
		}
	}

	log.Info("review schedules updated successfully",
		slog.Int("count", len(reviews)))
	return nil
}

// DeletePendingByContent implements store.ReviewStore.DeletePendingByContent.
func (s *ReviewStore) DeletePendingByContent(
	ctx context.Context,
	contentID uuid.UUID,
) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM reviews WHERE content_id = $1 AND status = $2`

	result, err := s.db.ExecContext(ctx, query, contentID, domain.ReviewStatusPending)
	if err != nil {
		log.Error("failed to delete pending reviews",
			slog.String("error", err.Error()),
			slog.String("content_id", contentID.String()))
		return 0, MapError(err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	log.Info("pending reviews deleted",
		slog.String("content_id", contentID.String()),
		slog.Int64("count", deleted))
	return deleted, nil
}

// WithTx implements store.ReviewStore.WithTx.
func (s *ReviewStore) WithTx(tx *sql.Tx) store.ReviewStore {
	return &ReviewStore{
		db:     tx,
		logger: s.logger,
	}
}
