package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// ReviewStore defines the interface for review persistence.
type ReviewStore interface {
	// Create saves a single review.
	Create(ctx context.Context, review *domain.Review) error

	// CreateMultiple saves a batch of reviews, typically the schedule
	// generated for a newly added study content entry.
	// This method MUST run within a transaction so the schedule is
	// inserted atomically; use WithTx with store.RunInTransaction.
	CreateMultiple(ctx context.Context, reviews []*domain.Review) error

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// ListByUser returns all of a user's reviews ordered by date.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)

	// ListPendingByUser returns the user's PENDING reviews ordered by
	// date. This is the working set for the rebalancer.
	ListPendingByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Review, error)

	// ListPendingByContent returns the PENDING reviews for one study
	// content entry ordered by date.
	ListPendingByContent(ctx context.Context, contentID uuid.UUID) ([]*domain.Review, error)

	// ListByUserAndDateRange returns a user's reviews with date between
	// from and to inclusive, ordered by date. Dates are YYYY-MM-DD.
	ListByUserAndDateRange(
		ctx context.Context,
		userID uuid.UUID,
		from, to string,
	) ([]*domain.Review, error)

	// UpdateStatus records the outcome of a review: status and, for
	// completed reviews, the feedback given.
	// Returns ErrReviewNotFound if it does not exist.
	UpdateStatus(
		ctx context.Context,
		id uuid.UUID,
		status domain.ReviewStatus,
		feedback domain.ReviewFeedback,
	) error

	// UpdateSchedule persists a review's date, window and original date
	// after an adjustment. Returns ErrReviewNotFound if it does not exist.
	UpdateSchedule(ctx context.Context, review *domain.Review) error

	// UpdateSchedules persists the date and window of every review in
	// the slice. Used by the rebalancer to apply a plan all-or-nothing:
	// this method MUST run within a transaction via WithTx.
	UpdateSchedules(ctx context.Context, reviews []*domain.Review) error

	// DeletePendingByContent removes all PENDING reviews for a study
	// content entry, leaving completed and skipped history untouched.
	// Returns the number of reviews deleted.
	DeletePendingByContent(ctx context.Context, contentID uuid.UUID) (int64, error)

	// WithTx returns a ReviewStore bound to the given transaction, for
	// use with store.RunInTransaction.
	WithTx(tx *sql.Tx) ReviewStore
}
