package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// ContentStore defines the interface for study content persistence.
type ContentStore interface {
	// Create saves a new study content entry.
	// Returns ErrInvalidEntity wrapping the validation error if the
	// content fails domain validation, and ErrSubjectNotFound if the
	// referenced subject does not exist.
	Create(ctx context.Context, content *domain.StudyContent) error

	// GetByID retrieves a study content entry by its unique ID.
	// Returns ErrContentNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyContent, error)

	// ListByUser returns all study content for a user, most recently
	// studied first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.StudyContent, error)

	// ListBySubject returns a user's study content filtered to one subject.
	ListBySubject(
		ctx context.Context,
		userID, subjectID uuid.UUID,
	) ([]*domain.StudyContent, error)

	// Update modifies an existing entry's topic, studied date, difficulty
	// and subject. Returns ErrContentNotFound if it does not exist.
	//
	// Changing the studied date or difficulty invalidates the pending
	// review schedule; callers are expected to regenerate reviews in the
	// same transaction (see ReviewStore.DeletePendingByContent).
	Update(ctx context.Context, content *domain.StudyContent) error

	// Delete removes a study content entry by ID. Associated reviews are
	// removed by the schema's ON DELETE CASCADE constraint.
	// Returns ErrContentNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a ContentStore bound to the given transaction, for
	// use with store.RunInTransaction.
	WithTx(tx *sql.Tx) ContentStore
}
