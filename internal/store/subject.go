package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// SubjectStore defines the interface for subject persistence.
type SubjectStore interface {
	// Create saves a new subject.
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByID retrieves a subject by its unique ID.
	// Returns ErrSubjectNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// ListByUser returns all of a user's subjects ordered by name.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Subject, error)

	// Update modifies a subject's name and color.
	// Returns ErrSubjectNotFound if it does not exist.
	Update(ctx context.Context, subject *domain.Subject) error

	// Delete removes a subject. Study content under the subject is
	// removed by the schema's ON DELETE CASCADE constraint, along with
	// its reviews. Returns ErrSubjectNotFound if it does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a SubjectStore bound to the given transaction.
	WithTx(tx *sql.Tx) SubjectStore
}
