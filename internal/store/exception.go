package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// ExceptionStore defines the interface for day exception persistence.
// A user has at most one exception per calendar date, enforced by a
// unique constraint, so writes are modelled as upserts.
type ExceptionStore interface {
	// Upsert creates the exception for its (user, date) pair or replaces
	// the existing one. Marking tomorrow heavy twice simply overwrites
	// the multiplier.
	Upsert(ctx context.Context, exception *domain.DayException) error

	// GetByUserAndDate retrieves the exception for a specific date.
	// Returns ErrExceptionNotFound if none exists.
	GetByUserAndDate(
		ctx context.Context,
		userID uuid.UUID,
		date string,
	) (*domain.DayException, error)

	// ListByUserAndDateRange returns a user's exceptions with date
	// between from and to inclusive, ordered by date.
	ListByUserAndDateRange(
		ctx context.Context,
		userID uuid.UUID,
		from, to string,
	) ([]*domain.DayException, error)

	// Delete removes the exception for a specific date.
	// Returns ErrExceptionNotFound if none exists.
	Delete(ctx context.Context, userID uuid.UUID, date string) error

	// WithTx returns an ExceptionStore bound to the given transaction.
	WithTx(tx *sql.Tx) ExceptionStore
}
