package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// RetentionStore defines the interface for retention event persistence.
// The event log is append-only: events are never updated or deleted, so
// the recall history behind schedule adjustments stays auditable.
type RetentionStore interface {
	// Create appends a retention event.
	Create(ctx context.Context, event *domain.RetentionEvent) error

	// ListByUser returns a user's most recent events, newest first,
	// capped at limit (a non-positive limit returns all events).
	ListByUser(
		ctx context.Context,
		userID uuid.UUID,
		limit int,
	) ([]*domain.RetentionEvent, error)

	// ListByContent returns the full event history for one study content
	// entry, newest first.
	ListByContent(
		ctx context.Context,
		contentID uuid.UUID,
	) ([]*domain.RetentionEvent, error)

	// WithTx returns a RetentionStore bound to the given transaction.
	WithTx(tx *sql.Tx) RetentionStore
}
