package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// UserStore defines the interface for user persistence.
// Implementations are responsible for hashing the plaintext Password
// field before storage; the plaintext is never written to the database.
type UserStore interface {
	// Create saves a new user, hashing the password first.
	// Returns ErrEmailExists if the email address is already registered.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update modifies a user's email and, when Password is non-empty,
	// rehashes and replaces the stored credential.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrEmailExists if the new email is already registered.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user and, via ON DELETE CASCADE, all of their
	// subjects, content, reviews, settings, exceptions and events.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
