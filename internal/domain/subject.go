package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Subject
var (
	ErrEmptySubjectID     = errors.New("subject ID cannot be empty")
	ErrEmptySubjectUserID = errors.New("subject user ID cannot be empty")
	ErrEmptySubjectName   = errors.New("subject name cannot be empty")
)

// Subject groups a user's study contents. Deleting a subject cascades
// to its contents and their reviews.
type Subject struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewSubject creates a new Subject owned by the given user.
// Returns an error if validation fails.
func NewSubject(userID uuid.UUID, name, color string) (*Subject, error) {
	subject := &Subject{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Color:     color,
		CreatedAt: time.Now().UTC(),
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
// Returns an error if any field fails validation.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySubjectID
	}

	if s.UserID == uuid.Nil {
		return ErrEmptySubjectUserID
	}

	if s.Name == "" {
		return ErrEmptySubjectName
	}

	return nil
}
