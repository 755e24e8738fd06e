package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RetentionEventType records a self-reported recall outcome.
type RetentionEventType string

// Possible retention event types
const (
	RetentionRemembered RetentionEventType = "remembered"
	RetentionForgot     RetentionEventType = "forgot"
)

// Common validation errors for RetentionEvent
var (
	ErrEmptyRetentionID        = errors.New("retention event ID cannot be empty")
	ErrEmptyRetentionUserID    = errors.New("retention event user ID cannot be empty")
	ErrEmptyRetentionContentID = errors.New("retention event content ID cannot be empty")
	ErrInvalidRetentionType    = errors.New("invalid retention event type")
)

// RetentionEvent is an append-only audit record of a user's recall
// feedback on a studied topic. The core never mutates or deletes one.
type RetentionEvent struct {
	ID        uuid.UUID          `json:"id"`
	UserID    uuid.UUID          `json:"user_id"`
	ContentID uuid.UUID          `json:"content_id"`
	Type      RetentionEventType `json:"type"`
	CreatedAt time.Time          `json:"created_at"`
}

// NewRetentionEvent creates a RetentionEvent for the given user,
// content and outcome. Returns an error if validation fails.
func NewRetentionEvent(
	userID, contentID uuid.UUID,
	kind RetentionEventType,
) (*RetentionEvent, error) {
	event := &RetentionEvent{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: contentID,
		Type:      kind,
		CreatedAt: time.Now().UTC(),
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}

	return event, nil
}

// Validate checks if the RetentionEvent has valid data.
// Returns an error if any field fails validation.
func (e *RetentionEvent) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyRetentionID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyRetentionUserID
	}

	if e.ContentID == uuid.Nil {
		return ErrEmptyRetentionContentID
	}

	if !IsValidRetentionEventType(e.Type) {
		return ErrInvalidRetentionType
	}

	return nil
}

// IsValidRetentionEventType checks if the given type is a valid RetentionEventType.
func IsValidRetentionEventType(t RetentionEventType) bool {
	switch t {
	case RetentionRemembered, RetentionForgot:
		return true
	default:
		return false
	}
}
