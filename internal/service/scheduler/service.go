// Package scheduler orchestrates the scheduling engine: it loads state
// through the store ports, runs the pure planner calculations and
// persists the results transactionally. All mutations for one user are
// serialized so concurrent requests cannot interleave plan updates.
package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// ScheduleDay is one day of the upcoming schedule: the reviews planned
// for it, the planned effort load and the capacity the planner would
// allow on that day.
type ScheduleDay struct {
	Date     string           `json:"date"`
	Capacity float64          `json:"capacity"`
	Load     float64          `json:"load"`
	Reviews  []*domain.Review `json:"reviews"`
}

// Service provides the scheduling operations behind the planner
// endpoints. Every method that mutates a user's plan acquires that
// user's lock first and rebalances afterwards.
type Service interface {
	// AddContent records a newly studied topic and generates its review
	// schedule from the user's interval table in one transaction, then
	// rebalances the user's plan. Returns the generated reviews.
	AddContent(ctx context.Context, content *domain.StudyContent) ([]*domain.Review, error)

	// UpdateContent edits a studied topic. When the studied date or
	// difficulty changed, pending reviews are regenerated (completed and
	// skipped history is preserved) and the plan is rebalanced.
	// Returns the content's pending reviews after the edit.
	UpdateContent(ctx context.Context, content *domain.StudyContent) ([]*domain.Review, error)

	// DeleteContent removes a studied topic and, via cascade, its reviews.
	DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error

	// SubmitFeedback completes a pending review with the given feedback
	// and applies the retention adjustment: "remembered" stretches the
	// content's remaining reviews outward, "forgot" inserts a
	// reinforcement review for tomorrow unless one is already due by
	// then. The plan is rebalanced afterwards.
	SubmitFeedback(
		ctx context.Context,
		userID, reviewID uuid.UUID,
		feedback domain.ReviewFeedback,
	) (*domain.Review, error)

	// SkipReview marks a pending review as skipped without any schedule
	// adjustment.
	SkipReview(ctx context.Context, userID, reviewID uuid.UUID) (*domain.Review, error)

	// AdjustSchedule records a recall outcome against a studied topic and
	// applies the same retention adjustment as SubmitFeedback, without
	// requiring a review: "remembered" stretches the topic's remaining
	// reviews, "forgot" inserts a reinforcement for tomorrow. When
	// reviewID is given, that review is completed first. Rebalances
	// afterwards.
	AdjustSchedule(
		ctx context.Context,
		userID, contentID uuid.UUID,
		eventType domain.RetentionEventType,
		reviewID *uuid.UUID,
	) error

	// Rebalance redistributes the user's pending reviews across their
	// flexibility windows under the capacity model. Only moved reviews
	// are persisted, in a single transaction. Returns how many moved.
	Rebalance(ctx context.Context, userID uuid.UUID) (int, error)

	// SetTomorrowHeavy marks tomorrow as a reduced-capacity day and
	// rebalances so reviews shift off it where their windows allow.
	SetTomorrowHeavy(ctx context.Context, userID uuid.UUID) (*domain.DayException, error)

	// SetPace switches the user's pace mode and rebalances.
	SetPace(ctx context.Context, userID uuid.UUID, mode domain.PaceMode) error

	// GetSettings returns the user's settings, falling back to defaults
	// when the user has never saved any.
	GetSettings(ctx context.Context, userID uuid.UUID) (*domain.UserSettings, error)

	// UpdateSettings replaces the user's settings and rebalances, since
	// interval and capacity changes invalidate the current plan.
	UpdateSettings(ctx context.Context, settings *domain.UserSettings) error

	// GetSchedule returns the day-by-day plan between from and to
	// inclusive: planned reviews, their effort load and the day's
	// capacity. An empty range defaults to today through the
	// configured horizon.
	GetSchedule(ctx context.Context, userID uuid.UUID, from, to string) ([]ScheduleDay, error)

	// ListRetentionEvents returns the user's recent recall outcomes,
	// newest first.
	ListRetentionEvents(
		ctx context.Context,
		userID uuid.UUID,
		limit int,
	) ([]*domain.RetentionEvent, error)
}

// Common error types for the scheduler service.
var (
	// ErrContentNotFound indicates that the study content does not exist.
	ErrContentNotFound = errors.New("study content not found")

	// ErrReviewNotFound indicates that the review does not exist.
	ErrReviewNotFound = errors.New("review not found")

	// ErrNotOwned indicates the resource belongs to a different user.
	ErrNotOwned = errors.New("unauthorized access: resource not owned by user")

	// ErrReviewFinalized indicates the review was already completed or skipped.
	ErrReviewFinalized = errors.New("review already finalized")

	// ErrInvalidFeedback indicates an unknown feedback value.
	ErrInvalidFeedback = errors.New("invalid feedback")

	// ErrInvalidDateRange indicates a malformed or inverted date range.
	ErrInvalidDateRange = errors.New("invalid date range")
)

// ServiceError wraps errors from the scheduler service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "add_content", "rebalance")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
