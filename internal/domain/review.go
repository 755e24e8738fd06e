package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// ReviewStatus represents the lifecycle state of a review.
// PENDING reviews may be moved freely by the rebalancer; COMPLETED and
// SKIPPED are terminal.
type ReviewStatus string

// Possible review status values
const (
	ReviewStatusPending   ReviewStatus = "pending"
	ReviewStatusCompleted ReviewStatus = "completed"
	ReviewStatusSkipped   ReviewStatus = "skipped"
)

// ReviewFeedback records the user's self-reported recall outcome,
// set only on completion.
type ReviewFeedback string

// Possible review feedback values
const (
	ReviewFeedbackRemembered ReviewFeedback = "remembered"
	ReviewFeedbackSomewhat   ReviewFeedback = "somewhat"
	ReviewFeedbackForgot     ReviewFeedback = "forgot"
)

// Common validation errors for Review
var (
	ErrEmptyReviewID        = errors.New("review ID cannot be empty")
	ErrEmptyReviewUserID    = errors.New("review user ID cannot be empty")
	ErrEmptyReviewContentID = errors.New("review content ID cannot be empty")
	ErrInvalidReviewDate    = errors.New("invalid review date")
	ErrInvalidReviewWindow  = errors.New("review window start must not be after window end")
	ErrInvalidReviewEffort  = errors.New("review effort must be positive")
)

// Review represents one scheduled recall event for a StudyContent.
//
// Date is the currently scheduled calendar day and is the only field
// the rebalancer moves. WindowStart and WindowEnd bound where the
// review may be placed without counting as a fallback placement.
// OriginalDate is the date the review would occupy absent any
// rebalancing, kept to measure drift.
type Review struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	ContentID    uuid.UUID      `json:"content_id"`
	Date         string         `json:"date"`
	Status       ReviewStatus   `json:"status"`
	Feedback     ReviewFeedback `json:"feedback,omitempty"`
	WindowStart  string         `json:"window_start"`
	WindowEnd    string         `json:"window_end"`
	Effort       float64        `json:"effort"`
	OriginalDate string         `json:"original_date"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// NewReview creates a PENDING review for the given content at the
// given date with the given placement window and effort cost.
// OriginalDate is pinned to the initial date.
// Returns an error if validation fails.
func NewReview(
	userID, contentID uuid.UUID,
	date, windowStart, windowEnd string,
	effort float64,
) (*Review, error) {
	review := &Review{
		ID:           uuid.New(),
		UserID:       userID,
		ContentID:    contentID,
		Date:         date,
		Status:       ReviewStatusPending,
		WindowStart:  windowStart,
		WindowEnd:    windowEnd,
		Effort:       effort,
		OriginalDate: date,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
// Returns an error if any field fails validation.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyReviewID
	}

	if r.UserID == uuid.Nil {
		return ErrEmptyReviewUserID
	}

	if r.ContentID == uuid.Nil {
		return ErrEmptyReviewContentID
	}

	if !dateutil.Valid(r.Date) || !dateutil.Valid(r.OriginalDate) {
		return ErrInvalidReviewDate
	}

	if !dateutil.Valid(r.WindowStart) || !dateutil.Valid(r.WindowEnd) {
		return ErrInvalidReviewDate
	}

	// Date strings compare lexicographically in calendar order.
	if r.WindowStart > r.WindowEnd {
		return ErrInvalidReviewWindow
	}

	if r.Effort <= 0 {
		return ErrInvalidReviewEffort
	}

	if !IsValidReviewStatus(r.Status) {
		return ErrInvalidReviewStatus
	}

	if r.Feedback != "" && !IsValidReviewFeedback(r.Feedback) {
		return ErrInvalidReviewFeedback
	}

	return nil
}

// IsPending reports whether the review is still schedulable.
func (r *Review) IsPending() bool {
	return r.Status == ReviewStatusPending
}

// Complete transitions a PENDING review to COMPLETED with optional
// feedback. Returns ErrReviewFinalized if the review is already
// terminal, or ErrInvalidReviewFeedback for unknown feedback values.
func (r *Review) Complete(feedback ReviewFeedback) error {
	if !r.IsPending() {
		return ErrReviewFinalized
	}

	if feedback != "" && !IsValidReviewFeedback(feedback) {
		return ErrInvalidReviewFeedback
	}

	r.Status = ReviewStatusCompleted
	r.Feedback = feedback
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Skip transitions a PENDING review to SKIPPED.
// Returns ErrReviewFinalized if the review is already terminal.
func (r *Review) Skip() error {
	if !r.IsPending() {
		return ErrReviewFinalized
	}

	r.Status = ReviewStatusSkipped
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// Reschedule moves a PENDING review to a new date without touching its
// window or original date. The rebalancer uses this for placements.
func (r *Review) Reschedule(date string) error {
	if !r.IsPending() {
		return ErrReviewFinalized
	}

	if !dateutil.Valid(date) {
		return ErrInvalidReviewDate
	}

	r.Date = date
	r.UpdatedAt = time.Now().UTC()
	return nil
}

// IsValidReviewStatus checks if the given status is a valid ReviewStatus.
func IsValidReviewStatus(s ReviewStatus) bool {
	switch s {
	case ReviewStatusPending, ReviewStatusCompleted, ReviewStatusSkipped:
		return true
	default:
		return false
	}
}

// IsValidReviewFeedback checks if the given feedback is a valid ReviewFeedback.
func IsValidReviewFeedback(f ReviewFeedback) bool {
	switch f {
	case ReviewFeedbackRemembered, ReviewFeedbackSomewhat, ReviewFeedbackForgot:
		return true
	default:
		return false
	}
}
