package api

import (
	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain"
)

// Request/response structures for the HTTP surface. Domain entities
// serialize themselves; these types only exist where the wire shape
// differs from the entity or carries validation tags.

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=12,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	// ExpiresAt is the RFC 3339 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateSubjectRequest defines the payload for creating a subject.
type CreateSubjectRequest struct {
	Name  string `json:"name"  validate:"required,min=1,max=100"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// CreateContentRequest defines the payload for recording a studied topic.
type CreateContentRequest struct {
	SubjectID   uuid.UUID         `json:"subject_id"   validate:"required"`
	Topic       string            `json:"topic"        validate:"required,min=1,max=200"`
	DateStudied string            `json:"date_studied" validate:"required"`
	Difficulty  domain.Difficulty `json:"difficulty"   validate:"required,oneof=easy medium hard"`
}

// UpdateContentRequest defines the payload for editing a studied topic.
type UpdateContentRequest struct {
	SubjectID   uuid.UUID         `json:"subject_id"   validate:"required"`
	Topic       string            `json:"topic"        validate:"required,min=1,max=200"`
	DateStudied string            `json:"date_studied" validate:"required"`
	Difficulty  domain.Difficulty `json:"difficulty"   validate:"required,oneof=easy medium hard"`
}

// ContentResponse pairs a studied topic with its pending review schedule.
type ContentResponse struct {
	Content *domain.StudyContent `json:"content"`
	Reviews []*domain.Review     `json:"reviews"`
}

// ReviewStatusRequest defines the payload for finalizing a review.
type ReviewStatusRequest struct {
	Status   domain.ReviewStatus   `json:"status"   validate:"required,oneof=completed skipped"`
	Feedback domain.ReviewFeedback `json:"feedback" validate:"omitempty,oneof=remembered somewhat forgot"`
}

// RetentionRequest defines the payload for recording a recall outcome
// against a studied topic.
type RetentionRequest struct {
	Type     domain.RetentionEventType `json:"type"      validate:"required,oneof=remembered forgot"`
	ReviewID *uuid.UUID                `json:"review_id" validate:"omitempty"`
}

// PaceRequest defines the payload for switching pace mode.
type PaceRequest struct {
	Mode domain.PaceMode `json:"mode" validate:"required,oneof=normal faster slower"`
}

// UpdateSettingsRequest defines the payload for saving user settings.
type UpdateSettingsRequest struct {
	DailyLimit float64                `json:"daily_limit"      validate:"required,gt=0,lte=100"`
	Intervals  domain.ReviewIntervals `json:"review_intervals" validate:"required"`
	PaceMode   domain.PaceMode        `json:"pace_mode"        validate:"required,oneof=normal faster slower"`
	HeavyDays  []int                  `json:"heavy_days"       validate:"omitempty,dive,gte=0,lte=6"`
}

// RebalanceResponse reports how many reviews a rebalance moved.
type RebalanceResponse struct {
	Moved int `json:"moved"`
}

// CapacityResponse is the computed capacity for one date.
type CapacityResponse struct {
	Date     string  `json:"date"`
	Capacity float64 `json:"capacity"`
}
