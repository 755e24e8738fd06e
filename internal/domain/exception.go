package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// DayExceptionType classifies a one-off capacity override.
type DayExceptionType string

// Possible day exception types
const (
	DayExceptionHeavy       DayExceptionType = "heavy"
	DayExceptionUnavailable DayExceptionType = "unavailable"
	DayExceptionExam        DayExceptionType = "exam"
)

// Common validation errors for DayException
var (
	ErrEmptyExceptionID      = errors.New("exception ID cannot be empty")
	ErrEmptyExceptionUserID  = errors.New("exception user ID cannot be empty")
	ErrInvalidExceptionDate  = errors.New("invalid exception date")
	ErrInvalidExceptionType  = errors.New("invalid exception type")
	ErrInvalidCapacityFactor = errors.New("capacity multiplier cannot be negative")
)

// DayException is a one-off capacity override for a specific calendar
// date. Its multiplier composes multiplicatively with the weekly
// heavy-day pattern and the pace mode. At most one exception exists
// per user and date; inserting a new one replaces the old.
type DayException struct {
	ID                 uuid.UUID        `json:"id"`
	UserID             uuid.UUID        `json:"user_id"`
	Date               string           `json:"date"`
	Type               DayExceptionType `json:"type"`
	CapacityMultiplier float64          `json:"capacity_multiplier"`
	CreatedAt          time.Time        `json:"created_at"`
}

// NewDayException creates a DayException for the given user and date.
// Returns an error if validation fails.
func NewDayException(
	userID uuid.UUID,
	date string,
	kind DayExceptionType,
	capacityMultiplier float64,
) (*DayException, error) {
	exception := &DayException{
		ID:                 uuid.New(),
		UserID:             userID,
		Date:               date,
		Type:               kind,
		CapacityMultiplier: capacityMultiplier,
		CreatedAt:          time.Now().UTC(),
	}

	if err := exception.Validate(); err != nil {
		return nil, err
	}

	return exception, nil
}

// Validate checks if the DayException has valid data.
// Returns an error if any field fails validation.
func (e *DayException) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyExceptionID
	}

	if e.UserID == uuid.Nil {
		return ErrEmptyExceptionUserID
	}

	if !dateutil.Valid(e.Date) {
		return ErrInvalidExceptionDate
	}

	if !IsValidDayExceptionType(e.Type) {
		return ErrInvalidExceptionType
	}

	if e.CapacityMultiplier < 0 {
		return ErrInvalidCapacityFactor
	}

	return nil
}

// IsValidDayExceptionType checks if the given type is a valid DayExceptionType.
func IsValidDayExceptionType(t DayExceptionType) bool {
	switch t {
	case DayExceptionHeavy, DayExceptionUnavailable, DayExceptionExam:
		return true
	default:
		return false
	}
}
