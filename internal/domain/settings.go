package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PaceMode is a global multiplier applied to every day's capacity.
type PaceMode string

// Possible pace modes
const (
	PaceModeNormal PaceMode = "normal"
	PaceModeFaster PaceMode = "faster"
	PaceModeSlower PaceMode = "slower"
)

// Common validation errors for UserSettings
var (
	ErrEmptySettingsUserID = errors.New("settings user ID cannot be empty")
	ErrInvalidDailyLimit   = errors.New("daily limit must be positive")
	ErrInvalidPaceMode     = errors.New("invalid pace mode")
	ErrInvalidHeavyDay     = errors.New("heavy day must be a weekday index 0..6")
	ErrInvalidIntervals    = errors.New("review intervals must be positive and ascending")
)

// ReviewIntervals maps a difficulty to the ordered day offsets at
// which reviews recur, relative to the studied date. A difficulty with
// no offsets is a configuration error; callers fall back to
// planner.DefaultIntervals rather than generating zero reviews.
type ReviewIntervals map[Difficulty][]int

// UserSettings holds the per-user planning knobs: base daily capacity,
// the interval table, the global pace multiplier, and the weekly
// heavy-day pattern (weekday indices, 0=Sunday).
type UserSettings struct {
	UserID     uuid.UUID       `json:"user_id"`
	DailyLimit float64         `json:"daily_limit"`
	Intervals  ReviewIntervals `json:"review_intervals"`
	PaceMode   PaceMode        `json:"pace_mode"`
	HeavyDays  []int           `json:"heavy_days"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// Validate checks if the UserSettings has valid data.
// Returns an error if any field fails validation.
func (s *UserSettings) Validate() error {
	if s.UserID == uuid.Nil {
		return ErrEmptySettingsUserID
	}

	if s.DailyLimit <= 0 {
		return ErrInvalidDailyLimit
	}

	if !IsValidPaceMode(s.PaceMode) {
		return ErrInvalidPaceMode
	}

	for _, d := range s.HeavyDays {
		if d < 0 || d > 6 {
			return ErrInvalidHeavyDay
		}
	}

	for difficulty, offsets := range s.Intervals {
		if !IsValidDifficulty(difficulty) {
			return ErrInvalidDifficulty
		}
		prev := 0
		for _, offset := range offsets {
			if offset <= prev {
				return ErrInvalidIntervals
			}
			prev = offset
		}
	}

	return nil
}

// IsHeavyDay reports whether the given weekday index (0=Sunday) is
// part of the weekly heavy-day pattern.
func (s *UserSettings) IsHeavyDay(weekday int) bool {
	for _, d := range s.HeavyDays {
		if d == weekday {
			return true
		}
	}
	return false
}

// IsValidPaceMode checks if the given mode is a valid PaceMode.
func IsValidPaceMode(m PaceMode) bool {
	switch m {
	case PaceModeNormal, PaceModeFaster, PaceModeSlower:
		return true
	default:
		return false
	}
}
