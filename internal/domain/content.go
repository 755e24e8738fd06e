package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/studiumhq/studium-api/internal/domain/dateutil"
)

// Difficulty classifies how hard a studied topic felt. It drives both
// the review interval table and the per-review effort cost.
type Difficulty string

// Possible difficulty values
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Common validation errors for StudyContent
var (
	ErrEmptyContentID        = errors.New("content ID cannot be empty")
	ErrEmptyContentUserID    = errors.New("content user ID cannot be empty")
	ErrEmptyContentSubjectID = errors.New("content subject ID cannot be empty")
	ErrEmptyContentTopic     = errors.New("content topic cannot be empty")
	ErrInvalidDateStudied    = errors.New("invalid date studied")
)

// StudyContent represents a topic a user studied on a given calendar
// day. Reviews are generated from it and cascade-deleted with it.
type StudyContent struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	SubjectID   uuid.UUID  `json:"subject_id"`
	Topic       string     `json:"topic"`
	DateStudied string     `json:"date_studied"`
	Difficulty  Difficulty `json:"difficulty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewStudyContent creates a new StudyContent with the given owner,
// subject, topic, studied date and difficulty. It generates a new UUID
// and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewStudyContent(
	userID, subjectID uuid.UUID,
	topic, dateStudied string,
	difficulty Difficulty,
) (*StudyContent, error) {
	content := &StudyContent{
		ID:          uuid.New(),
		UserID:      userID,
		SubjectID:   subjectID,
		Topic:       topic,
		DateStudied: dateStudied,
		Difficulty:  difficulty,
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}

	if err := content.Validate(); err != nil {
		return nil, err
	}

	return content, nil
}

// Validate checks if the StudyContent has valid data.
// Returns an error if any field fails validation.
func (c *StudyContent) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyContentID
	}

	if c.UserID == uuid.Nil {
		return ErrEmptyContentUserID
	}

	if c.SubjectID == uuid.Nil {
		return ErrEmptyContentSubjectID
	}

	if c.Topic == "" {
		return ErrEmptyContentTopic
	}

	if !dateutil.Valid(c.DateStudied) {
		return ErrInvalidDateStudied
	}

	if !IsValidDifficulty(c.Difficulty) {
		return ErrInvalidDifficulty
	}

	return nil
}

// IsValidDifficulty checks if the given difficulty is a valid Difficulty.
func IsValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}
