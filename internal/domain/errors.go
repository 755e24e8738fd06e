// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidID is returned when an ID is malformed or invalid.
	ErrInvalidID = errors.New("invalid ID")

	// ErrInvalidEmail is returned when an email address is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPassword is returned when a password doesn't meet requirements.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidDifficulty is returned when a difficulty value is not valid.
	ErrInvalidDifficulty = errors.New("invalid difficulty")

	// ErrInvalidReviewStatus is returned when a review status is not valid.
	ErrInvalidReviewStatus = errors.New("invalid review status")

	// ErrInvalidReviewFeedback is returned when review feedback is not valid.
	ErrInvalidReviewFeedback = errors.New("invalid review feedback")

	// ErrReviewFinalized is returned when attempting to mutate a review
	// that has already reached a terminal status.
	ErrReviewFinalized = errors.New("review already completed or skipped")

	// ErrUnauthorized is returned when an operation is not permitted.
	ErrUnauthorized = errors.New("unauthorized operation")
)
