package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/service/auth"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
	"github.com/studiumhq/studium-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, scheduler.ErrNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, scheduler.ErrContentNotFound),
		errors.Is(err, scheduler.ErrReviewNotFound),
		store.IsNotFoundError(err):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists):
		return http.StatusConflict
	case errors.Is(err, scheduler.ErrReviewFinalized),
		errors.Is(err, domain.ErrReviewFinalized):
		return http.StatusConflict

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, scheduler.ErrInvalidFeedback),
		errors.Is(err, scheduler.ErrInvalidDateRange),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidReviewStatus),
		errors.Is(err, domain.ErrInvalidReviewFeedback),
		errors.Is(err, domain.ErrInvalidPaceMode),
		errors.Is(err, domain.ErrInvalidRetentionType),
		errors.Is(err, dateutil.ErrInvalidDateFormat):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. Raw internal errors never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid credentials"

	case errors.Is(err, scheduler.ErrNotOwned),
		errors.Is(err, domain.ErrUnauthorized):
		return "You do not own this resource"

	case errors.Is(err, scheduler.ErrContentNotFound),
		errors.Is(err, store.ErrContentNotFound):
		return "Study content not found"

	case errors.Is(err, scheduler.ErrReviewNotFound),
		errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"

	case errors.Is(err, store.ErrSubjectNotFound):
		return "Subject not found"

	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case store.IsNotFoundError(err):
		return "Not found"

	case errors.Is(err, store.ErrEmailExists):
		return "Email already exists"

	case errors.Is(err, scheduler.ErrReviewFinalized),
		errors.Is(err, domain.ErrReviewFinalized):
		return "Review is already completed or skipped"

	case errors.Is(err, scheduler.ErrInvalidFeedback),
		errors.Is(err, domain.ErrInvalidReviewFeedback):
		return "Invalid feedback value"

	case errors.Is(err, scheduler.ErrInvalidDateRange):
		return "Invalid date range"

	case errors.Is(err, domain.ErrInvalidPaceMode):
		return "Invalid pace mode"

	case errors.Is(err, domain.ErrInvalidRetentionType):
		return "Invalid retention event type"

	case errors.Is(err, dateutil.ErrInvalidDateFormat):
		return "Invalid date, expected YYYY-MM-DD"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidPassword),
		errors.Is(err, domain.ErrInvalidDifficulty),
		errors.Is(err, domain.ErrInvalidReviewStatus):
		return "Invalid request data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a validator error into a short
// user-facing message without echoing request values back.
func SanitizeValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && len(validationErrs) > 0 {
		fieldErr := validationErrs[0]
		return fmt.Sprintf("Invalid %s: %s", fieldErr.Field(), validationTagMessage(fieldErr.Tag()))
	}
	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "gt", "gte", "lte", "lt":
		return "out of range"
	case "hexcolor":
		return "invalid color"
	default:
		return "validation failed"
	}
}

// HandleAPIError maps an internal error to a status code and sanitized
// message and writes the response. An explicit message overrides the
// derived one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}
