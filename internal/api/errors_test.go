package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/service/auth"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
	"github.com/studiumhq/studium-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"wrong token type", auth.ErrWrongTokenType, http.StatusUnauthorized},
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"not owned", scheduler.ErrNotOwned, http.StatusForbidden},
		{"content not found", scheduler.ErrContentNotFound, http.StatusNotFound},
		{"review not found", scheduler.ErrReviewNotFound, http.StatusNotFound},
		{"store subject not found", store.ErrSubjectNotFound, http.StatusNotFound},
		{"wrapped store not found", fmt.Errorf("lookup: %w", store.ErrUserNotFound), http.StatusNotFound},
		{"email exists", store.ErrEmailExists, http.StatusConflict},
		{"review finalized", scheduler.ErrReviewFinalized, http.StatusConflict},
		{"invalid feedback", scheduler.ErrInvalidFeedback, http.StatusBadRequest},
		{"invalid date range", scheduler.ErrInvalidDateRange, http.StatusBadRequest},
		{"invalid pace mode", domain.ErrInvalidPaceMode, http.StatusBadRequest},
		{"invalid date format", dateutil.ErrInvalidDateFormat, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "Invalid token", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Study content not found", GetSafeErrorMessage(scheduler.ErrContentNotFound))
	assert.Equal(t, "Email already exists", GetSafeErrorMessage(store.ErrEmailExists))
	assert.Equal(t, "Invalid pace mode", GetSafeErrorMessage(domain.ErrInvalidPaceMode))

	// Internal detail must never leak through the default branch.
	leaky := errors.New("pq: connection refused host=10.0.0.5")
	msg := GetSafeErrorMessage(leaky)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
}
