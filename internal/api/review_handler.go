package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
	"github.com/studiumhq/studium-api/internal/store"
)

// ReviewHandler handles review listing and completion requests.
type ReviewHandler struct {
	reviewStore store.ReviewStore
	scheduler   scheduler.Service
	validator   *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(
	reviewStore store.ReviewStore,
	schedulerService scheduler.Service,
) *ReviewHandler {
	return &ReviewHandler{
		reviewStore: reviewStore,
		scheduler:   schedulerService,
		validator:   validator.New(),
	}
}

// List handles GET /reviews with an optional ?from=&to= date filter.
func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	var (
		reviews []*domain.Review
		err     error
	)
	switch {
	case from == "" && to == "":
		reviews, err = h.reviewStore.ListByUser(r.Context(), userID)
	case dateutil.Valid(from) && dateutil.Valid(to) && from <= to:
		reviews, err = h.reviewStore.ListByUserAndDateRange(r.Context(), userID, from, to)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date range, expected from/to as YYYY-MM-DD")
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list reviews")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, reviews)
}

// Schedule handles GET /reviews/schedule?from=&to=: the day-by-day plan
// with per-day load and capacity. Omitting both dates returns today
// through the configured horizon.
func (h *ReviewHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	days, err := h.scheduler.GetSchedule(
		r.Context(),
		userID,
		r.URL.Query().Get("from"),
		r.URL.Query().Get("to"),
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, days)
}

// UpdateStatus handles POST /reviews/{id}/status: finalizes a pending
// review as completed (with optional feedback) or skipped.
func (h *ReviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, reviewID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ReviewStatusRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	var (
		review *domain.Review
		err    error
	)
	switch req.Status {
	case domain.ReviewStatusCompleted:
		review, err = h.scheduler.SubmitFeedback(r.Context(), userID, reviewID, req.Feedback)
	case domain.ReviewStatusSkipped:
		review, err = h.scheduler.SkipReview(r.Context(), userID, reviewID)
	default:
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid status")
		return
	}
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, review)
}
