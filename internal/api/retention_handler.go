package api

import (
	"net/http"
	"strconv"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
)

// defaultRetentionEventLimit caps the events list when the client does
// not ask for a specific page size.
const defaultRetentionEventLimit = 100

// RetentionHandler serves the retention event audit log.
type RetentionHandler struct {
	scheduler scheduler.Service
}

// NewRetentionHandler creates a new RetentionHandler with the given dependencies.
func NewRetentionHandler(schedulerService scheduler.Service) *RetentionHandler {
	return &RetentionHandler{
		scheduler: schedulerService,
	}
}

// List handles GET /retention-events with an optional ?limit=.
func (h *RetentionHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	limit := defaultRetentionEventLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = parsed
	}

	events, err := h.scheduler.ListRetentionEvents(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list retention events")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, events)
}
