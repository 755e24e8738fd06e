package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
	"github.com/studiumhq/studium-api/internal/store"
)

// ContentHandler handles study content requests. Mutations go through
// the scheduler service so review generation and rebalancing happen in
// the same operation.
type ContentHandler struct {
	contentStore store.ContentStore
	scheduler    scheduler.Service
	validator    *validator.Validate
}

// NewContentHandler creates a new ContentHandler with the given dependencies.
func NewContentHandler(
	contentStore store.ContentStore,
	schedulerService scheduler.Service,
) *ContentHandler {
	return &ContentHandler{
		contentStore: contentStore,
		scheduler:    schedulerService,
		validator:    validator.New(),
	}
}

// List handles GET /contents.
func (h *ContentHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	contents, err := h.contentStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list contents")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, contents)
}

// Create handles POST /contents: records the topic, generates its review
// schedule and rebalances.
func (h *ContentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	content, err := domain.NewStudyContent(userID, req.SubjectID, req.Topic, req.DateStudied, req.Difficulty)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	reviews, err := h.scheduler.AddContent(r.Context(), content)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ContentResponse{
		Content: content,
		Reviews: reviews,
	})
}

// Update handles PUT /contents/{id}. Difficulty or studied-date edits
// regenerate the pending schedule.
func (h *ContentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, contentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	existing, err := h.contentStore.GetByID(r.Context(), contentID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	updated := *existing
	updated.SubjectID = req.SubjectID
	updated.Topic = req.Topic
	updated.DateStudied = req.DateStudied
	updated.Difficulty = req.Difficulty
	updated.UserID = userID

	reviews, err := h.scheduler.UpdateContent(r.Context(), &updated)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ContentResponse{
		Content: &updated,
		Reviews: reviews,
	})
}

// Delete handles DELETE /contents/{id}. Reviews cascade away with it.
func (h *ContentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, contentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.scheduler.DeleteContent(r.Context(), userID, contentID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Retention handles POST /contents/{id}/retention: records a recall
// outcome and applies the retention adjustment to the topic's schedule.
func (h *ContentHandler) Retention(w http.ResponseWriter, r *http.Request) {
	userID, contentID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req RetentionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	err := h.scheduler.AdjustSchedule(r.Context(), userID, contentID, req.Type, req.ReviewID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
