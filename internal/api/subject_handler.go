package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/store"
)

// SubjectHandler handles subject CRUD requests.
type SubjectHandler struct {
	subjectStore store.SubjectStore
	validator    *validator.Validate
}

// NewSubjectHandler creates a new SubjectHandler with the given dependencies.
func NewSubjectHandler(subjectStore store.SubjectStore) *SubjectHandler {
	return &SubjectHandler{
		subjectStore: subjectStore,
		validator:    validator.New(),
	}
}

// List handles GET /subjects.
func (h *SubjectHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	subjects, err := h.subjectStore.ListByUser(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subjects")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, subjects)
}

// Create handles POST /subjects.
func (h *SubjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CreateSubjectRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	subject, err := domain.NewSubject(userID, req.Name, req.Color)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.subjectStore.Create(r.Context(), subject); err != nil {
		HandleAPIError(w, r, err, "Failed to create subject")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, subject)
}

// Delete handles DELETE /subjects/{id}. Contents and their reviews go
// with it via the cascade.
func (h *SubjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, subjectID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	subject, err := h.subjectStore.GetByID(r.Context(), subjectID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	if subject.UserID != userID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not own this resource")
		return
	}

	if err := h.subjectStore.Delete(r.Context(), subjectID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete subject")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
