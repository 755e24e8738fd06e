package api

import (
	"net/http"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/service/suggestion"
)

// SuggestionHandler serves the "next best action" hint.
type SuggestionHandler struct {
	suggestions suggestion.Service
}

// NewSuggestionHandler creates a new SuggestionHandler with the given dependencies.
func NewSuggestionHandler(suggestionService suggestion.Service) *SuggestionHandler {
	return &SuggestionHandler{
		suggestions: suggestionService,
	}
}

// Next handles GET /suggestions/next.
func (h *SuggestionHandler) Next(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	next, err := h.suggestions.NextAction(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute suggestion")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, next)
}
