package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
)

// SettingsHandler handles user settings requests.
type SettingsHandler struct {
	scheduler scheduler.Service
	validator *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler with the given dependencies.
func NewSettingsHandler(schedulerService scheduler.Service) *SettingsHandler {
	return &SettingsHandler{
		scheduler: schedulerService,
		validator: validator.New(),
	}
}

// Get handles GET /settings. Users who never saved settings get the
// defaults.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	settings, err := h.scheduler.GetSettings(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load settings")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}

// Update handles PUT /settings and rebalances, since capacity and
// interval changes invalidate the current plan.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req UpdateSettingsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	settings := &domain.UserSettings{
		UserID:     userID,
		DailyLimit: req.DailyLimit,
		Intervals:  req.Intervals,
		PaceMode:   req.PaceMode,
		HeavyDays:  req.HeavyDays,
	}
	if err := h.scheduler.UpdateSettings(r.Context(), settings); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, settings)
}
