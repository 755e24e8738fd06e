package api

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/studiumhq/studium-api/internal/api/shared"
	"github.com/studiumhq/studium-api/internal/domain/dateutil"
	"github.com/studiumhq/studium-api/internal/service/scheduler"
)

// PlannerHandler handles the planner control endpoints: rebalance,
// tomorrow-heavy, pace and capacity lookups.
type PlannerHandler struct {
	scheduler scheduler.Service
	validator *validator.Validate
}

// NewPlannerHandler creates a new PlannerHandler with the given dependencies.
func NewPlannerHandler(schedulerService scheduler.Service) *PlannerHandler {
	return &PlannerHandler{
		scheduler: schedulerService,
		validator: validator.New(),
	}
}

// Rebalance handles POST /planner/rebalance.
func (h *PlannerHandler) Rebalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	moved, err := h.scheduler.Rebalance(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to rebalance schedule")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RebalanceResponse{Moved: moved})
}

// TomorrowHeavy handles POST /planner/tomorrow-heavy.
func (h *PlannerHandler) TomorrowHeavy(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	exception, err := h.scheduler.SetTomorrowHeavy(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to mark tomorrow heavy")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, exception)
}

// Pace handles POST /planner/pace.
func (h *PlannerHandler) Pace(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req PaceRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.scheduler.SetPace(r.Context(), userID, req.Mode); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Capacity handles GET /planner/capacity?date=.
func (h *PlannerHandler) Capacity(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = dateutil.Today()
	}
	if !dateutil.Valid(date) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD")
		return
	}

	days, err := h.scheduler.GetSchedule(r.Context(), userID, date, date)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to compute capacity")
		return
	}
	if len(days) != 1 {
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to compute capacity")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CapacityResponse{
		Date:     date,
		Capacity: days[0].Capacity,
	})
}
