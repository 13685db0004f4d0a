package handler

import (
	"net/http"

	"github.com/dlwnsgus777/my-mandalateu/internal/middleware"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// DashboardHandler handles dashboard statistics HTTP requests.
// All endpoints are read-only and scoped to a single mandalart.
type DashboardHandler struct {
	svc *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Summary handles GET /api/v1/mandalarts/{mandalartId}/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	userID, mandalartID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Summary(r.Context(), userID, mandalartID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "dashboard summary"))
		return
	}

	WriteData(w, http.StatusOK, report, nil)
}

// Weekly handles GET /api/v1/mandalarts/{mandalartId}/dashboard/weekly
func (h *DashboardHandler) Weekly(w http.ResponseWriter, r *http.Request) {
	userID, mandalartID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Weekly(r.Context(), userID, mandalartID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "dashboard weekly"))
		return
	}

	WriteData(w, http.StatusOK, report, nil)
}

// Streak handles GET /api/v1/mandalarts/{mandalartId}/dashboard/streak
func (h *DashboardHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, mandalartID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	report, err := h.svc.Streak(r.Context(), userID, mandalartID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "dashboard streak"))
		return
	}

	WriteData(w, http.StatusOK, report, nil)
}

// Deadlines handles GET /api/v1/mandalarts/{mandalartId}/dashboard/deadlines
func (h *DashboardHandler) Deadlines(w http.ResponseWriter, r *http.Request) {
	userID, mandalartID, ok := h.requestScope(w, r)
	if !ok {
		return
	}

	entries, err := h.svc.Deadlines(r.Context(), userID, mandalartID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "dashboard deadlines"))
		return
	}

	WriteData(w, http.StatusOK, entries, nil)
}

// requestScope extracts the authenticated user and the path mandalart ID,
// writing an error response when either is missing
func (h *DashboardHandler) requestScope(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return "", "", false
	}

	mandalartID := r.PathValue("mandalartId")
	if mandalartID == "" {
		WriteError(w, model.NewBadRequestError("mandalart ID required"))
		return "", "", false
	}

	return userID, mandalartID, true
}
