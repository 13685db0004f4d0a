package handler

import (
	"net/http"

	"github.com/dlwnsgus777/my-mandalateu/internal/middleware"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// StrategyHandler handles strategy HTTP requests
type StrategyHandler struct {
	svc *service.StrategyService
}

// NewStrategyHandler creates a new strategy handler
func NewStrategyHandler(svc *service.StrategyService) *StrategyHandler {
	return &StrategyHandler{svc: svc}
}

// Update handles PATCH /api/v1/mandalarts/{mandalartId}/strategies/{strategyId}
func (h *StrategyHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mandalartID := r.PathValue("mandalartId")
	strategyID := r.PathValue("strategyId")
	if mandalartID == "" || strategyID == "" {
		WriteError(w, model.NewBadRequestError("mandalart and strategy IDs required"))
		return
	}

	var req model.UpdateStrategyRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	strategy, err := h.svc.UpdateStrategy(ctx, userID, mandalartID, strategyID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, strategy, nil)
}
