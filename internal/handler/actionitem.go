package handler

import (
	"net/http"

	"github.com/dlwnsgus777/my-mandalateu/internal/middleware"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// ActionItemHandler handles action item HTTP requests
type ActionItemHandler struct {
	svc *service.ActionItemService
}

// NewActionItemHandler creates a new action item handler
func NewActionItemHandler(svc *service.ActionItemService) *ActionItemHandler {
	return &ActionItemHandler{svc: svc}
}

// Update handles PATCH /api/v1/mandalarts/{mandalartId}/strategies/{strategyId}/action-items/{actionItemId}
func (h *ActionItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mandalartID := r.PathValue("mandalartId")
	strategyID := r.PathValue("strategyId")
	itemID := r.PathValue("actionItemId")
	if mandalartID == "" || strategyID == "" || itemID == "" {
		WriteError(w, model.NewBadRequestError("mandalart, strategy and action item IDs required"))
		return
	}

	var req model.UpdateActionItemRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	item, err := h.svc.UpdateActionItem(ctx, userID, mandalartID, strategyID, itemID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, item, nil)
}
