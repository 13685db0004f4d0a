package handler

import (
	"net/http"

	"github.com/dlwnsgus777/my-mandalateu/internal/middleware"
	"github.com/dlwnsgus777/my-mandalateu/internal/model"
	"github.com/dlwnsgus777/my-mandalateu/internal/service"
)

// MandalartHandler handles mandalart HTTP requests
type MandalartHandler struct {
	svc *service.MandalartService
}

// NewMandalartHandler creates a new mandalart handler
func NewMandalartHandler(svc *service.MandalartService) *MandalartHandler {
	return &MandalartHandler{svc: svc}
}

// List handles GET /api/v1/mandalarts - list user's mandalarts
func (h *MandalartHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	summaries, err := h.svc.List(ctx, userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, summaries, nil)
}

// Create handles POST /api/v1/mandalarts - create a mandalart with its full grid
func (h *MandalartHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateMandalartRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	detail, err := h.svc.CreateMandalart(ctx, userID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusCreated, detail, nil)
}

// Get handles GET /api/v1/mandalarts/{mandalartId} - full grid detail
func (h *MandalartHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mandalartID := r.PathValue("mandalartId")
	if mandalartID == "" {
		WriteError(w, model.NewBadRequestError("mandalart ID required"))
		return
	}

	detail, err := h.svc.GetDetail(ctx, userID, mandalartID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, detail, nil)
}

// Update handles PATCH /api/v1/mandalarts/{mandalartId} - rename a mandalart
func (h *MandalartHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mandalartID := r.PathValue("mandalartId")
	if mandalartID == "" {
		WriteError(w, model.NewBadRequestError("mandalart ID required"))
		return
	}

	var req model.UpdateMandalartRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if fieldErrors := req.Validate(); len(fieldErrors) > 0 {
		WriteError(w, model.NewValidationError(fieldErrors))
		return
	}

	mandalart, err := h.svc.UpdateTitle(ctx, userID, mandalartID, req)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, mandalart, nil)
}

// Delete handles DELETE /api/v1/mandalarts/{mandalartId} - delete a mandalart and its grid
func (h *MandalartHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	mandalartID := r.PathValue("mandalartId")
	if mandalartID == "" {
		WriteError(w, model.NewBadRequestError("mandalart ID required"))
		return
	}

	if err := h.svc.Delete(ctx, userID, mandalartID); err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteNoContent(w)
}
