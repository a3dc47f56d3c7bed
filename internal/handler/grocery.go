package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grocerly/grocerly/internal/auth"
	"github.com/grocerly/grocerly/internal/handler/dto"
	"github.com/grocerly/grocerly/internal/service"
)

// GroceryHandler handles HTTP requests for grocery item operations.
// Every route is behind the session guard, so the owner id always comes
// from the request context.
type GroceryHandler struct {
	svc    *service.GroceryService
	logger *slog.Logger
}

// NewGroceryHandler creates a new GroceryHandler.
func NewGroceryHandler(svc *service.GroceryService, logger *slog.Logger) *GroceryHandler {
	return &GroceryHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /groceries?filter={all|active|completed}.
func (h *GroceryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	items, err := h.svc.List(r.Context(), user.ID, r.URL.Query().Get("filter"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToItemListResponse(items))
}

// Stats handles GET /groceries/stats.
func (h *GroceryHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	stats, err := h.svc.Stats(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// Add handles POST /groceries.
func (h *GroceryHandler) Add(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	var req dto.AddItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.AddItemInput{
		Name:     req.Name,
		Category: req.Category,
	}
	if req.Quantity != nil {
		quantity := req.Quantity.Int()
		input.Quantity = &quantity
	}
	if req.Price != nil {
		price := req.Price.Float64()
		input.Price = &price
	}

	item, err := h.svc.Add(r.Context(), user.ID, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_added",
		"item_id", item.ID,
		"user_id", user.ID,
		"category", item.Category,
	)

	writeJSON(w, http.StatusCreated, dto.ToItemResponse(item))
}

// Edit handles PUT /groceries/edit/{id}.
func (h *GroceryHandler) Edit(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Item ID is required")
		return
	}

	var req dto.EditItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	input := service.EditItemInput{
		Name:     req.Name,
		Category: req.Category,
	}
	if req.Quantity != nil {
		quantity := req.Quantity.Int()
		input.Quantity = &quantity
	}
	if req.Price != nil {
		price := req.Price.Float64()
		input.Price = &price
	}

	item, err := h.svc.Edit(r.Context(), user.ID, id, input)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_updated", "item_id", item.ID, "user_id", user.ID)

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Toggle handles PUT /groceries/toggle/{id}.
func (h *GroceryHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Item ID is required")
		return
	}

	item, err := h.svc.ToggleComplete(r.Context(), user.ID, id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_toggled",
		"item_id", item.ID,
		"user_id", user.ID,
		"completed", item.Completed,
	)

	writeJSON(w, http.StatusOK, dto.ToItemResponse(item))
}

// Delete handles DELETE /groceries/{id}.
func (h *GroceryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Item ID is required")
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("item_deleted", "item_id", id, "user_id", user.ID)

	writeJSON(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// ClearCompleted handles DELETE /groceries/completed.
func (h *GroceryHandler) ClearCompleted(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	count, err := h.svc.ClearCompleted(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("completed_items_cleared", "user_id", user.ID, "deleted", count)

	writeJSON(w, http.StatusOK, dto.ClearResponse{Deleted: count})
}

// ClearAll handles DELETE /groceries.
func (h *GroceryHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	user := auth.MustUserFromContext(r.Context())

	count, err := h.svc.ClearAll(r.Context(), user.ID)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("items_cleared", "user_id", user.ID, "deleted", count)

	writeJSON(w, http.StatusOK, dto.ClearResponse{Deleted: count})
}

// handleServiceError maps grocery service errors to HTTP responses.
func (h *GroceryHandler) handleServiceError(w http.ResponseWriter, err error) {
	var validationErr *service.ValidationError

	switch {
	case errors.As(err, &validationErr):
		writeValidationError(w, validationErr.Fields)
	case errors.Is(err, service.ErrItemNotFound):
		writeError(w, http.StatusNotFound, "ITEM_NOT_FOUND", "Item not found")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
