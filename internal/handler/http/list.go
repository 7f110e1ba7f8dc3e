package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/httputil"
	"github.com/screenbox/watchlist/pkg/pagination"
	"github.com/screenbox/watchlist/pkg/validator"
)

// ListService is the service surface the HTTP handlers depend on.
type ListService interface {
	AddToList(ctx context.Context, userID, itemID, itemType string) (*domain.ListItem, error)
	RemoveFromList(ctx context.Context, userID, itemID string) error
	ListItems(ctx context.Context, userID string, itemType *domain.ItemType, params pagination.Params) (*pagination.Result[domain.ListItem], error)
}

// ListHandler exposes the watchlist operations over HTTP.
type ListHandler struct {
	svc    ListService
	logger *slog.Logger
}

// NewListHandler creates HTTP handlers for the watchlist endpoints.
func NewListHandler(svc ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{svc: svc, logger: logger}
}

// AddRequest is the payload for adding an item to a list. Item type values
// are checked by the service so the endpoint reports unknown types as invalid
// input rather than a schema violation.
type AddRequest struct {
	UserID   string `json:"user_id" validate:"required,len=24"`
	ItemID   string `json:"item_id" validate:"required,len=24"`
	ItemType string `json:"item_type" validate:"required"`
}

// MessageResponse carries a human-readable confirmation.
type MessageResponse struct {
	Message string `json:"message"`
}

// Add handles POST /api/v1/list.
func (h *ListHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	item, err := h.svc.AddToList(r.Context(), req.UserID, req.ItemID, req.ItemType)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: item})
}

// Remove handles DELETE /api/v1/list/{userID}/{itemID}.
func (h *ListHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	itemID := chi.URLParam(r, "itemID")

	if len(userID) != 24 || len(itemID) != 24 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_INPUT",
				Message: "user and item ids must be exactly 24 characters",
			},
		})
		return
	}

	if err := h.svc.RemoveFromList(r.Context(), userID, itemID); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: MessageResponse{Message: "item removed from list"},
	})
}

// List handles GET /api/v1/list.
func (h *ListHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if len(userID) != 24 {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{
				Code:    "INVALID_INPUT",
				Message: "user_id query parameter must be exactly 24 characters",
			},
		})
		return
	}

	// An unrecognized item_type filter simply matches nothing.
	var itemType *domain.ItemType
	if t := r.URL.Query().Get("item_type"); t != "" {
		kind := domain.ItemType(t)
		itemType = &kind
	}

	params := pagination.FromRequest(r)

	result, err := h.svc.ListItems(r.Context(), userID, itemType, params)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}
