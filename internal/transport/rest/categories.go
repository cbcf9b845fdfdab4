package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

// categoryService defines the minimal interface needed by CategoryHandler.
type categoryService interface {
	List(ctx context.Context) ([]domain.Category, error)
	Create(ctx context.Context, name string) (*domain.Category, error)
}

// CategoryHandler serves category REST endpoints.
type CategoryHandler struct {
	svc categoryService
	log *slog.Logger
}

// NewCategoryHandler creates a CategoryHandler.
func NewCategoryHandler(svc categoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: logger.With("handler", "categories")}
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	categories, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]categoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, categoryResponse{ID: c.ID.String(), Name: c.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// Create handles POST /categories. Admin only, enforced by the service.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.svc.Create(r.Context(), req.Name)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, categoryResponse{ID: created.ID.String(), Name: created.Name})
}
