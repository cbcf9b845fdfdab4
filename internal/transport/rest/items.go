package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/internal/service/item"
)

// dateFormat is the wire format for due dates. Items track calendar dates,
// not instants.
const dateFormat = "2006-01-02"

// itemService defines the minimal interface needed by ItemHandler.
type itemService interface {
	Create(ctx context.Context, in item.CreateInput) (*domain.Item, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error)
	Update(ctx context.Context, id uuid.UUID, in item.UpdateInput) (*domain.Item, error)
	Renew(ctx context.Context, id uuid.UUID, in item.RenewInput) (*domain.Item, error)
	Remove(ctx context.Context, id uuid.UUID) error
	History(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error)
}

// ItemHandler serves item REST endpoints.
type ItemHandler struct {
	svc itemService
	log *slog.Logger
}

// NewItemHandler creates an ItemHandler.
func NewItemHandler(svc itemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{svc: svc, log: logger.With("handler", "items")}
}

type createItemRequest struct {
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	DueDate     string         `json:"due_date"`
	Status      *string        `json:"status"`
	CategoryID  *string        `json:"category_id"`
	AssigneeID  *string        `json:"assignee_id"`
	Amount      *float64       `json:"amount"`
	ExtraData   map[string]any `json:"extra_data"`
}

type updateItemRequest struct {
	Title       *string        `json:"title"`
	Description *string        `json:"description"`
	DueDate     *string        `json:"due_date"`
	Status      *string        `json:"status"`
	CategoryID  *string        `json:"category_id"`
	AssigneeID  *string        `json:"assignee_id"`
	Amount      *float64       `json:"amount"`
	ExtraData   map[string]any `json:"extra_data"`
}

type renewItemRequest struct {
	DueDate    string  `json:"due_date"`
	AssigneeID *string `json:"assignee_id"`
	Reason     *string `json:"reason"`
}

type categoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type assigneeResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type itemResponse struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	DueDate     string            `json:"due_date"`
	Status      string            `json:"status"`
	CategoryID  *string           `json:"category_id,omitempty"`
	Category    *categoryResponse `json:"category,omitempty"`
	AssigneeID  *string           `json:"assignee_id,omitempty"`
	Assignee    *assigneeResponse `json:"assignee,omitempty"`
	Amount      *float64          `json:"amount,omitempty"`
	ExtraData   map[string]any    `json:"extra_data,omitempty"`
	CreatedBy   string            `json:"created_by"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type historyResponse struct {
	ID         string         `json:"id"`
	ItemID     string         `json:"item_id"`
	Amount     *float64       `json:"amount,omitempty"`
	Status     string         `json:"status"`
	DueDate    string         `json:"due_date"`
	ExtraData  map[string]any `json:"extra_data,omitempty"`
	AssigneeID *string        `json:"assignee_id,omitempty"`
	Reason     *string        `json:"reason,omitempty"`
	ChangedBy  string         `json:"changed_by"`
	SnapshotAt time.Time      `json:"snapshot_at"`
}

// Create handles POST /items.
func (h *ItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := item.CreateInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		ExtraData:   req.ExtraData,
	}

	if req.DueDate != "" {
		due, err := time.Parse(dateFormat, req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
			return
		}
		in.DueDate = due
	}
	if req.Status != nil {
		status := domain.ItemStatus(*req.Status)
		in.Status = &status
	}

	var ok bool
	if in.CategoryID, ok = parseUUIDPtr(w, req.CategoryID, "category_id"); !ok {
		return
	}
	if in.AssigneeID, ok = parseUUIDPtr(w, req.AssigneeID, "assignee_id"); !ok {
		return
	}

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toItemResponse(created))
}

// List handles GET /items with optional equality filters and an inclusive
// due-date range.
func (h *ItemHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	var filter domain.ItemFilter
	q := r.URL.Query()

	if v := q.Get("category_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "category_id must be a UUID")
			return
		}
		filter.CategoryID = &id
	}
	if v := q.Get("assignee_id"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "assignee_id must be a UUID")
			return
		}
		filter.AssigneeID = &id
	}
	if v := q.Get("status"); v != "" {
		status := domain.ItemStatus(v)
		if !status.IsValid() {
			writeError(w, http.StatusBadRequest, "unknown status")
			return
		}
		filter.Status = &status
	}
	if v := q.Get("from_date"); v != "" {
		from, err := time.Parse(dateFormat, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "from_date must be formatted as YYYY-MM-DD")
			return
		}
		filter.FromDate = &from
	}
	if v := q.Get("to_date"); v != "" {
		to, err := time.Parse(dateFormat, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "to_date must be formatted as YYYY-MM-DD")
			return
		}
		filter.ToDate = &to
	}

	items, err := h.svc.List(r.Context(), filter)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]itemResponse, 0, len(items))
	for i := range items {
		out = append(out, toItemResponse(&items[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /items/{id}.
func (h *ItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	found, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(found))
}

// Update handles PATCH /items/{id}. Omitted fields are left unchanged; an
// assignee_id of "" clears the assignee.
func (h *ItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := item.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Amount:      req.Amount,
		ExtraData:   req.ExtraData,
	}

	if req.DueDate != nil {
		due, err := time.Parse(dateFormat, *req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
			return
		}
		in.DueDate = &due
	}
	if req.Status != nil {
		status := domain.ItemStatus(*req.Status)
		in.Status = &status
	}
	if in.CategoryID, ok = parseUUIDPtr(w, req.CategoryID, "category_id"); !ok {
		return
	}
	if in.SetAssignee, in.AssigneeID, ok = parseAssignee(w, req.AssigneeID); !ok {
		return
	}

	updated, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(updated))
}

// Renew handles PATCH /items/{id}/renew.
func (h *ItemHandler) Renew(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req renewItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := item.RenewInput{Reason: req.Reason}

	if req.DueDate != "" {
		due, err := time.Parse(dateFormat, req.DueDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "due_date must be formatted as YYYY-MM-DD")
			return
		}
		in.DueDate = due
	}
	if in.SetAssignee, in.AssigneeID, ok = parseAssignee(w, req.AssigneeID); !ok {
		return
	}

	renewed, err := h.svc.Renew(r.Context(), id, in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toItemResponse(renewed))
}

// Delete handles DELETE /items/{id}. The item is soft-deleted; history and
// attachments remain.
func (h *ItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), id); err != nil {
		handleError(h.log, w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// History handles GET /items/{id}/history, newest snapshot first.
func (h *ItemHandler) History(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	records, err := h.svc.History(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]historyResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, toHistoryResponse(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// pathID parses the {id} path segment as a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

// parseUUIDPtr parses an optional UUID field. nil stays nil.
func parseUUIDPtr(w http.ResponseWriter, s *string, field string) (*uuid.UUID, bool) {
	if s == nil {
		return nil, true
	}
	id, err := uuid.Parse(*s)
	if err != nil {
		writeError(w, http.StatusBadRequest, field+" must be a UUID")
		return nil, false
	}
	return &id, true
}

// parseAssignee maps the wire assignee_id to the three-valued patch form:
// absent leaves the assignee unchanged, "" clears it, a UUID reassigns.
func parseAssignee(w http.ResponseWriter, s *string) (set bool, id *uuid.UUID, ok bool) {
	if s == nil {
		return false, nil, true
	}
	if *s == "" {
		return true, nil, true
	}
	parsed, err := uuid.Parse(*s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "assignee_id must be a UUID or empty")
		return false, nil, false
	}
	return true, &parsed, true
}

func toItemResponse(i *domain.Item) itemResponse {
	resp := itemResponse{
		ID:          i.ID.String(),
		Title:       i.Title,
		Description: i.Description,
		DueDate:     i.DueDate.Format(dateFormat),
		Status:      i.Status.String(),
		Amount:      i.Amount,
		ExtraData:   i.ExtraData,
		CreatedBy:   i.CreatedByID.String(),
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}

	if i.CategoryID != nil {
		s := i.CategoryID.String()
		resp.CategoryID = &s
	}
	if i.AssigneeID != nil {
		s := i.AssigneeID.String()
		resp.AssigneeID = &s
	}
	if i.Category != nil {
		resp.Category = &categoryResponse{ID: i.Category.ID.String(), Name: i.Category.Name}
	}
	if i.Assignee != nil {
		resp.Assignee = &assigneeResponse{ID: i.Assignee.ID.String(), Username: i.Assignee.Username}
	}

	return resp
}

func toHistoryResponse(h domain.ItemHistory) historyResponse {
	resp := historyResponse{
		ID:         h.ID.String(),
		ItemID:     h.ItemID.String(),
		Amount:     h.Amount,
		Status:     h.Status.String(),
		DueDate:    h.DueDate.Format(dateFormat),
		ExtraData:  h.ExtraData,
		Reason:     h.Reason,
		ChangedBy:  h.ChangedByID.String(),
		SnapshotAt: h.SnapshotAt,
	}
	if h.AssigneeID != nil {
		s := h.AssigneeID.String()
		resp.AssigneeID = &s
	}
	return resp
}
