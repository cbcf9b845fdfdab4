package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/internal/service/user"
)

// userService defines the minimal interface needed by UserHandler.
type userService interface {
	List(ctx context.Context) ([]domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, in user.CreateInput) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, in user.UpdateInput) (*domain.User, error)
}

// UserHandler serves user administration REST endpoints. The service layer
// enforces the ADMIN requirement.
type UserHandler struct {
	svc userService
	log *slog.Logger
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(svc userService, logger *slog.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: logger.With("handler", "users")}
}

type createUserRequest struct {
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Password string  `json:"password"`
	Role     *string `json:"role"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

// userResponse never exposes the password hash.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// List handles GET /users.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	users, err := h.svc.List(r.Context())
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Get handles GET /users/{id}.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toUserResponse(found))
}

// Create handles POST /users.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := user.CreateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		in.Role = &role
	}

	created, err := h.svc.Create(r.Context(), in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(created))
}

// Update handles PATCH /users/{id}. A password field is rehashed by the
// service; the plaintext is never persisted.
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := user.UpdateInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		IsActive: req.IsActive,
	}
	if req.Role != nil {
		role := domain.UserRole(*req.Role)
		in.Role = &role
	}

	updated, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(updated))
}

func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:        u.ID.String(),
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
