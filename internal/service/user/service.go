// Package user implements account administration. All operations are
// restricted to ADMIN callers.
package user

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/auth"
	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by the service.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

// Service implements user administration operations.
type Service struct {
	log   *slog.Logger
	users userRepo
}

// NewService creates a new user service instance.
func NewService(logger *slog.Logger, users userRepo) *Service {
	return &Service{
		log:   logger.With("service", "user"),
		users: users,
	}
}

// CreateInput carries the fields for a new account. Role defaults to USER.
type CreateInput struct {
	Username string
	Email    *string
	Password string
	Role     *domain.UserRole
}

// Validate checks required fields and enum values.
func (in CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "is required"})
	}
	if in.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "is required"})
	}
	if in.Role != nil && !in.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries a partial account update. A non-nil Password is
// hashed before it reaches the repository.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *domain.UserRole
	IsActive *bool
}

// Validate checks the provided fields.
func (in UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "must not be empty"})
	}
	if in.Password != nil && *in.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must not be empty"})
	}
	if in.Role != nil && !in.Role.IsValid() {
		errs = append(errs, domain.FieldError{Field: "role", Message: "unknown role"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// List returns all accounts. Admin only.
func (s *Service) List(ctx context.Context) ([]domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("user.List: %w", err)
	}
	return users, nil
}

// GetByID returns a single account. Admin only.
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("user.GetByID: %w", err)
	}
	return user, nil
}

// Create adds a new account with a hashed password. Admin only.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("user.Create: hash password: %w", err)
	}

	role := domain.UserRoleUser
	if in.Role != nil {
		role = *in.Role
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:           uuid.New(),
		Username:     strings.TrimSpace(in.Username),
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("user.Create: %w", err)
	}

	s.log.InfoContext(ctx, "user created",
		slog.String("user_id", created.ID.String()),
		slog.String("role", created.Role.String()),
	)
	return created, nil
}

// Update applies a partial update to an account. Admin only. Plaintext
// passwords never reach the repository.
func (s *Service) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (*domain.User, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	patch := domain.UserPatch{
		Username: in.Username,
		Email:    in.Email,
		Role:     in.Role,
		IsActive: in.IsActive,
	}

	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, fmt.Errorf("user.Update: hash password: %w", err)
		}
		patch.PasswordHash = &hash
	}

	updated, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("user.Update: %w", err)
	}

	s.log.InfoContext(ctx, "user updated", slog.String("user_id", id.String()))
	return updated, nil
}
