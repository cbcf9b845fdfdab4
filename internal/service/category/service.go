// Package category implements category listing and administration.
package category

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/pkg/ctxutil"
)

// categoryRepo defines the category repository interface needed by the service.
type categoryRepo interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
}

// Service implements category operations.
type Service struct {
	log        *slog.Logger
	categories categoryRepo
}

// NewService creates a new category service instance.
func NewService(logger *slog.Logger, categories categoryRepo) *Service {
	return &Service{
		log:        logger.With("service", "category"),
		categories: categories,
	}
}

// List returns all categories ordered by name.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("category.List: %w", err)
	}
	return categories, nil
}

// Create adds a new category. Admin only.
func (s *Service) Create(ctx context.Context, name string) (*domain.Category, error) {
	if !ctxutil.IsAdminCtx(ctx) {
		return nil, domain.ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewValidationError("name", "is required")
	}

	created, err := s.categories.Create(ctx, &domain.Category{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("category.Create: %w", err)
	}

	s.log.InfoContext(ctx, "category created", slog.String("category_id", created.ID.String()))
	return created, nil
}
