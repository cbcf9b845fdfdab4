package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates an active USER-role user with a throwaway password hash.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:           uuid.New(),
		Username:     "testuser-" + suffix,
		PasswordHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
		Role:         domain.UserRoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, username, password_hash, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		user.ID, user.Username, user.PasswordHash, user.Role.String(),
		user.IsActive, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert: %v", err)
	}

	return user
}

// SeedCategory creates a category with a unique name.
func SeedCategory(t *testing.T, pool *pgxpool.Pool) domain.Category {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	category := domain.Category{
		ID:        uuid.New(),
		Name:      "category-" + uniqueSuffix(),
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		category.ID, category.Name, category.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedCategory insert: %v", err)
	}

	return category
}

// SeedItem creates an active PLANNED item owned by createdBy with the given
// due date (truncated to a calendar date by the column type).
func SeedItem(t *testing.T, pool *pgxpool.Pool, createdBy uuid.UUID, dueDate time.Time) domain.Item {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	item := domain.Item{
		ID:          uuid.New(),
		Title:       "item-" + uniqueSuffix(),
		DueDate:     dueDate,
		Status:      domain.ItemStatusPlanned,
		CreatedByID: createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO items (id, title, due_date, status, created_by_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		item.ID, item.Title, item.DueDate, item.Status.String(),
		item.CreatedByID, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedItem insert: %v", err)
	}

	return item
}
