// Package category implements the Category repository using PostgreSQL.
package category

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fileshare/fileshare-backend/internal/adapter/postgres"
	"github.com/fileshare/fileshare-backend/internal/domain"
)

// Repo provides category persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new category repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new category.
func (r *Repo) Create(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO categories (id, name, created_at) VALUES ($1, $2, $3)`,
		c.ID, c.Name, c.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "category", c.ID)
	}

	return c, nil
}

// GetByID returns a category by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var c domain.Category
	err := q.QueryRow(ctx,
		`SELECT id, name, created_at FROM categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "category", id)
	}

	return &c, nil
}

// List returns all categories ordered by name.
func (r *Repo) List(ctx context.Context) ([]domain.Category, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT id, name, created_at FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("categories: list: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("categories: scan: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("categories: rows: %w", err)
	}

	return categories, nil
}
