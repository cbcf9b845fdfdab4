// Package user implements the User repository using PostgreSQL.
package user

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fileshare/fileshare-backend/internal/adapter/postgres"
	"github.com/fileshare/fileshare-backend/internal/domain"
)

const userColumns = "id, username, email, password_hash, role, is_active, created_at, updated_at"

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByUsername returns a user by username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1`, username)

	u, err := scanUser(row)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}
	return u, nil
}

// Create inserts a new user and returns the persisted domain.User.
func (r *Repo) Create(ctx context.Context, u *domain.User) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, textPtrToPg(u.Email), u.PasswordHash,
		u.Role.String(), u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", u.ID)
	}

	return r.GetByID(ctx, u.ID)
}

// Update applies the patch to a user and returns the resulting state.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.UserPatch) (*domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	upd := postgres.Builder().
		Update("users").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id})

	if patch.Username != nil {
		upd = upd.Set("username", *patch.Username)
	}
	if patch.Email != nil {
		upd = upd.Set("email", *patch.Email)
	}
	if patch.Role != nil {
		upd = upd.Set("role", patch.Role.String())
	}
	if patch.IsActive != nil {
		upd = upd.Set("is_active", *patch.IsActive)
	}
	if patch.PasswordHash != nil {
		upd = upd.Set("password_hash", *patch.PasswordHash)
	}

	query, args, err := upd.ToSql()
	if err != nil {
		return nil, fmt.Errorf("user %s: build update: %w", id, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// List returns all users ordered by creation time.
func (r *Repo) List(ctx context.Context) ([]domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("users: list: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("users: scan: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("users: rows: %w", err)
	}

	return users, nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u     domain.User
		email pgtype.Text
		role  string
	)

	err := row.Scan(&u.ID, &u.Username, &email, &u.PasswordHash, &role,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}

	u.Email = pgTextToPtr(email)
	u.Role = domain.UserRole(role)
	return &u, nil
}

func textPtrToPg(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}
	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}
	return &t.String
}
