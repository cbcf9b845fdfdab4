// Package item implements the Item repository using PostgreSQL.
// All default queries exclude soft-deleted rows.
package item

import (
	"context"
	"encoding/json"
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

// Repo provides item persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new item repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// selectBuilder returns the base SELECT for active items with category and
// assignee resolved for display.
func (r *Repo) selectBuilder() sq.SelectBuilder {
	return postgres.Builder().
		Select(
			"i.id", "i.title", "i.description", "i.due_date", "i.status",
			"i.category_id", "i.assignee_id", "i.amount", "i.extra_data",
			"i.created_by_id", "i.created_at", "i.updated_at",
			"c.name AS category_name", "a.username AS assignee_username",
		).
		From("items i").
		LeftJoin("categories c ON c.id = i.category_id").
		LeftJoin("users a ON a.id = i.assignee_id").
		Where("i.deleted_at IS NULL")
}

// Create inserts a new item and returns the persisted row with relations
// resolved.
func (r *Repo) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	extraJSON, err := marshalExtra(item.ExtraData)
	if err != nil {
		return nil, fmt.Errorf("item %s: marshal extra_data: %w", item.ID, err)
	}

	query, args, err := postgres.Builder().
		Insert("items").
		Columns("id", "title", "description", "due_date", "status",
			"category_id", "assignee_id", "amount", "extra_data",
			"created_by_id", "created_at", "updated_at").
		Values(item.ID, item.Title, textPtrToPg(item.Description), item.DueDate,
			item.Status.String(), uuidPtrToPg(item.CategoryID), uuidPtrToPg(item.AssigneeID),
			float8PtrToPg(item.Amount), extraJSON,
			item.CreatedByID, item.CreatedAt, item.UpdatedAt).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("item %s: build insert: %w", item.ID, err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return nil, postgres.MapError(err, "item", item.ID)
	}

	return r.GetByID(ctx, item.ID)
}

// GetByID returns an active item by primary key with relations resolved.
// Soft-deleted and missing items both yield domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := r.selectBuilder().Where(sq.Eq{"i.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("item %s: build select: %w", id, err)
	}

	row := q.QueryRow(ctx, query, args...)
	item, err := scanItem(row)
	if err != nil {
		return nil, postgres.MapError(err, "item", id)
	}

	return item, nil
}

// Update applies the patch to an active item and returns the resulting state
// with relations resolved. Returns domain.ErrNotFound if the item is missing
// or soft-deleted.
func (r *Repo) Update(ctx context.Context, id uuid.UUID, patch domain.ItemPatch) (*domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	upd := postgres.Builder().
		Update("items").
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL")

	if patch.Title != nil {
		upd = upd.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		upd = upd.Set("description", *patch.Description)
	}
	if patch.DueDate != nil {
		upd = upd.Set("due_date", *patch.DueDate)
	}
	if patch.Status != nil {
		upd = upd.Set("status", patch.Status.String())
	}
	if patch.CategoryID != nil {
		upd = upd.Set("category_id", *patch.CategoryID)
	}
	if patch.Amount != nil {
		upd = upd.Set("amount", *patch.Amount)
	}
	if patch.ExtraData != nil {
		extraJSON, err := marshalExtra(patch.ExtraData)
		if err != nil {
			return nil, fmt.Errorf("item %s: marshal extra_data: %w", id, err)
		}
		upd = upd.Set("extra_data", extraJSON)
	}
	if patch.SetAssignee {
		upd = upd.Set("assignee_id", uuidPtrToPg(patch.AssigneeID))
	}

	query, args, err := upd.ToSql()
	if err != nil {
		return nil, fmt.Errorf("item %s: build update: %w", id, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	return r.GetByID(ctx, id)
}

// SoftDelete marks an active item as deleted. History and attachment rows
// are left untouched.
func (r *Repo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := postgres.Builder().
		Update("items").
		Set("deleted_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		Where("deleted_at IS NULL").
		ToSql()
	if err != nil {
		return fmt.Errorf("item %s: build soft delete: %w", id, err)
	}

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return postgres.MapError(err, "item", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// List returns active items matching the filter, ordered by due_date
// ascending. The due date range bounds are inclusive.
func (r *Repo) List(ctx context.Context, filter domain.ItemFilter) ([]domain.Item, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	sel := r.selectBuilder()
	if filter.CategoryID != nil {
		sel = sel.Where(sq.Eq{"i.category_id": *filter.CategoryID})
	}
	if filter.Status != nil {
		sel = sel.Where(sq.Eq{"i.status": filter.Status.String()})
	}
	if filter.AssigneeID != nil {
		sel = sel.Where(sq.Eq{"i.assignee_id": *filter.AssigneeID})
	}
	if filter.FromDate != nil {
		sel = sel.Where(sq.GtOrEq{"i.due_date": *filter.FromDate})
	}
	if filter.ToDate != nil {
		sel = sel.Where(sq.LtOrEq{"i.due_date": *filter.ToDate})
	}

	query, args, err := sel.OrderBy("i.due_date ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("items: build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("items: list: %w", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("items: scan: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("items: rows: %w", err)
	}

	return items, nil
}

// HardDeleteOlderThan physically removes items soft-deleted before the
// threshold. History and attachment rows go with them via ON DELETE CASCADE.
func (r *Repo) HardDeleteOlderThan(ctx context.Context, threshold time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx,
		`DELETE FROM items WHERE deleted_at IS NOT NULL AND deleted_at < $1`,
		threshold,
	)
	if err != nil {
		return 0, fmt.Errorf("items: hard delete: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ---------------------------------------------------------------------------
// Row scanning
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (*domain.Item, error) {
	var (
		item             domain.Item
		description      pgtype.Text
		categoryID       pgtype.UUID
		assigneeID       pgtype.UUID
		amount           pgtype.Float8
		extraJSON        []byte
		status           string
		categoryName     pgtype.Text
		assigneeUsername pgtype.Text
	)

	err := row.Scan(
		&item.ID, &item.Title, &description, &item.DueDate, &status,
		&categoryID, &assigneeID, &amount, &extraJSON,
		&item.CreatedByID, &item.CreatedAt, &item.UpdatedAt,
		&categoryName, &assigneeUsername,
	)
	if err != nil {
		return nil, err
	}

	item.Status = domain.ItemStatus(status)
	item.Description = pgTextToPtr(description)
	item.CategoryID = pgToUUIDPtr(categoryID)
	item.AssigneeID = pgToUUIDPtr(assigneeID)
	item.Amount = pgFloat8ToPtr(amount)

	if len(extraJSON) > 0 {
		extra := make(map[string]any)
		if err := json.Unmarshal(extraJSON, &extra); err != nil {
			return nil, fmt.Errorf("item %s: unmarshal extra_data: %w", item.ID, err)
		}
		item.ExtraData = extra
	}

	if item.CategoryID != nil && categoryName.Valid {
		item.Category = &domain.Category{ID: *item.CategoryID, Name: categoryName.String}
	}
	if item.AssigneeID != nil && assigneeUsername.Valid {
		item.Assignee = &domain.User{ID: *item.AssigneeID, Username: assigneeUsername.String}
	}

	return &item, nil
}

// marshalExtra encodes extra_data for the jsonb column (nil map -> NULL).
func marshalExtra(extra map[string]any) ([]byte, error) {
	if extra == nil {
		return nil, nil
	}
	return json.Marshal(extra)
}

// ---------------------------------------------------------------------------
// pgtype helpers
// ---------------------------------------------------------------------------

func uuidPtrToPg(id *uuid.UUID) pgtype.UUID {
	if id == nil {
		return pgtype.UUID{}
	}
	return pgtype.UUID{Bytes: *id, Valid: true}
}

func pgToUUIDPtr(v pgtype.UUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	id := uuid.UUID(v.Bytes)
	return &id
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

func float8PtrToPg(f *float64) pgtype.Float8 {
	if f == nil {
		return pgtype.Float8{}
	}
	return pgtype.Float8{Float64: *f, Valid: true}
}

func pgFloat8ToPtr(f pgtype.Float8) *float64 {
	if !f.Valid {
		return nil
	}
	return &f.Float64
}
