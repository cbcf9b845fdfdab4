// Package history implements the ItemHistory repository using PostgreSQL.
// It provides append-only operations: snapshot rows are never updated or
// deleted once written.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fileshare/fileshare-backend/internal/adapter/postgres"
	"github.com/fileshare/fileshare-backend/internal/domain"
)

// Repo provides item history persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new history repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Append inserts a new snapshot row and returns the persisted record.
func (r *Repo) Append(ctx context.Context, h domain.ItemHistory) (domain.ItemHistory, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var extraJSON []byte
	if h.ExtraData != nil {
		var err error
		extraJSON, err = json.Marshal(h.ExtraData)
		if err != nil {
			return domain.ItemHistory{}, fmt.Errorf("item_history %s: marshal extra_data: %w", h.ID, err)
		}
	}

	query, args, err := postgres.Builder().
		Insert("item_history").
		Columns("id", "item_id", "amount", "status", "due_date", "extra_data",
			"assignee_id", "reason", "changed_by_id", "snapshot_at").
		Values(h.ID, h.ItemID, float8PtrToPg(h.Amount), h.Status.String(),
			h.DueDate, extraJSON, uuidPtrToPg(h.AssigneeID),
			textPtrToPg(h.Reason), h.ChangedByID, h.SnapshotAt).
		ToSql()
	if err != nil {
		return domain.ItemHistory{}, fmt.Errorf("item_history %s: build insert: %w", h.ID, err)
	}

	if _, err := q.Exec(ctx, query, args...); err != nil {
		return domain.ItemHistory{}, postgres.MapError(err, "item_history", h.ID)
	}

	return h, nil
}

// ListByItem returns all snapshots for an item, newest first.
func (r *Repo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.ItemHistory, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query, args, err := postgres.Builder().
		Select("id", "item_id", "amount", "status", "due_date", "extra_data",
			"assignee_id", "reason", "changed_by_id", "snapshot_at").
		From("item_history").
		Where(sq.Eq{"item_id": itemID}).
		OrderBy("snapshot_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("item_history: build list: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("item_history: list: %w", err)
	}
	defer rows.Close()

	var records []domain.ItemHistory
	for rows.Next() {
		var (
			h          domain.ItemHistory
			amount     pgtype.Float8
			extraJSON  []byte
			assigneeID pgtype.UUID
			reason     pgtype.Text
			status     string
		)
		err := rows.Scan(&h.ID, &h.ItemID, &amount, &status, &h.DueDate,
			&extraJSON, &assigneeID, &reason, &h.ChangedByID, &h.SnapshotAt)
		if err != nil {
			return nil, fmt.Errorf("item_history: scan: %w", err)
		}

		h.Status = domain.ItemStatus(status)
		h.Amount = pgFloat8ToPtr(amount)
		h.AssigneeID = pgToUUIDPtr(assigneeID)
		h.Reason = pgTextToPtr(reason)

		if len(extraJSON) > 0 {
			extra := make(map[string]any)
			if err := json.Unmarshal(extraJSON, &extra); err != nil {
				return nil, fmt.Errorf("item_history %s: unmarshal extra_data: %w", h.ID, err)
			}
			h.ExtraData = extra
		}

		records = append(records, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("item_history: rows: %w", err)
	}

	return records, nil
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
