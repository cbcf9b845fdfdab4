// Package attachment implements the Attachment repository using PostgreSQL.
package attachment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/fileshare/fileshare-backend/internal/adapter/postgres"
	"github.com/fileshare/fileshare-backend/internal/domain"
)

const attachmentColumns = "id, item_id, file_name, file_path, file_size, mime_type, uploaded_by_id, uploaded_at"

// Repo provides attachment persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new attachment repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new attachment record.
func (r *Repo) Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := q.Exec(ctx,
		`INSERT INTO attachments (id, item_id, file_name, file_path, file_size, mime_type, uploaded_by_id, uploaded_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.ItemID, a.FileName, a.FilePath, a.FileSize, a.MimeType, a.UploadedByID, a.UploadedAt,
	)
	if err != nil {
		return domain.Attachment{}, postgres.MapError(err, "attachment", a.ID)
	}

	return a, nil
}

// GetByID returns an attachment by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	row := q.QueryRow(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE id = $1`, id)

	a, err := scanAttachment(row)
	if err != nil {
		return nil, postgres.MapError(err, "attachment", id)
	}
	return a, nil
}

// ListByItem returns the attachments of an item, newest first.
func (r *Repo) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx,
		`SELECT `+attachmentColumns+` FROM attachments WHERE item_id = $1 ORDER BY uploaded_at DESC`,
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("attachments: list: %w", err)
	}
	defer rows.Close()

	var attachments []domain.Attachment
	for rows.Next() {
		a, err := scanAttachment(rows)
		if err != nil {
			return nil, fmt.Errorf("attachments: scan: %w", err)
		}
		attachments = append(attachments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("attachments: rows: %w", err)
	}

	return attachments, nil
}

func scanAttachment(row pgx.Row) (*domain.Attachment, error) {
	var a domain.Attachment
	err := row.Scan(&a.ID, &a.ItemID, &a.FileName, &a.FilePath, &a.FileSize,
		&a.MimeType, &a.UploadedByID, &a.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
