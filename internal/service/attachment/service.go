// Package attachment implements file uploads bound to items: disk
// persistence, metadata rows, image thumbnails, and downloads.
package attachment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/pkg/ctxutil"
)

// attachmentRepo defines the attachment repository interface needed by the service.
type attachmentRepo interface {
	Create(ctx context.Context, a domain.Attachment) (domain.Attachment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Attachment, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error)
}

// itemRepo verifies that the target item exists and is active.
type itemRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)
}

// fileStore persists attachment bytes on disk.
type fileStore interface {
	Save(fileName string, r io.Reader) (string, int64, error)
	Open(relPath string) (io.ReadSeekCloser, error)
}

// thumbnailer renders previews for image attachments.
type thumbnailer interface {
	Generate(relPath string) (string, error)
}

// Service implements attachment operations.
type Service struct {
	log         *slog.Logger
	attachments attachmentRepo
	items       itemRepo
	store       fileStore
	thumbs      thumbnailer
}

// NewService creates a new attachment service. thumbs may be nil to disable
// thumbnail generation.
func NewService(
	logger *slog.Logger,
	attachments attachmentRepo,
	items itemRepo,
	store fileStore,
	thumbs thumbnailer,
) *Service {
	return &Service{
		log:         logger.With("service", "attachment"),
		attachments: attachments,
		items:       items,
		store:       store,
		thumbs:      thumbs,
	}
}

// UploadInput carries an incoming file for an item.
type UploadInput struct {
	ItemID   uuid.UUID
	FileName string
	MimeType string
	Content  io.Reader
}

// Validate checks required fields.
func (in UploadInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.FileName) == "" {
		errs = append(errs, domain.FieldError{Field: "file_name", Message: "is required"})
	}
	if in.Content == nil {
		errs = append(errs, domain.FieldError{Field: "file", Message: "is required"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// Upload stores the file on disk and records its metadata. The item must
// exist and be active. For image uploads a thumbnail is rendered best-effort:
// a failure is logged but never fails the upload.
func (s *Service) Upload(ctx context.Context, in UploadInput) (*domain.Attachment, error) {
	actorID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := in.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.items.GetByID(ctx, in.ItemID); err != nil {
		return nil, fmt.Errorf("attachment.Upload: %w", err)
	}

	relPath, size, err := s.store.Save(in.FileName, in.Content)
	if err != nil {
		return nil, fmt.Errorf("attachment.Upload: %w", err)
	}

	if s.thumbs != nil && strings.HasPrefix(in.MimeType, "image/") {
		if _, err := s.thumbs.Generate(relPath); err != nil {
			s.log.WarnContext(ctx, "thumbnail generation failed",
				slog.String("file", relPath),
				slog.String("error", err.Error()),
			)
		}
	}

	attachment := domain.Attachment{
		ID:           uuid.New(),
		ItemID:       in.ItemID,
		FileName:     in.FileName,
		FilePath:     relPath,
		FileSize:     size,
		MimeType:     in.MimeType,
		UploadedByID: actorID,
		UploadedAt:   time.Now().UTC(),
	}

	created, err := s.attachments.Create(ctx, attachment)
	if err != nil {
		return nil, fmt.Errorf("attachment.Upload: %w", err)
	}

	s.log.InfoContext(ctx, "attachment uploaded",
		slog.String("attachment_id", created.ID.String()),
		slog.String("item_id", in.ItemID.String()),
		slog.Int64("size", size),
	)
	return &created, nil
}

// ListByItem returns the item's attachments, newest first. The item must
// exist and be active.
func (s *Service) ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error) {
	if _, err := s.items.GetByID(ctx, itemID); err != nil {
		return nil, fmt.Errorf("attachment.ListByItem: %w", err)
	}

	attachments, err := s.attachments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("attachment.ListByItem: %w", err)
	}
	return attachments, nil
}

// Download returns the attachment metadata and an open reader for its
// content. The caller closes the reader.
func (s *Service) Download(ctx context.Context, id uuid.UUID) (*domain.Attachment, io.ReadSeekCloser, error) {
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("attachment.Download: %w", err)
	}

	f, err := s.store.Open(attachment.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("attachment.Download: %w", err)
	}
	return attachment, f, nil
}
