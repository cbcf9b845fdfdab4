package rest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
	"github.com/fileshare/fileshare-backend/internal/service/attachment"
)

// attachmentService defines the minimal interface needed by AttachmentHandler.
type attachmentService interface {
	Upload(ctx context.Context, in attachment.UploadInput) (*domain.Attachment, error)
	ListByItem(ctx context.Context, itemID uuid.UUID) ([]domain.Attachment, error)
	Download(ctx context.Context, id uuid.UUID) (*domain.Attachment, io.ReadSeekCloser, error)
}

// AttachmentHandler serves attachment REST endpoints.
type AttachmentHandler struct {
	svc           attachmentService
	log           *slog.Logger
	maxUploadSize int64
}

// NewAttachmentHandler creates an AttachmentHandler.
func NewAttachmentHandler(svc attachmentService, logger *slog.Logger, maxUploadSize int64) *AttachmentHandler {
	return &AttachmentHandler{
		svc:           svc,
		log:           logger.With("handler", "attachments"),
		maxUploadSize: maxUploadSize,
	}
}

type attachmentResponse struct {
	ID         string    `json:"id"`
	ItemID     string    `json:"item_id"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Upload handles POST /items/{id}/attachments. The file arrives as the
// multipart form field "file".
func (h *AttachmentHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form or file too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	created, err := h.svc.Upload(r.Context(), attachment.UploadInput{
		ItemID:   itemID,
		FileName: header.Filename,
		MimeType: mimeType,
		Content:  file,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAttachmentResponse(created))
}

// List handles GET /items/{id}/attachments, newest first.
func (h *AttachmentHandler) List(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	itemID, ok := pathID(w, r)
	if !ok {
		return
	}

	attachments, err := h.svc.ListByItem(r.Context(), itemID)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	out := make([]attachmentResponse, 0, len(attachments))
	for i := range attachments {
		out = append(out, toAttachmentResponse(&attachments[i]))
	}
	writeJSON(w, http.StatusOK, out)
}

// Download handles GET /attachments/{id}/download, streaming the stored file
// with its original name and content type.
func (h *AttachmentHandler) Download(w http.ResponseWriter, r *http.Request) {
	if !requireUser(w, r) {
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	meta, file, err := h.svc.Download(r.Context(), id)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", meta.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", meta.FileName))
	http.ServeContent(w, r, meta.FileName, meta.UploadedAt, file)
}

func toAttachmentResponse(a *domain.Attachment) attachmentResponse {
	return attachmentResponse{
		ID:         a.ID.String(),
		ItemID:     a.ItemID.String(),
		FileName:   a.FileName,
		FileSize:   a.FileSize,
		MimeType:   a.MimeType,
		UploadedBy: a.UploadedByID.String(),
		UploadedAt: a.UploadedAt,
	}
}
