package domain

import (
	"time"

	"github.com/google/uuid"
)

// Attachment is a file associated with an item. FilePath is relative to the
// configured storage base path.
type Attachment struct {
	ID           uuid.UUID
	ItemID       uuid.UUID
	FileName     string
	FilePath     string
	FileSize     int64
	MimeType     string
	UploadedByID uuid.UUID
	UploadedAt   time.Time
}
