package domain

import (
	"time"

	"github.com/google/uuid"
)

// ItemFilter contains the optional equality and date-range filters for item
// listings. FromDate/ToDate bound due_date inclusively.
type ItemFilter struct {
	CategoryID *uuid.UUID
	Status     *ItemStatus
	AssigneeID *uuid.UUID
	FromDate   *time.Time
	ToDate     *time.Time
}
