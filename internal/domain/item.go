package domain

import (
	"time"

	"github.com/google/uuid"
)

// Item is a trackable unit of work with a due date, status, and optional
// assignee. Soft-deleted items (DeletedAt set) are excluded from all default
// queries, but their history rows remain.
type Item struct {
	ID          uuid.UUID
	Title       string
	Description *string
	DueDate     time.Time
	Status      ItemStatus
	CategoryID  *uuid.UUID
	AssigneeID  *uuid.UUID
	Amount      *float64
	ExtraData   map[string]any
	CreatedByID uuid.UUID
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time

	// Category and Assignee are resolved for display on reads; they are never
	// written through the item itself.
	Category *Category
	Assignee *User
}

// IsDeleted reports whether the item has been soft-deleted.
func (i *Item) IsDeleted() bool {
	return i.DeletedAt != nil
}

// Category groups items for filtering and display.
type Category struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// ItemHistory is an immutable snapshot of an item's mutable fields at the
// moment of a change. Rows are append-only: never updated or deleted.
type ItemHistory struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	Amount      *float64
	Status      ItemStatus
	DueDate     time.Time
	ExtraData   map[string]any
	AssigneeID  *uuid.UUID
	Reason      *string
	ChangedByID uuid.UUID
	SnapshotAt  time.Time
}

// Snapshot captures the item's tracked fields into a new history record.
// Reason is only meaningful for renewals; plain updates pass nil.
func (i *Item) Snapshot(changedBy uuid.UUID, reason *string) ItemHistory {
	return ItemHistory{
		ID:          uuid.New(),
		ItemID:      i.ID,
		Amount:      i.Amount,
		Status:      i.Status,
		DueDate:     i.DueDate,
		ExtraData:   i.ExtraData,
		AssigneeID:  i.AssigneeID,
		Reason:      reason,
		ChangedByID: changedBy,
		SnapshotAt:  time.Now().UTC(),
	}
}

// ItemPatch describes a partial update to an item. Nil pointers leave the
// column untouched. Assignee changes are three-valued: SetAssignee=false
// leaves the assignee alone; SetAssignee=true with a nil AssigneeID clears
// it; SetAssignee=true with a value reassigns.
type ItemPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *ItemStatus
	CategoryID  *uuid.UUID
	Amount      *float64
	ExtraData   map[string]any
	AssigneeID  *uuid.UUID
	SetAssignee bool
}

// IsEmpty reports whether the patch changes nothing.
func (p ItemPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil &&
		p.Status == nil && p.CategoryID == nil && p.Amount == nil &&
		p.ExtraData == nil && !p.SetAssignee
}
