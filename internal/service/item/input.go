package item

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fileshare/fileshare-backend/internal/domain"
)

// CreateInput carries the fields for a new item.
type CreateInput struct {
	Title       string
	Description *string
	DueDate     time.Time
	Status      *domain.ItemStatus
	CategoryID  *uuid.UUID
	AssigneeID  *uuid.UUID
	Amount      *float64
	ExtraData   map[string]any
}

// Validate checks required fields and enum values.
func (in CreateInput) Validate() error {
	var errs []domain.FieldError

	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "is required"})
	}
	if in.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "is required"})
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// UpdateInput carries a partial update. Nil pointers leave fields unchanged.
// Assignee changes follow the same three-valued convention as ItemPatch:
// SetAssignee=false leaves the assignee alone, SetAssignee=true with a nil
// AssigneeID unassigns.
type UpdateInput struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *domain.ItemStatus
	CategoryID  *uuid.UUID
	Amount      *float64
	ExtraData   map[string]any
	AssigneeID  *uuid.UUID
	SetAssignee bool
}

// Validate checks the provided fields.
func (in UpdateInput) Validate() error {
	var errs []domain.FieldError

	if in.Title != nil && strings.TrimSpace(*in.Title) == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "must not be empty"})
	}
	if in.DueDate != nil && in.DueDate.IsZero() {
		errs = append(errs, domain.FieldError{Field: "due_date", Message: "must be a valid date"})
	}
	if in.Status != nil && !in.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// patch converts the input into a repository patch.
func (in UpdateInput) patch() domain.ItemPatch {
	return domain.ItemPatch{
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		CategoryID:  in.CategoryID,
		Amount:      in.Amount,
		ExtraData:   in.ExtraData,
		AssigneeID:  in.AssigneeID,
		SetAssignee: in.SetAssignee,
	}
}

// RenewInput carries a due-date renewal. DueDate is required. The assignee
// is three-valued: SetAssignee=false leaves it unchanged, SetAssignee=true
// with nil AssigneeID unassigns, SetAssignee=true with a value reassigns.
// Reason, when present, is recorded on the history snapshot.
type RenewInput struct {
	DueDate     time.Time
	AssigneeID  *uuid.UUID
	SetAssignee bool
	Reason      *string
}

// Validate checks that the new due date is present.
func (in RenewInput) Validate() error {
	if in.DueDate.IsZero() {
		return domain.NewValidationError("due_date", "is required")
	}
	return nil
}
