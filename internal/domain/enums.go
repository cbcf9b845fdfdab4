package domain

// ItemStatus represents the lifecycle stage of a tracked item.
type ItemStatus string

const (
	ItemStatusPlanned    ItemStatus = "PLANNED"
	ItemStatusInProgress ItemStatus = "IN_PROGRESS"
	ItemStatusDone       ItemStatus = "DONE"
)

func (s ItemStatus) String() string { return string(s) }

func (s ItemStatus) IsValid() bool {
	switch s {
	case ItemStatusPlanned, ItemStatusInProgress, ItemStatusDone:
		return true
	}
	return false
}

// UserRole gates access to user management and certain item operations.
type UserRole string

const (
	UserRoleAdmin UserRole = "ADMIN"
	UserRoleUser  UserRole = "USER"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleAdmin, UserRoleUser:
		return true
	}
	return false
}
