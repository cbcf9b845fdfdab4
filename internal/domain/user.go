package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is an authenticated application user. Role gates access to user
// management; inactive users cannot log in.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        *string
	PasswordHash string
	Role         UserRole
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserPatch describes a partial update to a user. Nil pointers leave the
// column untouched. PasswordHash carries an already-hashed value; plaintext
// passwords never reach the repository.
type UserPatch struct {
	Username     *string
	Email        *string
	Role         *UserRole
	IsActive     *bool
	PasswordHash *string
}
