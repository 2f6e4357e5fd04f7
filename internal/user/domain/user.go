// Package domain defines the user entity used for authentication.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/errors"
)

// User represents a back-office user. Users exist only to authenticate; every
// user carries the admin role.
type User struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Password  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain-specific errors for user operations.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.Wrap(errors.ErrNotFound, "user not found")

	// ErrUserAlreadyExists indicates a user with the same email already exists.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user already exists")
)
