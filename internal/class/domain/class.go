// Package domain defines the core class entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/errors"
)

// Class represents a course offering students can enroll in.
type Class struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows class searches. Name matches by substring; zero-value
// fields are ignored.
type Filter struct {
	Name     string
	Page     int
	PageSize int
}

// Class-specific error definitions.
var (
	// ErrClassNotFound indicates the requested class does not exist.
	ErrClassNotFound = errors.Wrap(errors.ErrNotFound, "class not found")

	// ErrClassNameInUse indicates another class already uses the name.
	ErrClassNameInUse = errors.Wrap(errors.ErrConflict, "The class name is already in use.")
)
