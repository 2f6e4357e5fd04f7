// Package domain defines the core enrollment entity and its errors.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/errors"
)

// Enrollment links a student to a class. The (StudentID, ClassID) pair is
// the primary key; a student enrolls in a class at most once.
type Enrollment struct {
	StudentID        uuid.UUID `json:"student_id"`
	ClassID          uuid.UUID `json:"class_id"`
	RegistrationDate time.Time `json:"registration_date"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// View is an enrollment joined with the names of its student and class.
type View struct {
	StudentID        uuid.UUID `json:"student_id"`
	StudentName      string    `json:"student_name"`
	ClassID          uuid.UUID `json:"class_id"`
	ClassName        string    `json:"class_name"`
	RegistrationDate time.Time `json:"registration_date"`
}

// DeleteFilter selects enrollments for bulk deletion. At least one field
// must be set; both combine conjunctively.
type DeleteFilter struct {
	StudentID uuid.UUID
	ClassID   uuid.UUID
}

// IsEmpty reports whether no filter field is set.
func (f DeleteFilter) IsEmpty() bool {
	return f.StudentID == uuid.Nil && f.ClassID == uuid.Nil
}

// Enrollment-specific error definitions.
var (
	// ErrEnrollmentNotFound indicates the requested enrollment does not exist.
	ErrEnrollmentNotFound = errors.Wrap(errors.ErrNotFound, "enrollment not found")

	// ErrEnrollmentAlreadyExists indicates the student is already enrolled in the class.
	ErrEnrollmentAlreadyExists = errors.Wrap(errors.ErrConflict, "Student is already enrolled in this class")

	// ErrNoEnrollmentsMatched indicates a filtered delete matched nothing.
	ErrNoEnrollmentsMatched = errors.Wrap(errors.ErrNotFound, "No enrollments found for the given filters.")
)
