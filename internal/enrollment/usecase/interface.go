// Package usecase implements enrollment business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/enrollment/domain"
)

// EnrollInput contains the input data for creating or updating an enrollment.
type EnrollInput struct {
	StudentID        uuid.UUID
	ClassID          uuid.UUID
	RegistrationDate time.Time
}

// EnrollmentUseCase defines the interface for enrollment operations.
type EnrollmentUseCase interface {
	// List returns all enrollments joined with student and class names.
	List(ctx context.Context) ([]*domain.View, error)

	// Enroll validates and persists a new enrollment.
	Enroll(ctx context.Context, input EnrollInput) error

	// UpdateRegistrationDate overwrites the registration date of an existing pair.
	UpdateRegistrationDate(ctx context.Context, input EnrollInput) error

	// DeleteByFilter removes every enrollment matching a non-empty filter.
	DeleteByFilter(ctx context.Context, filter domain.DeleteFilter) error
}

// EnrollmentRepository defines the enrollment repository operations required by the use case.
// The existence checks live here so enrollment validation does not reach into
// the student and class contexts.
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *domain.Enrollment) error
	ListWithNames(ctx context.Context) ([]*domain.View, error)
	UpdateRegistrationDate(ctx context.Context, studentID, classID uuid.UUID, registrationDate time.Time) error
	DeleteByFilter(ctx context.Context, filter domain.DeleteFilter) (int64, error)
	StudentExists(ctx context.Context, id uuid.UUID) (bool, error)
	ClassExists(ctx context.Context, id uuid.UUID) (bool, error)
}
