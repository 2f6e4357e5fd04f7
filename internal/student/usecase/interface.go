// Package usecase implements student business logic.
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/student/domain"
)

// CreateStudentInput contains the input data for enrolling a new student.
type CreateStudentInput struct {
	Name      string
	BirthDate time.Time
	CPF       string
	Email     string
	Password  string
}

// UpdateStudentInput contains the input data for updating a student.
// The password is never updated through this path.
type UpdateStudentInput struct {
	Name      string
	BirthDate time.Time
	CPF       string
	Email     string
}

// StudentUseCase defines the interface for student operations.
type StudentUseCase interface {
	// Search returns students matching the filter, ordered by name.
	Search(ctx context.Context, filter domain.Filter) ([]*domain.Student, error)

	// Create validates and persists a new student with a hashed password.
	Create(ctx context.Context, input CreateStudentInput) (*domain.Student, error)

	// Update overwrites the mutable fields of an existing student.
	Update(ctx context.Context, id uuid.UUID, input UpdateStudentInput) (*domain.Student, error)

	// Delete removes a student and, through the database, their enrollments.
	Delete(ctx context.Context, id uuid.UUID) error

	// Export renders the full roster as an xlsx workbook.
	Export(ctx context.Context) ([]byte, error)
}

// StudentRepository defines the student repository operations required by the use case.
type StudentRepository interface {
	Create(ctx context.Context, student *domain.Student) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error)
	Search(ctx context.Context, filter domain.Filter) ([]*domain.Student, error)
	ListAll(ctx context.Context) ([]*domain.Student, error)
	EmailExists(ctx context.Context, email string, excludeID uuid.UUID) (bool, error)
	CPFExists(ctx context.Context, cpf string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, student *domain.Student) error
	Delete(ctx context.Context, id uuid.UUID) error
}
