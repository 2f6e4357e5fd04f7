// Package usecase implements class business logic.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/class/domain"
)

// CreateClassInput contains the input data for creating a class.
type CreateClassInput struct {
	Name        string
	Description string
}

// UpdateClassInput contains the input data for updating a class.
type UpdateClassInput struct {
	Name        string
	Description string
}

// ClassUseCase defines the interface for class operations.
type ClassUseCase interface {
	// Search returns classes matching the filter, ordered by name.
	Search(ctx context.Context, filter domain.Filter) ([]*domain.Class, error)

	// Create validates and persists a new class.
	Create(ctx context.Context, input CreateClassInput) (*domain.Class, error)

	// Update overwrites the mutable fields of an existing class.
	Update(ctx context.Context, id uuid.UUID, input UpdateClassInput) (*domain.Class, error)

	// Delete removes a class and, through the database, its enrollments.
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClassRepository defines the class repository operations required by the use case.
type ClassRepository interface {
	Create(ctx context.Context, class *domain.Class) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error)
	Search(ctx context.Context, filter domain.Filter) ([]*domain.Class, error)
	NameExists(ctx context.Context, name string, excludeID uuid.UUID) (bool, error)
	Update(ctx context.Context, class *domain.Class) error
	Delete(ctx context.Context, id uuid.UUID) error
}
