package usecase

import (
	"context"
	"errors"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/class/domain"
	"github.com/allisson/school/internal/database"
	appValidation "github.com/allisson/school/internal/validation"
)

// classNameInUseMessage doubles as the field-level validation message on
// create and the conflict message on update.
const classNameInUseMessage = "The class name is already in use."

// classUseCase handles class business logic.
type classUseCase struct {
	classRepo ClassRepository
	txManager database.TxManager
}

// NewClassUseCase creates a new ClassUseCase.
func NewClassUseCase(classRepo ClassRepository, txManager database.TxManager) ClassUseCase {
	return &classUseCase{
		classRepo: classRepo,
		txManager: txManager,
	}
}

// Search returns classes matching the filter, ordered by name.
func (uc *classUseCase) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Class, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return uc.classRepo.Search(ctx, filter)
}

// validateClassInput validates the class name and description.
func validateClassInput(name, description string) error {
	input := struct {
		Name        string
		Description string
	}{Name: name, Description: description}

	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(3, 100).Error("name must be between 3 and 100 characters"),
			appValidation.PersonName,
		),
		validation.Field(&input.Description,
			validation.Required.Error("description is required"),
			appValidation.NotBlank,
		),
	)
	return appValidation.WrapValidationError(err)
}

// Create validates and persists a new class. A duplicate name comes back as
// a field-level validation error.
func (uc *classUseCase) Create(
	ctx context.Context,
	input CreateClassInput,
) (*domain.Class, error) {
	if err := validateClassInput(input.Name, input.Description); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)

	taken, err := uc.classRepo.NameExists(ctx, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, appValidation.WrapValidationError(validation.Errors{
			"name": errors.New(classNameInUseMessage),
		})
	}

	class := &domain.Class{
		ID:          uuid.Must(uuid.NewV7()),
		Name:        name,
		Description: strings.TrimSpace(input.Description),
	}

	if err := uc.classRepo.Create(ctx, class); err != nil {
		return nil, err
	}

	return class, nil
}

// Update overwrites the mutable fields of an existing class. The name
// conflict pre-check and the write run inside one transaction.
func (uc *classUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateClassInput,
) (*domain.Class, error) {
	if err := validateClassInput(input.Name, input.Description); err != nil {
		return nil, err
	}

	var updated *domain.Class
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		taken, err := uc.classRepo.NameExists(ctx, strings.TrimSpace(input.Name), id)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrClassNameInUse
		}

		class, err := uc.classRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		class.Name = strings.TrimSpace(input.Name)
		class.Description = strings.TrimSpace(input.Description)

		if err := uc.classRepo.Update(ctx, class); err != nil {
			return err
		}

		updated = class
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a class. Enrollments cascade at the database level.
func (uc *classUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.classRepo.Delete(ctx, id)
}
