package usecase

import (
	"context"
	"errors"
	"strings"

	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	authService "github.com/allisson/school/internal/auth/service"
	"github.com/allisson/school/internal/database"
	"github.com/allisson/school/internal/student/domain"
	appValidation "github.com/allisson/school/internal/validation"
)

// studentUseCase handles student business logic.
type studentUseCase struct {
	studentRepo     StudentRepository
	passwordService authService.PasswordService
	txManager       database.TxManager
}

// NewStudentUseCase creates a new StudentUseCase.
func NewStudentUseCase(
	studentRepo StudentRepository,
	passwordService authService.PasswordService,
	txManager database.TxManager,
) StudentUseCase {
	return &studentUseCase{
		studentRepo:     studentRepo,
		passwordService: passwordService,
		txManager:       txManager,
	}
}

// Search returns students matching the filter, ordered by name.
func (uc *studentUseCase) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Student, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 10
	}
	return uc.studentRepo.Search(ctx, filter)
}

// validateCreateStudentInput validates the student creation input.
func (uc *studentUseCase) validateCreateStudentInput(input CreateStudentInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(3, 100).Error("name must be between 3 and 100 characters"),
			appValidation.PersonName,
		),
		validation.Field(&input.BirthDate,
			validation.Required.Error("birth_date is required"),
			appValidation.AgeBetween(14, 100),
		),
		validation.Field(&input.CPF,
			validation.Required.Error("cpf is required"),
			appValidation.CPF,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 100).Error("email must be between 5 and 100 characters"),
		),
		validation.Field(&input.Password,
			validation.Required.Error("password is required"),
			appValidation.PasswordStrength{
				MinLength:      8,
				RequireUpper:   true,
				RequireLower:   true,
				RequireNumber:  true,
				RequireSpecial: true,
			},
		),
	)
	return appValidation.WrapValidationError(err)
}

// validateUpdateStudentInput validates the student update input.
func (uc *studentUseCase) validateUpdateStudentInput(input UpdateStudentInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(3, 100).Error("name must be between 3 and 100 characters"),
			appValidation.PersonName,
		),
		validation.Field(&input.BirthDate,
			validation.Required.Error("birth_date is required"),
			appValidation.AgeBetween(14, 100),
		),
		validation.Field(&input.CPF,
			validation.Required.Error("cpf is required"),
			appValidation.CPF,
		),
		validation.Field(&input.Email,
			validation.Required.Error("email is required"),
			appValidation.NotBlank,
			appValidation.Email,
			validation.Length(5, 100).Error("email must be between 5 and 100 characters"),
		),
	)
	return appValidation.WrapValidationError(err)
}

// checkUniqueness verifies that the email and CPF are not already registered
// by another student. The two lookups run concurrently; violations come back
// as field-level validation errors.
func (uc *studentUseCase) checkUniqueness(
	ctx context.Context,
	email, cpf string,
	excludeID uuid.UUID,
) error {
	var emailTaken, cpfTaken bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		emailTaken, err = uc.studentRepo.EmailExists(gctx, email, excludeID)
		return err
	})
	g.Go(func() error {
		var err error
		cpfTaken, err = uc.studentRepo.CPFExists(gctx, cpf, excludeID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fieldErrors := validation.Errors{}
	if emailTaken {
		fieldErrors["email"] = errors.New("Email already registered")
	}
	if cpfTaken {
		fieldErrors["cpf"] = errors.New("CPF already registered")
	}
	if len(fieldErrors) > 0 {
		return appValidation.WrapValidationError(fieldErrors)
	}
	return nil
}

// Create validates and persists a new student with a hashed password.
func (uc *studentUseCase) Create(
	ctx context.Context,
	input CreateStudentInput,
) (*domain.Student, error) {
	if err := uc.validateCreateStudentInput(input); err != nil {
		return nil, err
	}

	if err := uc.checkUniqueness(ctx, normalizeEmail(input.Email), input.CPF, uuid.Nil); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	student := &domain.Student{
		ID:        uuid.Must(uuid.NewV7()),
		Name:      strings.TrimSpace(input.Name),
		BirthDate: input.BirthDate,
		CPF:       input.CPF,
		Email:     normalizeEmail(input.Email),
		Password:  hashedPassword,
	}

	if err := uc.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return student, nil
}

// Update overwrites the mutable fields of an existing student. The conflict
// pre-check and the write run inside one transaction so a concurrent insert
// cannot slip between them.
func (uc *studentUseCase) Update(
	ctx context.Context,
	id uuid.UUID,
	input UpdateStudentInput,
) (*domain.Student, error) {
	if err := uc.validateUpdateStudentInput(input); err != nil {
		return nil, err
	}

	var updated *domain.Student
	err := uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		emailTaken, err := uc.studentRepo.EmailExists(ctx, normalizeEmail(input.Email), id)
		if err != nil {
			return err
		}
		if emailTaken {
			return domain.ErrEmailAlreadyRegistered
		}

		cpfTaken, err := uc.studentRepo.CPFExists(ctx, input.CPF, id)
		if err != nil {
			return err
		}
		if cpfTaken {
			return domain.ErrCPFAlreadyRegistered
		}

		student, err := uc.studentRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		student.Name = strings.TrimSpace(input.Name)
		student.BirthDate = input.BirthDate
		student.CPF = input.CPF
		student.Email = normalizeEmail(input.Email)

		if err := uc.studentRepo.Update(ctx, student); err != nil {
			return err
		}

		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes a student. Enrollments cascade at the database level.
func (uc *studentUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.studentRepo.Delete(ctx, id)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
