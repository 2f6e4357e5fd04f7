package usecase

import (
	"context"
	"errors"
	"time"

	validation "github.com/jellydator/validation"
	"golang.org/x/sync/errgroup"

	"github.com/google/uuid"

	"github.com/allisson/school/internal/enrollment/domain"
	appValidation "github.com/allisson/school/internal/validation"

	apperrors "github.com/allisson/school/internal/errors"
)

// enrollmentUseCase handles enrollment business logic.
type enrollmentUseCase struct {
	enrollmentRepo EnrollmentRepository
}

// NewEnrollmentUseCase creates a new EnrollmentUseCase.
func NewEnrollmentUseCase(enrollmentRepo EnrollmentRepository) EnrollmentUseCase {
	return &enrollmentUseCase{
		enrollmentRepo: enrollmentRepo,
	}
}

// List returns all enrollments joined with student and class names.
func (uc *enrollmentUseCase) List(ctx context.Context) ([]*domain.View, error) {
	return uc.enrollmentRepo.ListWithNames(ctx)
}

// validateEnrollInput checks the ids and registration date. The date cannot
// be in the future.
func validateEnrollInput(input EnrollInput) error {
	fieldErrors := validation.Errors{}
	if input.StudentID == uuid.Nil {
		fieldErrors["student_id"] = errors.New("student_id is required")
	}
	if input.ClassID == uuid.Nil {
		fieldErrors["class_id"] = errors.New("class_id is required")
	}
	switch {
	case input.RegistrationDate.IsZero():
		fieldErrors["registration_date"] = errors.New("registration_date is required")
	case input.RegistrationDate.After(time.Now()):
		fieldErrors["registration_date"] = errors.New("registration_date cannot be in the future")
	}
	if len(fieldErrors) > 0 {
		return appValidation.WrapValidationError(fieldErrors)
	}
	return nil
}

// checkReferences verifies that both the student and the class exist. The
// two lookups run concurrently; failures come back as field-level
// validation errors.
func (uc *enrollmentUseCase) checkReferences(ctx context.Context, input EnrollInput) error {
	var studentExists, classExists bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		studentExists, err = uc.enrollmentRepo.StudentExists(gctx, input.StudentID)
		return err
	})
	g.Go(func() error {
		var err error
		classExists, err = uc.enrollmentRepo.ClassExists(gctx, input.ClassID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	fieldErrors := validation.Errors{}
	if !studentExists {
		fieldErrors["student_id"] = errors.New("Student not found.")
	}
	if !classExists {
		fieldErrors["class_id"] = errors.New("Class not found.")
	}
	if len(fieldErrors) > 0 {
		return appValidation.WrapValidationError(fieldErrors)
	}
	return nil
}

// Enroll validates and persists a new enrollment. A duplicate pair is a conflict.
func (uc *enrollmentUseCase) Enroll(ctx context.Context, input EnrollInput) error {
	if err := validateEnrollInput(input); err != nil {
		return err
	}

	if err := uc.checkReferences(ctx, input); err != nil {
		return err
	}

	enrollment := &domain.Enrollment{
		StudentID:        input.StudentID,
		ClassID:          input.ClassID,
		RegistrationDate: input.RegistrationDate,
	}

	return uc.enrollmentRepo.Create(ctx, enrollment)
}

// UpdateRegistrationDate overwrites the registration date of an existing pair.
func (uc *enrollmentUseCase) UpdateRegistrationDate(ctx context.Context, input EnrollInput) error {
	if err := validateEnrollInput(input); err != nil {
		return err
	}

	return uc.enrollmentRepo.UpdateRegistrationDate(
		ctx,
		input.StudentID,
		input.ClassID,
		input.RegistrationDate,
	)
}

// DeleteByFilter removes every enrollment matching the filter. An empty
// filter is rejected; a filter matching nothing is a not-found.
func (uc *enrollmentUseCase) DeleteByFilter(ctx context.Context, filter domain.DeleteFilter) error {
	if filter.IsEmpty() {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "at least one filter (student_id or class_id) is required")
	}

	affected, err := uc.enrollmentRepo.DeleteByFilter(ctx, filter)
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNoEnrollmentsMatched
	}
	return nil
}
