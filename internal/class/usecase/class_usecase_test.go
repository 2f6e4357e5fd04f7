package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/allisson/school/internal/class/domain"
	apperrors "github.com/allisson/school/internal/errors"
	appValidation "github.com/allisson/school/internal/validation"
)

// MockClassRepository is a mock implementation of ClassRepository
type MockClassRepository struct {
	mock.Mock
}

func (m *MockClassRepository) Create(ctx context.Context, class *domain.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Class, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Class), args.Error(1)
}

func (m *MockClassRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Class, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Class), args.Error(1)
}

func (m *MockClassRepository) NameExists(
	ctx context.Context,
	name string,
	excludeID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockClassRepository) Update(ctx context.Context, class *domain.Class) error {
	args := m.Called(ctx, class)
	return args.Error(0)
}

func (m *MockClassRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// fakeTxManager runs the function directly without a database transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newClassUseCaseWithMocks() (ClassUseCase, *MockClassRepository) {
	classRepo := &MockClassRepository{}
	return NewClassUseCase(classRepo, fakeTxManager{}), classRepo
}

func TestClassUseCase_Search(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	expected := []*domain.Class{{ID: uuid.Must(uuid.NewV7()), Name: "Mathematics"}}
	classRepo.On("Search", ctx, domain.Filter{Page: 1, PageSize: 10}).Return(expected, nil)

	classes, err := useCase.Search(ctx, domain.Filter{})

	require.NoError(t, err)
	assert.Equal(t, expected, classes)
	classRepo.AssertExpectations(t)
}

func TestClassUseCase_Create_Success(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	classRepo.On("NameExists", ctx, "Mathematics", uuid.Nil).Return(false, nil)
	classRepo.On("Create", ctx, mock.AnythingOfType("*domain.Class")).Return(nil)

	class, err := useCase.Create(ctx, CreateClassInput{
		Name:        "Mathematics",
		Description: "Linear algebra and calculus",
	})

	require.NoError(t, err)
	assert.Equal(t, "Mathematics", class.Name)
	assert.Equal(t, "Linear algebra and calculus", class.Description)
	assert.NotEqual(t, uuid.Nil, class.ID)
	classRepo.AssertExpectations(t)
}

func TestClassUseCase_Create_ValidationFailure(t *testing.T) {
	useCase, _ := newClassUseCaseWithMocks()
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateClassInput
	}{
		{"empty input", CreateClassInput{}},
		{"short name", CreateClassInput{Name: "Ma", Description: "desc"}},
		{"name with digits", CreateClassInput{Name: "Math 101", Description: "desc"}},
		{"missing description", CreateClassInput{Name: "Mathematics"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			class, err := useCase.Create(ctx, tt.input)
			assert.Nil(t, class)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestClassUseCase_Create_DuplicateName(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	classRepo.On("NameExists", ctx, "Mathematics", uuid.Nil).Return(true, nil)

	class, err := useCase.Create(ctx, CreateClassInput{
		Name:        "Mathematics",
		Description: "Linear algebra and calculus",
	})

	assert.Nil(t, class)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	fields := appValidation.FieldErrors(err)
	assert.Equal(t, "The class name is already in use.", fields["name"])
}

func TestClassUseCase_Update_Success(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	existing := &domain.Class{ID: id, Name: "Old Name", Description: "old"}

	classRepo.On("NameExists", mock.Anything, "Mathematics", id).Return(false, nil)
	classRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	classRepo.On("Update", mock.Anything, existing).Return(nil)

	class, err := useCase.Update(ctx, id, UpdateClassInput{
		Name:        "Mathematics",
		Description: "Linear algebra and calculus",
	})

	require.NoError(t, err)
	assert.Equal(t, "Mathematics", class.Name)
	assert.Equal(t, "Linear algebra and calculus", class.Description)
	classRepo.AssertExpectations(t)
}

func TestClassUseCase_Update_NameConflict(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	classRepo.On("NameExists", mock.Anything, "Mathematics", id).Return(true, nil)

	class, err := useCase.Update(ctx, id, UpdateClassInput{
		Name:        "Mathematics",
		Description: "Linear algebra and calculus",
	})

	assert.Nil(t, class)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "The class name is already in use.")
}

func TestClassUseCase_Update_NotFound(t *testing.T) {
	useCase, classRepo := newClassUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	classRepo.On("NameExists", mock.Anything, "Mathematics", id).Return(false, nil)
	classRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrClassNotFound)

	class, err := useCase.Update(ctx, id, UpdateClassInput{
		Name:        "Mathematics",
		Description: "Linear algebra and calculus",
	})

	assert.Nil(t, class)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestClassUseCase_Delete(t *testing.T) {
	t.Run("Success_DeleteClass", func(t *testing.T) {
		useCase, classRepo := newClassUseCaseWithMocks()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		classRepo.On("Delete", ctx, id).Return(nil)

		err := useCase.Delete(ctx, id)

		require.NoError(t, err)
	})

	t.Run("Error_ClassNotFound", func(t *testing.T) {
		useCase, classRepo := newClassUseCaseWithMocks()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		classRepo.On("Delete", ctx, id).Return(domain.ErrClassNotFound)

		err := useCase.Delete(ctx, id)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}
