package usecase

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/allisson/school/internal/errors"
	"github.com/allisson/school/internal/student/domain"
	appValidation "github.com/allisson/school/internal/validation"
)

// MockStudentRepository is a mock implementation of StudentRepository
type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) Create(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Student, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) Search(
	ctx context.Context,
	filter domain.Filter,
) ([]*domain.Student, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) ListAll(ctx context.Context) ([]*domain.Student, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Student), args.Error(1)
}

func (m *MockStudentRepository) EmailExists(
	ctx context.Context,
	email string,
	excludeID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, email, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) CPFExists(
	ctx context.Context,
	cpf string,
	excludeID uuid.UUID,
) (bool, error) {
	args := m.Called(ctx, cpf, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) Update(ctx context.Context, student *domain.Student) error {
	args := m.Called(ctx, student)
	return args.Error(0)
}

func (m *MockStudentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPasswordService is a mock implementation of service.PasswordService
type MockPasswordService struct {
	mock.Mock
}

func (m *MockPasswordService) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *MockPasswordService) Verify(password string, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

// fakeTxManager runs the function directly without a database transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newStudentUseCaseWithMocks() (StudentUseCase, *MockStudentRepository, *MockPasswordService) {
	studentRepo := &MockStudentRepository{}
	passwordService := &MockPasswordService{}
	return NewStudentUseCase(studentRepo, passwordService, fakeTxManager{}), studentRepo, passwordService
}

func validCreateInput() CreateStudentInput {
	return CreateStudentInput{
		Name:      "Maria Silva",
		BirthDate: time.Now().AddDate(-20, 0, 0),
		CPF:       "52998224725",
		Email:     "maria@example.com",
		Password:  "Passw0rd!",
	}
}

func TestStudentUseCase_Search(t *testing.T) {
	t.Run("Success_DefaultsPageAndPageSize", func(t *testing.T) {
		useCase, studentRepo, _ := newStudentUseCaseWithMocks()
		ctx := context.Background()

		expected := []*domain.Student{{ID: uuid.Must(uuid.NewV7()), Name: "Maria Silva"}}
		studentRepo.On("Search", ctx, domain.Filter{Page: 1, PageSize: 10}).Return(expected, nil)

		students, err := useCase.Search(ctx, domain.Filter{})

		require.NoError(t, err)
		assert.Equal(t, expected, students)
		studentRepo.AssertExpectations(t)
	})

	t.Run("Success_PassesFilterThrough", func(t *testing.T) {
		useCase, studentRepo, _ := newStudentUseCaseWithMocks()
		ctx := context.Background()

		filter := domain.Filter{Name: "Maria", Page: 2, PageSize: 5}
		studentRepo.On("Search", ctx, filter).Return([]*domain.Student{}, nil)

		_, err := useCase.Search(ctx, filter)

		require.NoError(t, err)
		studentRepo.AssertExpectations(t)
	})
}

func TestStudentUseCase_Create_Success(t *testing.T) {
	useCase, studentRepo, passwordService := newStudentUseCaseWithMocks()
	ctx := context.Background()

	studentRepo.On("EmailExists", mock.Anything, "maria@example.com", uuid.Nil).Return(false, nil)
	studentRepo.On("CPFExists", mock.Anything, "52998224725", uuid.Nil).Return(false, nil)
	passwordService.On("Hash", "Passw0rd!").Return("hashed-password", nil)
	studentRepo.On("Create", ctx, mock.AnythingOfType("*domain.Student")).Return(nil)

	student, err := useCase.Create(ctx, validCreateInput())

	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", student.Name)
	assert.Equal(t, "maria@example.com", student.Email)
	assert.Equal(t, "52998224725", student.CPF)
	assert.Equal(t, "hashed-password", student.Password)
	assert.NotEqual(t, uuid.Nil, student.ID)
	studentRepo.AssertExpectations(t)
	passwordService.AssertExpectations(t)
}

func TestStudentUseCase_Create_ValidationFailure(t *testing.T) {
	useCase, _, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(*CreateStudentInput)
		field  string
	}{
		{"empty name", func(i *CreateStudentInput) { i.Name = "" }, "Name"},
		{"name with digits", func(i *CreateStudentInput) { i.Name = "Maria 2" }, "Name"},
		{"invalid cpf check digit", func(i *CreateStudentInput) { i.CPF = "52998224726" }, "CPF"},
		{"repeated digit cpf", func(i *CreateStudentInput) { i.CPF = "11111111111" }, "CPF"},
		{"invalid email", func(i *CreateStudentInput) { i.Email = "not-an-email" }, "Email"},
		{"too young", func(i *CreateStudentInput) { i.BirthDate = time.Now().AddDate(-10, 0, 0) }, "BirthDate"},
		{"too old", func(i *CreateStudentInput) { i.BirthDate = time.Now().AddDate(-120, 0, 0) }, "BirthDate"},
		{"weak password", func(i *CreateStudentInput) { i.Password = "weak" }, "Password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validCreateInput()
			tt.mutate(&input)

			student, err := useCase.Create(ctx, input)

			assert.Nil(t, student)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
			fields := appValidation.FieldErrors(err)
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestStudentUseCase_Create_DuplicateEmailAndCPF(t *testing.T) {
	useCase, studentRepo, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	studentRepo.On("EmailExists", mock.Anything, "maria@example.com", uuid.Nil).Return(true, nil)
	studentRepo.On("CPFExists", mock.Anything, "52998224725", uuid.Nil).Return(true, nil)

	student, err := useCase.Create(ctx, validCreateInput())

	assert.Nil(t, student)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))

	fields := appValidation.FieldErrors(err)
	assert.Equal(t, "Email already registered", fields["email"])
	assert.Equal(t, "CPF already registered", fields["cpf"])
}

func TestStudentUseCase_Update_Success(t *testing.T) {
	useCase, studentRepo, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	existing := &domain.Student{
		ID:    id,
		Name:  "Old Name",
		CPF:   "11144477735",
		Email: "old@example.com",
	}

	studentRepo.On("EmailExists", mock.Anything, "maria@example.com", id).Return(false, nil)
	studentRepo.On("CPFExists", mock.Anything, "52998224725", id).Return(false, nil)
	studentRepo.On("GetByID", mock.Anything, id).Return(existing, nil)
	studentRepo.On("Update", mock.Anything, existing).Return(nil)

	student, err := useCase.Update(ctx, id, UpdateStudentInput{
		Name:      "Maria Silva",
		BirthDate: time.Now().AddDate(-20, 0, 0),
		CPF:       "52998224725",
		Email:     "Maria@Example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", student.Name)
	assert.Equal(t, "maria@example.com", student.Email)
	assert.Equal(t, "52998224725", student.CPF)
	studentRepo.AssertExpectations(t)
}

func TestStudentUseCase_Update_EmailConflict(t *testing.T) {
	useCase, studentRepo, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	studentRepo.On("EmailExists", mock.Anything, "maria@example.com", id).Return(true, nil)

	student, err := useCase.Update(ctx, id, UpdateStudentInput{
		Name:      "Maria Silva",
		BirthDate: time.Now().AddDate(-20, 0, 0),
		CPF:       "52998224725",
		Email:     "maria@example.com",
	})

	assert.Nil(t, student)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestStudentUseCase_Update_NotFound(t *testing.T) {
	useCase, studentRepo, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	id := uuid.Must(uuid.NewV7())
	studentRepo.On("EmailExists", mock.Anything, "maria@example.com", id).Return(false, nil)
	studentRepo.On("CPFExists", mock.Anything, "52998224725", id).Return(false, nil)
	studentRepo.On("GetByID", mock.Anything, id).Return(nil, domain.ErrStudentNotFound)

	student, err := useCase.Update(ctx, id, UpdateStudentInput{
		Name:      "Maria Silva",
		BirthDate: time.Now().AddDate(-20, 0, 0),
		CPF:       "52998224725",
		Email:     "maria@example.com",
	})

	assert.Nil(t, student)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestStudentUseCase_Delete(t *testing.T) {
	t.Run("Success_DeleteStudent", func(t *testing.T) {
		useCase, studentRepo, _ := newStudentUseCaseWithMocks()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		studentRepo.On("Delete", ctx, id).Return(nil)

		err := useCase.Delete(ctx, id)

		require.NoError(t, err)
		studentRepo.AssertExpectations(t)
	})

	t.Run("Error_StudentNotFound", func(t *testing.T) {
		useCase, studentRepo, _ := newStudentUseCaseWithMocks()
		ctx := context.Background()

		id := uuid.Must(uuid.NewV7())
		studentRepo.On("Delete", ctx, id).Return(domain.ErrStudentNotFound)

		err := useCase.Delete(ctx, id)

		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})
}

func TestStudentUseCase_Export(t *testing.T) {
	useCase, studentRepo, _ := newStudentUseCaseWithMocks()
	ctx := context.Background()

	students := []*domain.Student{
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "Ana Souza",
			BirthDate: time.Date(2001, 3, 15, 0, 0, 0, 0, time.UTC),
			CPF:       "11144477735",
			Email:     "ana@example.com",
		},
		{
			ID:        uuid.Must(uuid.NewV7()),
			Name:      "Maria Silva",
			BirthDate: time.Date(1999, 7, 1, 0, 0, 0, 0, time.UTC),
			CPF:       "52998224725",
			Email:     "maria@example.com",
		},
	}
	studentRepo.On("ListAll", ctx).Return(students, nil)

	data, err := useCase.Export(ctx)

	require.NoError(t, err)
	require.NotEmpty(t, data)

	// The output must be a readable workbook with one row per student.
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Students")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Name", rows[0][1])
	assert.Equal(t, "Ana Souza", rows[1][1])
	assert.Equal(t, "maria@example.com", rows[2][4])
}
