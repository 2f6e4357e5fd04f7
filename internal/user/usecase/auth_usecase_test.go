package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	authService "github.com/allisson/school/internal/auth/service"
	apperrors "github.com/allisson/school/internal/errors"
	"github.com/allisson/school/internal/user/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
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

// MockTokenService is a mock implementation of service.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Generate(subject uuid.UUID, email string, name string) (string, error) {
	args := m.Called(subject, email, name)
	return args.String(0), args.Error(1)
}

func (m *MockTokenService) Verify(token string) (*authService.Claims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authService.Claims), args.Error(1)
}

func newAuthUseCaseWithMocks() (AuthUseCase, *MockUserRepository, *MockPasswordService, *MockTokenService) {
	userRepo := &MockUserRepository{}
	passwordService := &MockPasswordService{}
	tokenService := &MockTokenService{}
	return NewAuthUseCase(userRepo, passwordService, tokenService), userRepo, passwordService, tokenService
}

func TestAuthUseCase_Login_Success(t *testing.T) {
	useCase, userRepo, passwordService, tokenService := newAuthUseCaseWithMocks()
	ctx := context.Background()

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     "Admin User",
		Email:    "admin@example.com",
		Password: "hashed-password",
	}

	userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)
	passwordService.On("Verify", "Passw0rd!", "hashed-password").Return(true)
	tokenService.On("Generate", user.ID, user.Email, user.Name).Return("signed-token", nil)

	output, err := useCase.Login(ctx, LoginInput{Email: "Admin@Example.com", Password: "Passw0rd!"})

	require.NoError(t, err)
	assert.Equal(t, "signed-token", output.Token)
	assert.Equal(t, user, output.User)
	userRepo.AssertExpectations(t)
	passwordService.AssertExpectations(t)
	tokenService.AssertExpectations(t)
}

func TestAuthUseCase_Login_UserNotFound(t *testing.T) {
	useCase, userRepo, _, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "missing@example.com").Return(nil, domain.ErrUserNotFound)

	output, err := useCase.Login(ctx, LoginInput{Email: "missing@example.com", Password: "Passw0rd!"})

	assert.Nil(t, output)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "User not found")
}

func TestAuthUseCase_Login_IncorrectPassword(t *testing.T) {
	useCase, userRepo, passwordService, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Email:    "admin@example.com",
		Password: "hashed-password",
	}

	userRepo.On("GetByEmail", ctx, "admin@example.com").Return(user, nil)
	passwordService.On("Verify", "wrong", "hashed-password").Return(false)

	output, err := useCase.Login(ctx, LoginInput{Email: "admin@example.com", Password: "wrong"})

	assert.Nil(t, output)
	assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Contains(t, err.Error(), "Incorrect password")
}

func TestAuthUseCase_Login_RepositoryFailure(t *testing.T) {
	useCase, userRepo, _, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	userRepo.On("GetByEmail", ctx, "admin@example.com").Return(nil, apperrors.New("connection refused"))

	output, err := useCase.Login(ctx, LoginInput{Email: "admin@example.com", Password: "Passw0rd!"})

	assert.Nil(t, output)
	assert.False(t, apperrors.Is(err, apperrors.ErrUnauthorized))
	assert.Error(t, err)
}

func TestAuthUseCase_CreateUser_Success(t *testing.T) {
	useCase, userRepo, passwordService, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	passwordService.On("Hash", "Passw0rd!").Return("hashed-password", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := useCase.CreateUser(ctx, CreateUserInput{
		Name:     "Admin User",
		Email:    "Admin@Example.com",
		Password: "Passw0rd!",
	})

	require.NoError(t, err)
	assert.Equal(t, "Admin User", user.Name)
	assert.Equal(t, "admin@example.com", user.Email)
	assert.Equal(t, "hashed-password", user.Password)
	assert.NotEqual(t, uuid.Nil, user.ID)
}

func TestAuthUseCase_CreateUser_ValidationFailure(t *testing.T) {
	useCase, _, _, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateUserInput
	}{
		{"empty input", CreateUserInput{}},
		{"weak password", CreateUserInput{Name: "Admin", Email: "admin@example.com", Password: "weak"}},
		{"invalid email", CreateUserInput{Name: "Admin", Email: "not-an-email", Password: "Passw0rd!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			user, err := useCase.CreateUser(ctx, tt.input)
			assert.Nil(t, user)
			assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		})
	}
}

func TestAuthUseCase_CreateUser_DuplicateEmail(t *testing.T) {
	useCase, userRepo, passwordService, _ := newAuthUseCaseWithMocks()
	ctx := context.Background()

	passwordService.On("Hash", "Passw0rd!").Return("hashed-password", nil)
	userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrUserAlreadyExists)

	user, err := useCase.CreateUser(ctx, CreateUserInput{
		Name:     "Admin User",
		Email:    "admin@example.com",
		Password: "Passw0rd!",
	})

	assert.Nil(t, user)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
}
