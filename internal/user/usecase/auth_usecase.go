// Package usecase implements authentication business logic.
package usecase

import (
	"context"
	"strings"

	validation "github.com/jellydator/validation"

	"github.com/google/uuid"

	authService "github.com/allisson/school/internal/auth/service"
	apperrors "github.com/allisson/school/internal/errors"
	"github.com/allisson/school/internal/user/domain"
	appValidation "github.com/allisson/school/internal/validation"
)

// LoginInput contains the credentials for authentication.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginOutput carries the issued token and the authenticated user.
type LoginOutput struct {
	Token string
	User  *domain.User
}

// CreateUserInput contains the input data for creating a back-office user.
type CreateUserInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUseCase defines the interface for authentication operations.
type AuthUseCase interface {
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
}

// UserRepository defines the user repository operations required by the use case.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// authUseCase handles authentication business logic.
type authUseCase struct {
	userRepo        UserRepository
	passwordService authService.PasswordService
	tokenService    authService.TokenService
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	userRepo UserRepository,
	passwordService authService.PasswordService,
	tokenService authService.TokenService,
) AuthUseCase {
	return &authUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
	}
}

// Login authenticates a user by email and password and issues a signed token.
// A missing user and a password mismatch are both credential failures; the
// message distinguishes them for the caller.
func (uc *authUseCase) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "User not found")
		}
		return nil, err
	}

	if !uc.passwordService.Verify(input.Password, user.Password) {
		return nil, apperrors.Wrap(apperrors.ErrUnauthorized, "Incorrect password")
	}

	token, err := uc.tokenService.Generate(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{Token: token, User: user}, nil
}

// validateCreateUserInput validates the user creation input.
func (uc *authUseCase) validateCreateUserInput(input CreateUserInput) error {
	err := validation.ValidateStruct(&input,
		validation.Field(&input.Name,
			validation.Required.Error("name is required"),
			appValidation.NotBlank,
			validation.Length(3, 100).Error("name must be between 3 and 100 characters"),
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

// CreateUser creates a back-office user with a hashed password. Used by the
// bootstrap CLI command; there is no public registration endpoint.
func (uc *authUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := uc.validateCreateUserInput(input); err != nil {
		return nil, err
	}

	hashedPassword, err := uc.passwordService.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     strings.TrimSpace(input.Name),
		Email:    strings.TrimSpace(strings.ToLower(input.Email)),
		Password: hashedPassword,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
