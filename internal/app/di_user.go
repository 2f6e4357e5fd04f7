package app

import (
	"fmt"
	"sync"

	userHTTP "github.com/allisson/school/internal/user/http"
	userRepository "github.com/allisson/school/internal/user/repository"
	userUsecase "github.com/allisson/school/internal/user/usecase"
)

// userComponents holds the lazily initialized user context components.
type userComponents struct {
	repoInit    sync.Once
	useCaseInit sync.Once
	handlerInit sync.Once

	repo    userUsecase.UserRepository
	useCase userUsecase.AuthUseCase
	handler *userHTTP.AuthHandler
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.user.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["userRepo"] = fmt.Errorf("failed to get database for user repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.user.repo = userRepository.NewMySQLUserRepository(db)
		case "postgres":
			c.user.repo = userRepository.NewPostgreSQLUserRepository(db)
		default:
			c.initErrors["userRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.user.repo, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (userUsecase.AuthUseCase, error) {
	c.user.useCaseInit.Do(func() {
		repo, err := c.UserRepository()
		if err != nil {
			c.initErrors["authUseCase"] = fmt.Errorf("failed to get user repository for auth use case: %w", err)
			return
		}
		c.user.useCase = userUsecase.NewAuthUseCase(repo, c.PasswordService(), c.TokenService())
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.user.useCase, nil
}

// AuthHandler returns the authentication HTTP handler instance.
func (c *Container) AuthHandler() (*userHTTP.AuthHandler, error) {
	c.user.handlerInit.Do(func() {
		useCase, err := c.AuthUseCase()
		if err != nil {
			c.initErrors["authHandler"] = fmt.Errorf("failed to get auth use case for auth handler: %w", err)
			return
		}

		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["authHandler"] = fmt.Errorf("failed to get business metrics for auth handler: %w", err)
			return
		}

		c.user.handler = userHTTP.NewAuthHandler(useCase, business, c.Logger())
	})
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.user.handler, nil
}
