package app

import (
	"fmt"
	"sync"

	classHTTP "github.com/allisson/school/internal/class/http"
	classRepository "github.com/allisson/school/internal/class/repository"
	classUsecase "github.com/allisson/school/internal/class/usecase"
)

// classComponents holds the lazily initialized class context components.
type classComponents struct {
	repoInit    sync.Once
	useCaseInit sync.Once
	handlerInit sync.Once

	repo    classUsecase.ClassRepository
	useCase classUsecase.ClassUseCase
	handler *classHTTP.ClassHandler
}

// ClassRepository returns the class repository instance.
func (c *Container) ClassRepository() (classUsecase.ClassRepository, error) {
	c.class.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["classRepo"] = fmt.Errorf("failed to get database for class repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.class.repo = classRepository.NewMySQLClassRepository(db)
		case "postgres":
			c.class.repo = classRepository.NewPostgreSQLClassRepository(db)
		default:
			c.initErrors["classRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["classRepo"]; exists {
		return nil, storedErr
	}
	return c.class.repo, nil
}

// ClassUseCase returns the class use case instance.
func (c *Container) ClassUseCase() (classUsecase.ClassUseCase, error) {
	c.class.useCaseInit.Do(func() {
		repo, err := c.ClassRepository()
		if err != nil {
			c.initErrors["classUseCase"] = fmt.Errorf("failed to get class repository for class use case: %w", err)
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["classUseCase"] = fmt.Errorf("failed to get tx manager for class use case: %w", err)
			return
		}

		c.class.useCase = classUsecase.NewClassUseCase(repo, txManager)
	})
	if storedErr, exists := c.initErrors["classUseCase"]; exists {
		return nil, storedErr
	}
	return c.class.useCase, nil
}

// ClassHandler returns the class HTTP handler instance.
func (c *Container) ClassHandler() (*classHTTP.ClassHandler, error) {
	c.class.handlerInit.Do(func() {
		useCase, err := c.ClassUseCase()
		if err != nil {
			c.initErrors["classHandler"] = fmt.Errorf("failed to get class use case for class handler: %w", err)
			return
		}

		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["classHandler"] = fmt.Errorf("failed to get business metrics for class handler: %w", err)
			return
		}

		c.class.handler = classHTTP.NewClassHandler(useCase, business, c.Logger())
	})
	if storedErr, exists := c.initErrors["classHandler"]; exists {
		return nil, storedErr
	}
	return c.class.handler, nil
}
