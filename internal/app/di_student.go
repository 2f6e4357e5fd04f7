package app

import (
	"fmt"
	"sync"

	studentHTTP "github.com/allisson/school/internal/student/http"
	studentRepository "github.com/allisson/school/internal/student/repository"
	studentUsecase "github.com/allisson/school/internal/student/usecase"
)

// studentComponents holds the lazily initialized student context components.
type studentComponents struct {
	repoInit    sync.Once
	useCaseInit sync.Once
	handlerInit sync.Once

	repo    studentUsecase.StudentRepository
	useCase studentUsecase.StudentUseCase
	handler *studentHTTP.StudentHandler
}

// StudentRepository returns the student repository instance.
func (c *Container) StudentRepository() (studentUsecase.StudentRepository, error) {
	c.student.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["studentRepo"] = fmt.Errorf("failed to get database for student repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.student.repo = studentRepository.NewMySQLStudentRepository(db)
		case "postgres":
			c.student.repo = studentRepository.NewPostgreSQLStudentRepository(db)
		default:
			c.initErrors["studentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["studentRepo"]; exists {
		return nil, storedErr
	}
	return c.student.repo, nil
}

// StudentUseCase returns the student use case instance.
func (c *Container) StudentUseCase() (studentUsecase.StudentUseCase, error) {
	c.student.useCaseInit.Do(func() {
		repo, err := c.StudentRepository()
		if err != nil {
			c.initErrors["studentUseCase"] = fmt.Errorf("failed to get student repository for student use case: %w", err)
			return
		}

		txManager, err := c.TxManager()
		if err != nil {
			c.initErrors["studentUseCase"] = fmt.Errorf("failed to get tx manager for student use case: %w", err)
			return
		}

		c.student.useCase = studentUsecase.NewStudentUseCase(repo, c.PasswordService(), txManager)
	})
	if storedErr, exists := c.initErrors["studentUseCase"]; exists {
		return nil, storedErr
	}
	return c.student.useCase, nil
}

// StudentHandler returns the student HTTP handler instance.
func (c *Container) StudentHandler() (*studentHTTP.StudentHandler, error) {
	c.student.handlerInit.Do(func() {
		useCase, err := c.StudentUseCase()
		if err != nil {
			c.initErrors["studentHandler"] = fmt.Errorf("failed to get student use case for student handler: %w", err)
			return
		}

		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["studentHandler"] = fmt.Errorf("failed to get business metrics for student handler: %w", err)
			return
		}

		c.student.handler = studentHTTP.NewStudentHandler(useCase, business, c.Logger())
	})
	if storedErr, exists := c.initErrors["studentHandler"]; exists {
		return nil, storedErr
	}
	return c.student.handler, nil
}
