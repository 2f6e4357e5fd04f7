package app

import (
	"fmt"
	"sync"

	enrollmentHTTP "github.com/allisson/school/internal/enrollment/http"
	enrollmentRepository "github.com/allisson/school/internal/enrollment/repository"
	enrollmentUsecase "github.com/allisson/school/internal/enrollment/usecase"
)

// enrollmentComponents holds the lazily initialized enrollment context components.
type enrollmentComponents struct {
	repoInit    sync.Once
	useCaseInit sync.Once
	handlerInit sync.Once

	repo    enrollmentUsecase.EnrollmentRepository
	useCase enrollmentUsecase.EnrollmentUseCase
	handler *enrollmentHTTP.EnrollmentHandler
}

// EnrollmentRepository returns the enrollment repository instance.
func (c *Container) EnrollmentRepository() (enrollmentUsecase.EnrollmentRepository, error) {
	c.enrollment.repoInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["enrollmentRepo"] = fmt.Errorf("failed to get database for enrollment repository: %w", err)
			return
		}

		// Select the appropriate repository based on the database driver
		switch c.config.DBDriver {
		case "mysql":
			c.enrollment.repo = enrollmentRepository.NewMySQLEnrollmentRepository(db)
		case "postgres":
			c.enrollment.repo = enrollmentRepository.NewPostgreSQLEnrollmentRepository(db)
		default:
			c.initErrors["enrollmentRepo"] = fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
		}
	})
	if storedErr, exists := c.initErrors["enrollmentRepo"]; exists {
		return nil, storedErr
	}
	return c.enrollment.repo, nil
}

// EnrollmentUseCase returns the enrollment use case instance.
func (c *Container) EnrollmentUseCase() (enrollmentUsecase.EnrollmentUseCase, error) {
	c.enrollment.useCaseInit.Do(func() {
		repo, err := c.EnrollmentRepository()
		if err != nil {
			c.initErrors["enrollmentUseCase"] = fmt.Errorf("failed to get enrollment repository for enrollment use case: %w", err)
			return
		}
		c.enrollment.useCase = enrollmentUsecase.NewEnrollmentUseCase(repo)
	})
	if storedErr, exists := c.initErrors["enrollmentUseCase"]; exists {
		return nil, storedErr
	}
	return c.enrollment.useCase, nil
}

// EnrollmentHandler returns the enrollment HTTP handler instance.
func (c *Container) EnrollmentHandler() (*enrollmentHTTP.EnrollmentHandler, error) {
	c.enrollment.handlerInit.Do(func() {
		useCase, err := c.EnrollmentUseCase()
		if err != nil {
			c.initErrors["enrollmentHandler"] = fmt.Errorf("failed to get enrollment use case for enrollment handler: %w", err)
			return
		}

		business, err := c.BusinessMetrics()
		if err != nil {
			c.initErrors["enrollmentHandler"] = fmt.Errorf("failed to get business metrics for enrollment handler: %w", err)
			return
		}

		c.enrollment.handler = enrollmentHTTP.NewEnrollmentHandler(useCase, business, c.Logger())
	})
	if storedErr, exists := c.initErrors["enrollmentHandler"]; exists {
		return nil, storedErr
	}
	return c.enrollment.handler, nil
}
