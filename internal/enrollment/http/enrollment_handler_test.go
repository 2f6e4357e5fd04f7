package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/allisson/school/internal/enrollment/domain"
	"github.com/allisson/school/internal/enrollment/usecase"

	apperrors "github.com/allisson/school/internal/errors"
)

// MockEnrollmentUseCase is a mock implementation of usecase.EnrollmentUseCase
type MockEnrollmentUseCase struct {
	mock.Mock
}

func (m *MockEnrollmentUseCase) List(ctx context.Context) ([]*domain.View, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.View), args.Error(1)
}

func (m *MockEnrollmentUseCase) Enroll(ctx context.Context, input usecase.EnrollInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockEnrollmentUseCase) UpdateRegistrationDate(
	ctx context.Context,
	input usecase.EnrollInput,
) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

func (m *MockEnrollmentUseCase) DeleteByFilter(
	ctx context.Context,
	filter domain.DeleteFilter,
) error {
	args := m.Called(ctx, filter)
	return args.Error(0)
}

func newTestRouter(uc usecase.EnrollmentUseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewEnrollmentHandler(uc, nil, nil)

	router := gin.New()
	router.GET("/v1/enrollments", handler.ListHandler)
	router.POST("/v1/enrollments", handler.CreateHandler)
	router.PUT("/v1/enrollments", handler.UpdateHandler)
	router.DELETE("/v1/enrollments", handler.DeleteHandler)
	return router
}

func TestEnrollmentHandler_ListHandler(t *testing.T) {
	uc := &MockEnrollmentUseCase{}
	router := newTestRouter(uc)

	views := []*domain.View{
		{
			StudentID:        uuid.Must(uuid.NewV7()),
			StudentName:      "Maria Silva",
			ClassID:          uuid.Must(uuid.NewV7()),
			ClassName:        "Mathematics",
			RegistrationDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	uc.On("List", mock.Anything).Return(views, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/v1/enrollments", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Maria Silva")
	assert.Contains(t, w.Body.String(), "Mathematics")
	assert.Contains(t, w.Body.String(), "2026-02-01")
}

func TestEnrollmentHandler_CreateHandler(t *testing.T) {
	t.Run("Success_CreateEnrollment", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		uc.On("Enroll", mock.Anything, mock.AnythingOfType("usecase.EnrollInput")).Return(nil)

		body := `{
			"student_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"class_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"registration_date": "2026-02-01"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Enrollment added successfully")
	})

	t.Run("Error_InvalidStudentID", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		body := `{
			"student_id": "not-a-uuid",
			"class_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"registration_date": "2026-02-01"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "student_id")
	})

	t.Run("Error_DuplicatePair", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		uc.On("Enroll", mock.Anything, mock.AnythingOfType("usecase.EnrollInput")).
			Return(domain.ErrEnrollmentAlreadyExists)

		body := `{
			"student_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"class_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"registration_date": "2026-02-01"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestEnrollmentHandler_UpdateHandler(t *testing.T) {
	t.Run("Success_UpdateEnrollment", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		uc.On("UpdateRegistrationDate", mock.Anything, mock.AnythingOfType("usecase.EnrollInput")).
			Return(nil)

		body := `{
			"student_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"class_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"registration_date": "2026-02-01"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Enrollment update completed successfully")
	})

	t.Run("Error_PairNotFound", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		uc.On("UpdateRegistrationDate", mock.Anything, mock.AnythingOfType("usecase.EnrollInput")).
			Return(domain.ErrEnrollmentNotFound)

		body := `{
			"student_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"class_id": "` + uuid.Must(uuid.NewV7()).String() + `",
			"registration_date": "2026-02-01"
		}`
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/v1/enrollments", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestEnrollmentHandler_DeleteHandler(t *testing.T) {
	t.Run("Success_DeleteByStudent", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		studentID := uuid.Must(uuid.NewV7())
		uc.On("DeleteByFilter", mock.Anything, domain.DeleteFilter{StudentID: studentID}).Return(nil)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/enrollments?student_id="+studentID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Enrollment successfully deleted")
	})

	t.Run("Error_NoFilters", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		uc.On("DeleteByFilter", mock.Anything, domain.DeleteFilter{}).
			Return(apperrors.Wrap(apperrors.ErrInvalidInput, "at least one filter (student_id or class_id) is required"))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/enrollments", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_InvalidClassID", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/enrollments?class_id=not-a-uuid", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Error_NothingMatched", func(t *testing.T) {
		uc := &MockEnrollmentUseCase{}
		router := newTestRouter(uc)

		classID := uuid.Must(uuid.NewV7())
		uc.On("DeleteByFilter", mock.Anything, domain.DeleteFilter{ClassID: classID}).
			Return(domain.ErrNoEnrollmentsMatched)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/v1/enrollments?class_id="+classID.String(), nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "No enrollments found for the given filters.")
	})
}
