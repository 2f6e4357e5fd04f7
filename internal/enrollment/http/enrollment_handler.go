// Package http provides HTTP handlers for enrollment operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/school/internal/enrollment/domain"
	"github.com/allisson/school/internal/enrollment/http/dto"
	"github.com/allisson/school/internal/enrollment/usecase"
	"github.com/allisson/school/internal/httputil"
	"github.com/allisson/school/internal/metrics"
)

// EnrollmentHandler handles enrollment HTTP requests.
type EnrollmentHandler struct {
	enrollmentUseCase usecase.EnrollmentUseCase
	business          *metrics.BusinessMetrics
	logger            *slog.Logger
}

// NewEnrollmentHandler creates a new EnrollmentHandler.
func NewEnrollmentHandler(
	enrollmentUseCase usecase.EnrollmentUseCase,
	business *metrics.BusinessMetrics,
	logger *slog.Logger,
) *EnrollmentHandler {
	return &EnrollmentHandler{
		enrollmentUseCase: enrollmentUseCase,
		business:          business,
		logger:            logger,
	}
}

// ListHandler returns all enrollments joined with student and class names.
// GET /v1/enrollments
func (h *EnrollmentHandler) ListHandler(c *gin.Context) {
	views, err := h.enrollmentUseCase.List(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapEnrollmentsToListResponse(views))
}

// CreateHandler enrolls a student in a class.
// POST /v1/enrollments - Returns 200 OK with a confirmation message.
func (h *EnrollmentHandler) CreateHandler(c *gin.Context) {
	var req dto.EnrollmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.enrollmentUseCase.Enroll(c.Request.Context(), dto.ToEnrollInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "enrollment", "create", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "enrollment", "create", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Enrollment added successfully"})
}

// UpdateHandler overwrites the registration date of an existing enrollment.
// PUT /v1/enrollments - Returns 200 OK with a confirmation message.
func (h *EnrollmentHandler) UpdateHandler(c *gin.Context) {
	var req dto.EnrollmentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if err := h.enrollmentUseCase.UpdateRegistrationDate(c.Request.Context(), dto.ToEnrollInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "enrollment", "update", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "enrollment", "update", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Enrollment update completed successfully"})
}

// DeleteHandler removes every enrollment matching the query filters.
// DELETE /v1/enrollments?student_id=&class_id= - At least one filter is required.
func (h *EnrollmentHandler) DeleteHandler(c *gin.Context) {
	var filter domain.DeleteFilter

	if idStr := c.Query("student_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httputil.HandleBadRequestGin(
				c, fmt.Errorf("invalid student_id parameter: must be a valid uuid"), h.logger,
			)
			return
		}
		filter.StudentID = id
	}

	if idStr := c.Query("class_id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httputil.HandleBadRequestGin(
				c, fmt.Errorf("invalid class_id parameter: must be a valid uuid"), h.logger,
			)
			return
		}
		filter.ClassID = id
	}

	if err := h.enrollmentUseCase.DeleteByFilter(c.Request.Context(), filter); err != nil {
		h.business.RecordOperation(c.Request.Context(), "enrollment", "delete", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "enrollment", "delete", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Enrollment successfully deleted"})
}
