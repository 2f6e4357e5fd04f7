// Package http provides HTTP handlers for class operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/school/internal/class/domain"
	"github.com/allisson/school/internal/class/http/dto"
	"github.com/allisson/school/internal/class/usecase"
	"github.com/allisson/school/internal/httputil"
	"github.com/allisson/school/internal/metrics"
)

// ClassHandler handles class HTTP requests.
type ClassHandler struct {
	classUseCase usecase.ClassUseCase
	business     *metrics.BusinessMetrics
	logger       *slog.Logger
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(
	classUseCase usecase.ClassUseCase,
	business *metrics.BusinessMetrics,
	logger *slog.Logger,
) *ClassHandler {
	return &ClassHandler{
		classUseCase: classUseCase,
		business:     business,
		logger:       logger,
	}
}

// ListHandler returns classes matching the query filters, paged and ordered by name.
// GET /v1/classes?name=&page=&page_size=
func (h *ClassHandler) ListHandler(c *gin.Context) {
	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter := domain.Filter{
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}

	classes, err := h.classUseCase.Search(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapClassesToListResponse(classes, page, pageSize))
}

// CreateHandler creates a new class.
// POST /v1/classes - Returns 200 OK with a confirmation message.
func (h *ClassHandler) CreateHandler(c *gin.Context) {
	var req dto.ClassRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.classUseCase.Create(c.Request.Context(), dto.ToCreateClassInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "class", "create", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "class", "create", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Class added successfully"})
}

// UpdateHandler overwrites the mutable fields of a class.
// PUT /v1/classes/:id - Returns 200 OK with a confirmation message.
func (h *ClassHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid id parameter: must be a valid uuid"), h.logger)
		return
	}

	var req dto.ClassRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.classUseCase.Update(c.Request.Context(), id, dto.ToUpdateClassInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "class", "update", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "class", "update", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Class update completed successfully"})
}

// DeleteHandler removes a class and its enrollments.
// DELETE /v1/classes/:id - Returns 200 OK with a confirmation message.
func (h *ClassHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid id parameter: must be a valid uuid"), h.logger)
		return
	}

	if err := h.classUseCase.Delete(c.Request.Context(), id); err != nil {
		h.business.RecordOperation(c.Request.Context(), "class", "delete", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "class", "delete", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Class successfully deleted"})
}
