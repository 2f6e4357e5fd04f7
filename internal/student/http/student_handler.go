// Package http provides HTTP handlers for student operations.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/school/internal/httputil"
	"github.com/allisson/school/internal/metrics"
	"github.com/allisson/school/internal/student/domain"
	"github.com/allisson/school/internal/student/http/dto"
	"github.com/allisson/school/internal/student/usecase"
)

// xlsxContentType is the MIME type for Office Open XML workbooks.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentHandler handles student HTTP requests.
type StudentHandler struct {
	studentUseCase usecase.StudentUseCase
	business       *metrics.BusinessMetrics
	logger         *slog.Logger
}

// NewStudentHandler creates a new StudentHandler.
func NewStudentHandler(
	studentUseCase usecase.StudentUseCase,
	business *metrics.BusinessMetrics,
	logger *slog.Logger,
) *StudentHandler {
	return &StudentHandler{
		studentUseCase: studentUseCase,
		business:       business,
		logger:         logger,
	}
}

// ListHandler returns students matching the query filters, paged and ordered by name.
// GET /v1/students?id=&name=&email=&cpf=&page=&page_size=
func (h *StudentHandler) ListHandler(c *gin.Context) {
	page, pageSize, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	filter := domain.Filter{
		Name:     c.Query("name"),
		Email:    c.Query("email"),
		CPF:      c.Query("cpf"),
		Page:     page,
		PageSize: pageSize,
	}

	if idStr := c.Query("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			httputil.HandleBadRequestGin(c, fmt.Errorf("invalid id parameter: must be a valid uuid"), h.logger)
			return
		}
		filter.ID = id
	}

	students, err := h.studentUseCase.Search(c.Request.Context(), filter)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapStudentsToListResponse(students, page, pageSize))
}

// CreateHandler enrolls a new student.
// POST /v1/students - Returns 200 OK with a confirmation message.
func (h *StudentHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateStudentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.studentUseCase.Create(c.Request.Context(), dto.ToCreateStudentInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "student", "create", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "student", "create", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Student added successfully"})
}

// UpdateHandler overwrites the mutable fields of a student.
// PUT /v1/students/:id - Returns 200 OK with a confirmation message.
func (h *StudentHandler) UpdateHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid id parameter: must be a valid uuid"), h.logger)
		return
	}

	var req dto.UpdateStudentRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if _, err := h.studentUseCase.Update(c.Request.Context(), id, dto.ToUpdateStudentInput(req)); err != nil {
		h.business.RecordOperation(c.Request.Context(), "student", "update", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "student", "update", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Student update completed successfully"})
}

// DeleteHandler removes a student and their enrollments.
// DELETE /v1/students/:id - Returns 200 OK with a confirmation message.
func (h *StudentHandler) DeleteHandler(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid id parameter: must be a valid uuid"), h.logger)
		return
	}

	if err := h.studentUseCase.Delete(c.Request.Context(), id); err != nil {
		h.business.RecordOperation(c.Request.Context(), "student", "delete", "error")
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordOperation(c.Request.Context(), "student", "delete", "success")
	c.JSON(http.StatusOK, httputil.MessageResponse{Message: "Student successfully deleted"})
}

// ExportHandler downloads the full roster as an xlsx workbook.
// GET /v1/students/export
func (h *StudentHandler) ExportHandler(c *gin.Context) {
	data, err := h.studentUseCase.Export(c.Request.Context())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}
