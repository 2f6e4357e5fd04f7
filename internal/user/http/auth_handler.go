// Package http provides HTTP handlers for authentication operations.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allisson/school/internal/httputil"
	"github.com/allisson/school/internal/metrics"
	"github.com/allisson/school/internal/user/http/dto"
	"github.com/allisson/school/internal/user/usecase"
)

// AuthHandler handles authentication HTTP requests.
type AuthHandler struct {
	authUseCase usecase.AuthUseCase
	business    *metrics.BusinessMetrics
	logger      *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	authUseCase usecase.AuthUseCase,
	business *metrics.BusinessMetrics,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		business:    business,
		logger:      logger,
	}
}

// LoginHandler authenticates a user and returns a signed token.
// POST /v1/auth/login - Returns 200 OK with token and user info.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	output, err := h.authUseCase.Login(c.Request.Context(), dto.ToLoginInput(req))
	if err != nil {
		h.business.RecordLogin(c.Request.Context(), false)
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	h.business.RecordLogin(c.Request.Context(), true)
	c.JSON(http.StatusOK, dto.ToLoginResponse(output))
}
