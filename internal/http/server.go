// Package http provides the HTTP API server and its router wiring.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"

	authHTTP "github.com/allisson/school/internal/auth/http"
	authService "github.com/allisson/school/internal/auth/service"
	classHTTP "github.com/allisson/school/internal/class/http"
	enrollmentHTTP "github.com/allisson/school/internal/enrollment/http"
	"github.com/allisson/school/internal/metrics"
	studentHTTP "github.com/allisson/school/internal/student/http"
	userHTTP "github.com/allisson/school/internal/user/http"
)

// Server represents the HTTP API server.
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router must be configured with
// SetupRouter before Start is called.
func NewServer(
	db *sql.DB,
	host string,
	port int,
	logger *slog.Logger,
) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// RouterConfig carries the handlers and middleware options used to build the router.
type RouterConfig struct {
	GinMode           string
	AuthHandler       *userHTTP.AuthHandler
	StudentHandler    *studentHTTP.StudentHandler
	ClassHandler      *classHTTP.ClassHandler
	EnrollmentHandler *enrollmentHTTP.EnrollmentHandler
	TokenService      authService.TokenService

	// CORS
	CORSEnabled      bool
	CORSAllowOrigins string

	// Rate limiting for the unauthenticated login endpoint
	RateLimitLoginEnabled        bool
	RateLimitLoginRequestsPerSec float64
	RateLimitLoginBurst          int

	// HTTP metrics are recorded when a meter provider is set
	MeterProvider    metric.MeterProvider
	MetricsNamespace string
}

// SetupRouter builds the Gin router with all middlewares and API routes.
func (s *Server) SetupRouter(cfg RouterConfig) {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	if cfg.MeterProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(cfg.MeterProvider, cfg.MetricsNamespace))
	}

	// Health and readiness endpoints
	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")

	// Login is unauthenticated and optionally rate limited per IP
	loginHandlers := make([]gin.HandlerFunc, 0, 2)
	if cfg.RateLimitLoginEnabled {
		loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
			cfg.RateLimitLoginRequestsPerSec,
			cfg.RateLimitLoginBurst,
			s.logger,
		))
	}
	loginHandlers = append(loginHandlers, cfg.AuthHandler.LoginHandler)
	v1.POST("/auth/login", loginHandlers...)

	// Everything else requires a valid Bearer token
	protected := v1.Group("")
	protected.Use(authHTTP.AuthenticationMiddleware(cfg.TokenService, s.logger))
	{
		protected.GET("/students", cfg.StudentHandler.ListHandler)
		protected.GET("/students/export", cfg.StudentHandler.ExportHandler)
		protected.POST("/students", cfg.StudentHandler.CreateHandler)
		protected.PUT("/students/:id", cfg.StudentHandler.UpdateHandler)
		protected.DELETE("/students/:id", cfg.StudentHandler.DeleteHandler)

		protected.GET("/classes", cfg.ClassHandler.ListHandler)
		protected.POST("/classes", cfg.ClassHandler.CreateHandler)
		protected.PUT("/classes/:id", cfg.ClassHandler.UpdateHandler)
		protected.DELETE("/classes/:id", cfg.ClassHandler.DeleteHandler)

		protected.GET("/enrollments", cfg.EnrollmentHandler.ListHandler)
		protected.POST("/enrollments", cfg.EnrollmentHandler.CreateHandler)
		protected.PUT("/enrollments", cfg.EnrollmentHandler.UpdateHandler)
		protected.DELETE("/enrollments", cfg.EnrollmentHandler.DeleteHandler)
	}

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic. The database
// connection is pinged with a short timeout.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := "ready"
	code := http.StatusOK

	if s.db == nil {
		components["database"] = "error"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := s.db.PingContext(ctx); err != nil {
			components["database"] = "error"
			status = "not_ready"
			code = http.StatusServiceUnavailable
		} else {
			components["database"] = "ok"
		}
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router is not configured, call SetupRouter first")
	}

	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}
