// Package http provides HTTP middleware for authentication and login rate limiting.
package http

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authService "github.com/allisson/school/internal/auth/service"
	apperrors "github.com/allisson/school/internal/errors"
	"github.com/allisson/school/internal/httputil"
)

// claimsKey is the context key for authenticated token claims.
type claimsKey struct{}

// WithClaims returns a new context carrying the authenticated token claims.
func WithClaims(ctx context.Context, claims *authService.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the authenticated token claims from the context.
func GetClaims(ctx context.Context) (*authService.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authService.Claims)
	return claims, ok
}

// AuthenticationMiddleware protects routes with Bearer token authentication.
//
// The middleware:
// 1. Extracts the Bearer token from the Authorization header (case-insensitive)
// 2. Verifies the token signature, expiry, issuer and audience via tokenService.Verify()
// 3. Stores the token claims in the request context
// 4. Allows downstream handlers to access the claims via GetClaims()
//
// Authorization header format: "Bearer <token>" (case-insensitive "bearer")
//
// Error handling:
//   - Missing Authorization header → 401 Unauthorized
//   - Malformed Authorization header → 401 Unauthorized
//   - Invalid/expired token → 401 Unauthorized
func AuthenticationMiddleware(
	tokenService authService.TokenService,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		// Parse Bearer token (case-insensitive)
		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		plainToken := authHeader[len(bearerPrefix):]
		if plainToken == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		claims, err := tokenService.Verify(plainToken)
		if err != nil {
			logger.Debug("authentication failed",
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		// Store token claims in context
		ctx := WithClaims(c.Request.Context(), claims)
		c.Request = c.Request.WithContext(ctx)

		logger.Debug("authentication successful",
			slog.String("subject", claims.Subject),
			slog.String("email", claims.Email))

		c.Next()
	}
}
