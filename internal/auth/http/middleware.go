package http

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	authUseCase "github.com/allisson/deliverydash/internal/auth/usecase"
	"github.com/allisson/deliverydash/internal/httputil"
)

// BearerAuthMiddleware authenticates requests with a session token in the
// Authorization header ("Bearer <token>", prefix case-insensitive).
//
// Error handling:
//   - Missing header or empty token → 401 "No token provided"
//   - Malformed header, undecodable or expired token → 401 "Invalid token"
//
// On success the claims are stored in the request context and can be read with
// GetClaims.
func BearerAuthMiddleware(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Debug("authentication failed: missing authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrNoToken, logger)
			c.Abort()
			return
		}

		const bearerPrefix = "bearer "
		if len(authHeader) < len(bearerPrefix) ||
			!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
			logger.Debug("authentication failed: malformed authorization header")
			httputil.HandleErrorGin(c, authDomain.ErrInvalidToken, logger)
			c.Abort()
			return
		}

		token := strings.TrimSpace(authHeader[len(bearerPrefix):])
		if token == "" {
			logger.Debug("authentication failed: empty bearer token")
			httputil.HandleErrorGin(c, authDomain.ErrNoToken, logger)
			c.Abort()
			return
		}

		claims, err := authUseCase.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.Debug("authentication failed", slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, err, logger)
			c.Abort()
			return
		}

		c.Request = c.Request.WithContext(WithClaims(c.Request.Context(), claims))

		logger.Debug("authentication successful", slog.String("username", claims.Username))

		c.Next()
	}
}
