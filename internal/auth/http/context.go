// Package http provides HTTP handlers and middleware for dashboard authentication.
package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/httputil"
)

// claimsKey is a context key type for storing the authenticated session claims.
type claimsKey struct{}

// WithClaims stores the authenticated claims in the context.
func WithClaims(ctx context.Context, claims *authDomain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// GetClaims retrieves the authenticated claims from the context.
// Returns (claims, true) if present, or (nil, false) if BearerAuthMiddleware did not run.
func GetClaims(ctx context.Context) (*authDomain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*authDomain.Claims)
	return claims, ok && claims != nil
}

// RequireClaims returns the authenticated claims of the request or writes a 401
// "No token provided" response.
func RequireClaims(c *gin.Context, logger *slog.Logger) (*authDomain.Claims, bool) {
	claims, ok := GetClaims(c.Request.Context())
	if !ok {
		httputil.HandleErrorGin(c, authDomain.ErrNoToken, logger)
		return nil, false
	}
	return claims, true
}
