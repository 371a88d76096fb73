// Package http provides the HTTP server, its router and the shared middleware.
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

	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
	authUseCase "github.com/allisson/deliverydash/internal/auth/usecase"
	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/metrics"
	shopifyHTTP "github.com/allisson/deliverydash/internal/shopify/http"
	userHTTP "github.com/allisson/deliverydash/internal/user/http"
)

// Server represents the HTTP server
type Server struct {
	db     *sql.DB
	router *gin.Engine
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server. db may be nil when the in-memory store is used.
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

// SetupRouter registers the middleware chain and every route. ctx bounds the
// background cleanup of the login rate limiter.
func (s *Server) SetupRouter(
	ctx context.Context,
	cfg *config.Config,
	authHandler *authHTTP.AuthHandler,
	authUseCase authUseCase.AuthUseCase,
	shopifyHandler *shopifyHTTP.ShopifyHandler,
	userHandler *userHTTP.UserHandler,
	metricsProvider *metrics.Provider,
) {
	router := gin.New()
	router.Use(RecoveryMiddleware(s.logger))
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))
	if corsMiddleware := createCORSMiddleware(cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}
	if metricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(metricsProvider.MeterProvider(), cfg.MetricsNamespace))
	}
	router.NoRoute(notFoundHandler)

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	bearerAuth := authHTTP.BearerAuthMiddleware(authUseCase, s.logger)
	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		loginHandlers := []gin.HandlerFunc{}
		if cfg.RateLimitLoginEnabled {
			loginHandlers = append(loginHandlers, authHTTP.LoginRateLimitMiddleware(
				ctx,
				cfg.RateLimitLoginRequestsPerSec,
				cfg.RateLimitLoginBurst,
				s.logger,
			))
		}
		loginHandlers = append(loginHandlers, authHandler.LoginHandler)
		auth.POST("/login", loginHandlers...)

		account := auth.Group("", bearerAuth)
		account.POST("/logout", authHandler.LogoutHandler)
		account.POST("/change-email", authHandler.ChangeEmailHandler)
		account.POST("/change-password", authHandler.ChangePasswordHandler)
		account.POST("/change-username", authHandler.ChangeUsernameHandler)
		account.POST("/delete", authHandler.DeleteAccountHandler)
		account.GET("/info", authHandler.InfoHandler)
		account.POST("/info", authHandler.InfoHandler)
	}

	shopify := api.Group("/shopify", bearerAuth)
	{
		shopify.GET("/settings", shopifyHandler.GetSettingsHandler)
		shopify.POST("/settings", shopifyHandler.SaveSettingsHandler)
		shopify.GET("/test-connection", shopifyHandler.TestConnectionHandler)
	}

	user := api.Group("/user", bearerAuth)
	{
		user.GET("/data", userHandler.GetDataHandler)
		user.POST("/data", userHandler.SaveDataHandler)
		user.POST("/migrate", userHandler.MigrateHandler)
		user.POST("/sync", userHandler.SyncHandler)
	}

	api.GET("/widget/delivery-data", userHandler.WidgetFeedHandler)

	s.router = router
}

// GetHandler returns the http.Handler for testing purposes.
func (s *Server) GetHandler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports readiness. Without a database the in-memory store is in use
// and always ready.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusOK, gin.H{
			"status":     "ready",
			"components": gin.H{"database": "memory"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
