// Package http provides HTTP handlers for the per-user delivery data endpoints and the
// public widget feed.
package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
	"github.com/allisson/deliverydash/internal/httputil"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
	"github.com/allisson/deliverydash/internal/user/http/dto"
	userUseCase "github.com/allisson/deliverydash/internal/user/usecase"
	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// UserHandler handles delivery data requests.
type UserHandler struct {
	userUseCase userUseCase.UserUseCase
	logger      *slog.Logger
	now         func() time.Time
}

// NewUserHandler creates a new user handler with required dependencies.
func NewUserHandler(userUseCase userUseCase.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userUseCase: userUseCase,
		logger:      logger,
		now:         time.Now,
	}
}

// GetDataHandler returns the user's delivery configuration.
// GET /api/user/data
func (h *UserHandler) GetDataHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	cfg, err := h.userUseCase.GetData(c.Request.Context(), claims.UserID())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"data": cfg})
}

// SaveDataHandler stores the user's delivery configuration.
// POST /api/user/data
func (h *UserHandler) SaveDataHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	var req dto.SaveDataRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	cfg, err := h.userUseCase.SaveData(c.Request.Context(), claims.UserID(), &req.Config)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"message": "Data saved", "data": cfg})
}

// MigrateHandler copies the global configuration to the user.
// POST /api/user/migrate
func (h *UserHandler) MigrateHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	result, err := h.userUseCase.Migrate(c.Request.Context(), claims.UserID())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"migrated": result.Migrated, "message": result.Reason})
}

// SyncHandler pushes the configuration to the widget worker. The body is optional.
// POST /api/user/sync - 502 when the worker call fails.
func (h *UserHandler) SyncHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	var req dto.SyncRequest
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			httputil.HandleBadRequestGin(c, err, h.logger)
			return
		}
	}
	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.userUseCase.Sync(c.Request.Context(), claims.UserID(), req.Data); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"message": "Widget synced"})
}

// WidgetFeedHandler serves the storefront widget. The optional "user" query parameter
// selects a dashboard user; otherwise the global configuration is used.
// GET /api/widget/delivery-data - No authentication required.
func (h *UserHandler) WidgetFeedHandler(c *gin.Context) {
	userID := userDomain.GlobalUserID
	if user := c.Query("user"); user != "" {
		userID = authDomain.UserID(user)
	}

	feed, err := h.userUseCase.WidgetFeed(c.Request.Context(), userID, h.now())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	resp := dto.MapWidgetFeedToResponse(feed)
	httputil.SuccessGin(c, http.StatusOK, gin.H{
		"config":         resp.Config,
		"availableDates": resp.AvailableDates,
		"sampleTags":     resp.SampleTags,
	})
}
