// Package http provides HTTP handlers for the Shopify settings endpoints.
package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
	"github.com/allisson/deliverydash/internal/httputil"
	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
	"github.com/allisson/deliverydash/internal/shopify/http/dto"
	shopifyUseCase "github.com/allisson/deliverydash/internal/shopify/usecase"
)

// ShopifyHandler handles the Shopify settings and connection test requests.
type ShopifyHandler struct {
	shopifyUseCase shopifyUseCase.ShopifyUseCase
	logger         *slog.Logger
}

// NewShopifyHandler creates a new Shopify handler with required dependencies.
func NewShopifyHandler(shopifyUseCase shopifyUseCase.ShopifyUseCase, logger *slog.Logger) *ShopifyHandler {
	return &ShopifyHandler{
		shopifyUseCase: shopifyUseCase,
		logger:         logger,
	}
}

// GetSettingsHandler returns the stored settings with secrets masked. A user without
// settings gets configured=false rather than an error.
// GET /api/shopify/settings
func (h *ShopifyHandler) GetSettingsHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	settings, err := h.shopifyUseCase.GetSettings(c.Request.Context(), claims.UserID())
	if errors.Is(err, shopifyDomain.ErrSettingsNotFound) {
		httputil.SuccessGin(c, http.StatusOK, gin.H{"configured": false, "settings": nil})
		return
	}
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{
		"configured": true,
		"settings":   dto.MapSettingsToResponse(settings),
	})
}

// SaveSettingsHandler stores the Shopify credentials.
// POST /api/shopify/settings
func (h *ShopifyHandler) SaveSettingsHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	var req dto.SaveSettingsRequest
	if !httputil.BindJSON(c, &req, h.logger) {
		return
	}

	settings, err := h.shopifyUseCase.SaveSettings(c.Request.Context(), claims.UserID(), req.ToSaveSettingsInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{
		"message":  "Settings saved",
		"settings": dto.MapSettingsToResponse(settings),
	})
}

// TestConnectionHandler checks the stored credentials against shop.json.
// GET /api/shopify/test-connection - 404 when no settings are stored.
func (h *ShopifyHandler) TestConnectionHandler(c *gin.Context) {
	claims, ok := authHTTP.RequireClaims(c, h.logger)
	if !ok {
		return
	}

	shop, err := h.shopifyUseCase.TestConnection(c.Request.Context(), claims.UserID())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{
		"message": "Connected to Shopify",
		"shop":    dto.MapShopToResponse(shop),
	})
}
