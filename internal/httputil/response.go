// Package httputil provides HTTP utility functions for request and response handling.
//
// Every endpoint answers with the same JSON envelope: {"success": true, ...payload} on
// success and {"success": false, "error": "..."} on failure.
package httputil

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// ErrorResponse represents the failure envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MakeJSONResponse writes body as JSON with the given status code on a plain
// http.ResponseWriter. Used outside of gin handlers (recovery, health).
func MakeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// SuccessGin writes a success envelope merging payload into the top level object.
func SuccessGin(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// HandleErrorGin maps domain errors to HTTP status codes and writes the failure
// envelope. Messages created with apperrors.Public are passed through to the client;
// anything else gets a generic text so internal details never leak.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	var statusCode int
	var message string

	switch {
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		statusCode = http.StatusBadRequest
		message = "Invalid request"
	case apperrors.Is(err, apperrors.ErrUnauthorized):
		statusCode = http.StatusUnauthorized
		message = "Unauthorized"
	case apperrors.Is(err, apperrors.ErrNotFound):
		statusCode = http.StatusNotFound
		message = "Not found"
	case apperrors.Is(err, apperrors.ErrUpstream):
		statusCode = http.StatusBadGateway
		message = "Upstream service failed"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	if public := apperrors.Message(err); public != "" && statusCode != http.StatusInternalServerError {
		message = public
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("path", c.Request.URL.Path),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, ErrorResponse{Success: false, Error: message})
}

// HandleBadRequestGin writes a 400 response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: "Invalid JSON body"})
}

// HandleValidationErrorGin writes a 400 response carrying the field-specific message.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{Success: false, Error: err.Error()})
}
