package httputil

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// Validatable is a request DTO with self-validation.
type Validatable interface {
	Validate() error
}

// BindJSON decodes the JSON body into req and validates it. On failure the 400
// response is already written and false is returned.
func BindJSON(c *gin.Context, req Validatable, logger *slog.Logger) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		HandleBadRequestGin(c, err, logger)
		return false
	}
	if err := req.Validate(); err != nil {
		HandleValidationErrorGin(c, customValidation.WrapValidationError(err), logger)
		return false
	}
	return true
}
