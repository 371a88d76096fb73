package dto

import (
	"time"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
)

// SessionPayload renders a session for the success envelope.
func SessionPayload(session *authDomain.Session) gin.H {
	return gin.H{
		"token":     session.Token,
		"user":      session.User,
		"expiresAt": session.ExpiresAt.UTC().Format(time.RFC3339),
	}
}

// AccountInfoResponse represents the current session in API responses.
type AccountInfoResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email,omitempty"`
	IssuedAt  string `json:"issuedAt"`
	ExpiresAt string `json:"expiresAt"`
}

// MapAccountInfoToResponse converts domain account info to an API response.
func MapAccountInfoToResponse(info *authDomain.AccountInfo) AccountInfoResponse {
	return AccountInfoResponse{
		Username:  info.Username,
		Email:     info.Email,
		IssuedAt:  info.IssuedAt.UTC().Format(time.RFC3339),
		ExpiresAt: info.ExpiresAt.UTC().Format(time.RFC3339),
	}
}
