package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/auth/http/dto"
	authUseCase "github.com/allisson/deliverydash/internal/auth/usecase"
	"github.com/allisson/deliverydash/internal/httputil"
)

// AuthHandler handles login and account management requests.
type AuthHandler struct {
	authUseCase authUseCase.AuthUseCase
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler with required dependencies.
func NewAuthHandler(authUseCase authUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUseCase: authUseCase,
		logger:      logger,
	}
}

// bind decodes and validates the JSON body, writing the 400 response on failure.
func (h *AuthHandler) bind(c *gin.Context, req httputil.Validatable) bool {
	return httputil.BindJSON(c, req, h.logger)
}

// claims returns the authenticated session or writes a 401 response.
func (h *AuthHandler) claims(c *gin.Context) (*authDomain.Claims, bool) {
	return RequireClaims(c, h.logger)
}

// LoginHandler issues a session token.
// POST /api/auth/login - No authentication required.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req dto.LoginRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.authUseCase.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, dto.SessionPayload(session))
}

// LogoutHandler acknowledges a logout. Tokens stay valid until they expire.
// POST /api/auth/logout
func (h *AuthHandler) LogoutHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	if err := h.authUseCase.Logout(c.Request.Context(), claims); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// ChangeEmailHandler re-issues the session with a new email.
// POST /api/auth/change-email
func (h *AuthHandler) ChangeEmailHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	var req dto.ChangeEmailRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.authUseCase.ChangeEmail(c.Request.Context(), claims, &authDomain.ChangeEmailInput{
		Password: req.Password,
		NewEmail: req.NewEmail,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	payload := dto.SessionPayload(session)
	payload["message"] = "Email updated"
	httputil.SuccessGin(c, http.StatusOK, payload)
}

// ChangePasswordHandler validates a password change.
// POST /api/auth/change-password
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.authUseCase.ChangePassword(c.Request.Context(), claims, &authDomain.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	payload := dto.SessionPayload(session)
	payload["message"] = "Password change accepted. The admin password is set by server configuration, so this change is temporary."
	httputil.SuccessGin(c, http.StatusOK, payload)
}

// ChangeUsernameHandler re-issues the session for a new username.
// POST /api/auth/change-username
func (h *AuthHandler) ChangeUsernameHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	var req dto.ChangeUsernameRequest
	if !h.bind(c, &req) {
		return
	}

	session, err := h.authUseCase.ChangeUsername(c.Request.Context(), claims, &authDomain.ChangeUsernameInput{
		Password:    req.Password,
		NewUsername: req.NewUsername,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	payload := dto.SessionPayload(session)
	payload["message"] = "Username updated"
	httputil.SuccessGin(c, http.StatusOK, payload)
}

// DeleteAccountHandler confirms an account deletion.
// POST /api/auth/delete
func (h *AuthHandler) DeleteAccountHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	var req dto.PasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.authUseCase.DeleteAccount(c.Request.Context(), claims, req.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"message": "Account deleted"})
}

// InfoHandler describes the current session.
// GET /api/auth/info returns it for the bearer token alone; POST /api/auth/info
// additionally requires {"password": "..."}.
func (h *AuthHandler) InfoHandler(c *gin.Context) {
	claims, ok := h.claims(c)
	if !ok {
		return
	}

	if c.Request.Method == http.MethodPost {
		var req dto.PasswordRequest
		if !h.bind(c, &req) {
			return
		}
		if err := h.authUseCase.VerifyPassword(c.Request.Context(), req.Password); err != nil {
			httputil.HandleErrorGin(c, err, h.logger)
			return
		}
	}

	info, err := h.authUseCase.Info(c.Request.Context(), claims)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	httputil.SuccessGin(c, http.StatusOK, gin.H{"user": dto.MapAccountInfoToResponse(info)})
}
