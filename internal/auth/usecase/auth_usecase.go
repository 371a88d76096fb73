// Package usecase implements business logic orchestration for authentication operations.
package usecase

import (
	"context"
	"log/slog"
	"time"

	validation "github.com/jellydator/validation"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	authService "github.com/allisson/deliverydash/internal/auth/service"
	"github.com/allisson/deliverydash/internal/config"
	apperrors "github.com/allisson/deliverydash/internal/errors"
	customValidation "github.com/allisson/deliverydash/internal/validation"
)

// authUseCase implements AuthUseCase against a single configured admin password.
type authUseCase struct {
	config          *config.Config
	tokenService    authService.TokenService
	passwordService authService.PasswordService
	logger          *slog.Logger
	now             func() time.Time
}

func (a *authUseCase) ttl() time.Duration {
	if a.config.SessionTTL > 0 {
		return a.config.SessionTTL
	}
	return authDomain.SessionTTL
}

func (a *authUseCase) passwordMatches(password string) bool {
	return a.passwordService.Verify(password)
}

func (a *authUseCase) issue(username, email string) *authDomain.Session {
	token, claims := a.tokenService.Issue(username, email)
	return &authDomain.Session{
		Token:     token,
		User:      claims.User(),
		ExpiresAt: claims.ExpiresAt(a.ttl()),
	}
}

func (a *authUseCase) Login(ctx context.Context, username, password string) (*authDomain.Session, error) {
	if !authDomain.IsUsernameAllowed(username) || !a.passwordMatches(password) {
		a.logger.InfoContext(ctx, "login rejected", slog.String("username", username))
		return nil, authDomain.ErrInvalidCredentials
	}

	session := a.issue(username, "")
	a.logger.InfoContext(ctx, "login succeeded", slog.String("username", username))
	return session, nil
}

func (a *authUseCase) Logout(ctx context.Context, claims *authDomain.Claims) error {
	a.logger.InfoContext(ctx, "logout", slog.String("username", claims.Username))
	return nil
}

func (a *authUseCase) Authenticate(_ context.Context, token string) (*authDomain.Claims, error) {
	if token == "" {
		return nil, authDomain.ErrNoToken
	}

	claims, err := a.tokenService.Decode(token)
	if err != nil {
		return nil, err
	}

	if claims.Expired(a.now(), a.ttl()) {
		return nil, authDomain.ErrTokenExpired
	}

	return claims, nil
}

func (a *authUseCase) VerifyPassword(_ context.Context, password string) error {
	if !a.passwordMatches(password) {
		return authDomain.ErrInvalidPassword
	}
	return nil
}

func (a *authUseCase) ChangeEmail(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeEmailInput,
) (*authDomain.Session, error) {
	if err := validation.Validate(input.NewEmail, validation.Required, customValidation.Email); err != nil {
		return nil, apperrors.Public(apperrors.ErrInvalidInput, "newEmail: "+err.Error()+".")
	}
	if err := a.VerifyPassword(ctx, input.Password); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "email changed", slog.String("username", claims.Username))
	return a.issue(claims.Username, input.NewEmail), nil
}

func (a *authUseCase) ChangePassword(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangePasswordInput,
) (*authDomain.Session, error) {
	if input.NewPassword != input.ConfirmPassword {
		return nil, authDomain.ErrPasswordMismatch
	}
	if len(input.NewPassword) < authDomain.MinPasswordLength {
		return nil, authDomain.ErrPasswordTooShort
	}
	if err := a.VerifyPassword(ctx, input.CurrentPassword); err != nil {
		return nil, err
	}

	a.logger.WarnContext(ctx, "password change requested but admin password is fixed by configuration",
		slog.String("username", claims.Username))
	return a.issue(claims.Username, claims.Email), nil
}

func (a *authUseCase) ChangeUsername(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeUsernameInput,
) (*authDomain.Session, error) {
	if input.NewUsername == claims.Username {
		return nil, authDomain.ErrSameUsername
	}
	if !authDomain.IsUsernameAllowed(input.NewUsername) {
		return nil, authDomain.ErrInvalidUsername
	}
	if err := a.VerifyPassword(ctx, input.Password); err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "username changed",
		slog.String("from", claims.Username),
		slog.String("to", input.NewUsername))
	return a.issue(input.NewUsername, claims.Email), nil
}

func (a *authUseCase) DeleteAccount(ctx context.Context, claims *authDomain.Claims, password string) error {
	if err := a.VerifyPassword(ctx, password); err != nil {
		return err
	}

	a.logger.InfoContext(ctx, "account deletion requested", slog.String("username", claims.Username))
	return nil
}

func (a *authUseCase) Info(_ context.Context, claims *authDomain.Claims) (*authDomain.AccountInfo, error) {
	return &authDomain.AccountInfo{
		Username:  claims.Username,
		Email:     claims.Email,
		IssuedAt:  claims.IssuedAt,
		ExpiresAt: claims.ExpiresAt(a.ttl()),
	}, nil
}

// NewAuthUseCase creates a new AuthUseCase with the provided dependencies.
func NewAuthUseCase(
	config *config.Config,
	tokenService authService.TokenService,
	passwordService authService.PasswordService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		config:          config,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          logger,
		now:             time.Now,
	}
}
