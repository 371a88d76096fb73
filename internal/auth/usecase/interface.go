// Package usecase defines business logic interfaces for dashboard authentication and
// account operations.
package usecase

import (
	"context"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
)

// AuthUseCase defines login, token validation and the account management operations.
// No account state is persisted: every change is expressed as a freshly issued token.
type AuthUseCase interface {
	// Login accepts AdminUsername or any allowed username together with the admin
	// password. Returns ErrInvalidCredentials otherwise.
	Login(ctx context.Context, username, password string) (*authDomain.Session, error)

	// Logout is best effort and always succeeds; tokens cannot be revoked.
	Logout(ctx context.Context, claims *authDomain.Claims) error

	// Authenticate decodes token and rejects it once it is older than the session TTL.
	Authenticate(ctx context.Context, token string) (*authDomain.Claims, error)

	// VerifyPassword returns ErrInvalidPassword unless password is the admin password.
	VerifyPassword(ctx context.Context, password string) error

	// ChangeEmail re-issues the session token carrying the new email.
	ChangeEmail(
		ctx context.Context,
		claims *authDomain.Claims,
		input *authDomain.ChangeEmailInput,
	) (*authDomain.Session, error)

	// ChangePassword validates the request and re-issues the token. The admin password
	// is configuration, so the new value is not stored.
	ChangePassword(
		ctx context.Context,
		claims *authDomain.Claims,
		input *authDomain.ChangePasswordInput,
	) (*authDomain.Session, error)

	// ChangeUsername re-issues the token for the new username. Returns ErrSameUsername
	// when nothing changes.
	ChangeUsername(
		ctx context.Context,
		claims *authDomain.Claims,
		input *authDomain.ChangeUsernameInput,
	) (*authDomain.Session, error)

	// DeleteAccount confirms the password. There is no durable account to remove.
	DeleteAccount(ctx context.Context, claims *authDomain.Claims, password string) error

	// Info describes the session carried by claims.
	Info(ctx context.Context, claims *authDomain.Claims) (*authDomain.AccountInfo, error)
}
