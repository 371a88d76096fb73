package usecase

import (
	"context"
	"time"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	"github.com/allisson/deliverydash/internal/metrics"
)

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	username, password string,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.Login(ctx, username, password)
	a.metrics.Observe(ctx, "auth", "login", start, err)
	return session, err
}

func (a *authUseCaseWithMetrics) Logout(ctx context.Context, claims *authDomain.Claims) error {
	start := time.Now()
	err := a.next.Logout(ctx, claims)
	a.metrics.Observe(ctx, "auth", "logout", start, err)
	return err
}

func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (*authDomain.Claims, error) {
	start := time.Now()
	claims, err := a.next.Authenticate(ctx, token)
	a.metrics.Observe(ctx, "auth", "authenticate", start, err)
	return claims, err
}

func (a *authUseCaseWithMetrics) VerifyPassword(ctx context.Context, password string) error {
	start := time.Now()
	err := a.next.VerifyPassword(ctx, password)
	a.metrics.Observe(ctx, "auth", "verify_password", start, err)
	return err
}

func (a *authUseCaseWithMetrics) ChangeEmail(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeEmailInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.ChangeEmail(ctx, claims, input)
	a.metrics.Observe(ctx, "auth", "change_email", start, err)
	return session, err
}

func (a *authUseCaseWithMetrics) ChangePassword(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangePasswordInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.ChangePassword(ctx, claims, input)
	a.metrics.Observe(ctx, "auth", "change_password", start, err)
	return session, err
}

func (a *authUseCaseWithMetrics) ChangeUsername(
	ctx context.Context,
	claims *authDomain.Claims,
	input *authDomain.ChangeUsernameInput,
) (*authDomain.Session, error) {
	start := time.Now()
	session, err := a.next.ChangeUsername(ctx, claims, input)
	a.metrics.Observe(ctx, "auth", "change_username", start, err)
	return session, err
}

func (a *authUseCaseWithMetrics) DeleteAccount(
	ctx context.Context,
	claims *authDomain.Claims,
	password string,
) error {
	start := time.Now()
	err := a.next.DeleteAccount(ctx, claims, password)
	a.metrics.Observe(ctx, "auth", "delete_account", start, err)
	return err
}

func (a *authUseCaseWithMetrics) Info(
	ctx context.Context,
	claims *authDomain.Claims,
) (*authDomain.AccountInfo, error) {
	start := time.Now()
	info, err := a.next.Info(ctx, claims)
	a.metrics.Observe(ctx, "auth", "info", start, err)
	return info, err
}
