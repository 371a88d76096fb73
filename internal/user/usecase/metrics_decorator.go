package usecase

import (
	"context"
	"time"

	"github.com/allisson/deliverydash/internal/delivery"
	"github.com/allisson/deliverydash/internal/metrics"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
)

// userUseCaseWithMetrics decorates UserUseCase with metrics instrumentation.
type userUseCaseWithMetrics struct {
	next    UserUseCase
	metrics metrics.BusinessMetrics
}

// NewUserUseCaseWithMetrics wraps a UserUseCase with metrics recording.
func NewUserUseCaseWithMetrics(useCase UserUseCase, m metrics.BusinessMetrics) UserUseCase {
	return &userUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *userUseCaseWithMetrics) GetData(ctx context.Context, userID string) (*delivery.Config, error) {
	start := time.Now()
	cfg, err := u.next.GetData(ctx, userID)
	u.metrics.Observe(ctx, "user", "get_data", start, err)
	return cfg, err
}

func (u *userUseCaseWithMetrics) SaveData(
	ctx context.Context,
	userID string,
	cfg *delivery.Config,
) (*delivery.Config, error) {
	start := time.Now()
	saved, err := u.next.SaveData(ctx, userID, cfg)
	u.metrics.Observe(ctx, "user", "save_data", start, err)
	return saved, err
}

func (u *userUseCaseWithMetrics) Migrate(ctx context.Context, userID string) (*userDomain.MigrationResult, error) {
	start := time.Now()
	result, err := u.next.Migrate(ctx, userID)
	u.metrics.Observe(ctx, "user", "migrate", start, err)
	return result, err
}

func (u *userUseCaseWithMetrics) Sync(ctx context.Context, userID string, cfg *delivery.Config) error {
	start := time.Now()
	err := u.next.Sync(ctx, userID, cfg)
	u.metrics.Observe(ctx, "user", "sync", start, err)
	return err
}

func (u *userUseCaseWithMetrics) WidgetFeed(
	ctx context.Context,
	userID string,
	now time.Time,
) (*userDomain.WidgetFeed, error) {
	start := time.Now()
	feed, err := u.next.WidgetFeed(ctx, userID, now)
	u.metrics.Observe(ctx, "user", "widget_feed", start, err)
	return feed, err
}
