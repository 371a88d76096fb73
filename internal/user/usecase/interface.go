// Package usecase implements the per-user delivery data operations and the widget feed.
package usecase

import (
	"context"
	"time"

	"github.com/allisson/deliverydash/internal/delivery"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
)

// ConfigRepository persists delivery configurations per user id.
type ConfigRepository interface {
	Get(ctx context.Context, userID string) (*delivery.Config, error)
	Save(ctx context.Context, userID string, cfg *delivery.Config) error
}

// UserUseCase manages the delivery configuration of dashboard users.
type UserUseCase interface {
	// GetData returns the stored configuration, or the default one when nothing is stored.
	GetData(ctx context.Context, userID string) (*delivery.Config, error)

	// SaveData validates and stores cfg.
	SaveData(ctx context.Context, userID string, cfg *delivery.Config) (*delivery.Config, error)

	// Migrate copies the global configuration to userID when userID has none.
	Migrate(ctx context.Context, userID string) (*userDomain.MigrationResult, error)

	// Sync pushes the configuration to the widget worker. A nil cfg sends the stored one.
	Sync(ctx context.Context, userID string, cfg *delivery.Config) error

	// WidgetFeed returns the configuration of userID (falling back to the global one)
	// with the next bookable dates counted from now.
	WidgetFeed(ctx context.Context, userID string, now time.Time) (*userDomain.WidgetFeed, error)
}
