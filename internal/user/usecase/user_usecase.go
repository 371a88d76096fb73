package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/allisson/deliverydash/internal/database"
	"github.com/allisson/deliverydash/internal/delivery"
	apperrors "github.com/allisson/deliverydash/internal/errors"
	"github.com/allisson/deliverydash/internal/kvstore"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
	customValidation "github.com/allisson/deliverydash/internal/validation"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

type userUseCase struct {
	txManager  database.TxManager
	configRepo ConfigRepository
	pusher     widgetsync.Pusher
	logger     *slog.Logger
}

// NewUserUseCase creates a UserUseCase.
func NewUserUseCase(
	txManager database.TxManager,
	configRepo ConfigRepository,
	pusher widgetsync.Pusher,
	logger *slog.Logger,
) UserUseCase {
	return &userUseCase{
		txManager:  txManager,
		configRepo: configRepo,
		pusher:     pusher,
		logger:     logger,
	}
}

// find returns the stored configuration, or nil when userID has none.
func (u *userUseCase) find(ctx context.Context, userID string) (*delivery.Config, error) {
	cfg, err := u.configRepo.Get(ctx, userID)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to load delivery config")
	}
	return cfg, nil
}

func (u *userUseCase) GetData(ctx context.Context, userID string) (*delivery.Config, error) {
	cfg, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		def := delivery.DefaultConfig()
		return &def, nil
	}
	return cfg, nil
}

func (u *userUseCase) SaveData(
	ctx context.Context,
	userID string,
	cfg *delivery.Config,
) (*delivery.Config, error) {
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	if err := u.configRepo.Save(ctx, userID, cfg); err != nil {
		return nil, apperrors.Wrap(err, "failed to save delivery config")
	}

	u.logger.InfoContext(ctx, "delivery config saved",
		slog.String("user_id", userID),
		slog.Int("time_slots", len(cfg.TimeSlots)),
	)
	return cfg, nil
}

func (u *userUseCase) Migrate(ctx context.Context, userID string) (*userDomain.MigrationResult, error) {
	var result *userDomain.MigrationResult

	err := u.txManager.WithTx(ctx, func(ctx context.Context) error {
		existing, err := u.find(ctx, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			result = &userDomain.MigrationResult{Reason: userDomain.ReasonAlreadyMigrated}
			return nil
		}

		global, err := u.find(ctx, userDomain.GlobalUserID)
		if err != nil {
			return err
		}
		if global == nil {
			result = &userDomain.MigrationResult{Reason: userDomain.ReasonNothingToCopy}
			return nil
		}

		if err := u.configRepo.Save(ctx, userID, global); err != nil {
			return apperrors.Wrap(err, "failed to save migrated config")
		}
		result = &userDomain.MigrationResult{Migrated: true, Reason: userDomain.ReasonMigrated}
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.logger.InfoContext(ctx, "user data migration",
		slog.String("user_id", userID),
		slog.Bool("migrated", result.Migrated),
	)
	return result, nil
}

func (u *userUseCase) Sync(ctx context.Context, userID string, cfg *delivery.Config) error {
	if cfg == nil {
		stored, err := u.GetData(ctx, userID)
		if err != nil {
			return err
		}
		cfg = stored
	} else {
		cfg.Normalize()
		if err := cfg.Validate(); err != nil {
			return customValidation.WrapValidationError(err)
		}
	}

	if err := u.pusher.Push(ctx, widgetsync.Payload{UserID: userID, Config: *cfg}); err != nil {
		u.logger.WarnContext(ctx, "widget sync failed", slog.String("user_id", userID), slog.Any("error", err))
		return err
	}

	u.logger.InfoContext(ctx, "widget sync completed", slog.String("user_id", userID))
	return nil
}

func (u *userUseCase) WidgetFeed(
	ctx context.Context,
	userID string,
	now time.Time,
) (*userDomain.WidgetFeed, error) {
	cfg, err := u.find(ctx, userID)
	if err != nil {
		return nil, err
	}
	if cfg == nil && userID != userDomain.GlobalUserID {
		if cfg, err = u.find(ctx, userDomain.GlobalUserID); err != nil {
			return nil, err
		}
	}
	if cfg == nil {
		def := delivery.DefaultConfig()
		cfg = &def
	}

	dates := delivery.AvailableDates(*cfg, now, userDomain.FeedDays)
	feed := &userDomain.WidgetFeed{
		Config:         *cfg,
		AvailableDates: make([]string, 0, len(dates)),
		SampleTags:     []string{},
	}
	for _, d := range dates {
		feed.AvailableDates = append(feed.AvailableDates, d.Format(time.DateOnly))
	}

	if len(dates) > 0 && len(cfg.TimeSlots) > 0 {
		slot := cfg.TimeSlots[0]
		kind := slot.Type
		if kind == "" {
			kind = delivery.TypeDelivery
		}
		feed.SampleTags = delivery.GenerateTags(delivery.TagData{
			Type:     kind,
			Date:     dates[0],
			TimeSlot: slot,
			Fee:      slot.Fee,
		})
	}
	return feed, nil
}
