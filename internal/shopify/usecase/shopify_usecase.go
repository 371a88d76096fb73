package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	apperrors "github.com/allisson/deliverydash/internal/errors"
	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
	shopifyService "github.com/allisson/deliverydash/internal/shopify/service"
	customValidation "github.com/allisson/deliverydash/internal/validation"
)

type shopifyUseCase struct {
	repo              SettingsRepository
	cipher            shopifyService.Cipher
	adminClient       shopifyService.AdminClient
	defaultAPIVersion string
	logger            *slog.Logger
	now               func() time.Time
}

// NewShopifyUseCase creates a ShopifyUseCase. An empty defaultAPIVersion falls back to
// shopifyDomain.DefaultAPIVersion.
func NewShopifyUseCase(
	repo SettingsRepository,
	cipher shopifyService.Cipher,
	adminClient shopifyService.AdminClient,
	defaultAPIVersion string,
	logger *slog.Logger,
) ShopifyUseCase {
	if defaultAPIVersion == "" {
		defaultAPIVersion = shopifyDomain.DefaultAPIVersion
	}
	return &shopifyUseCase{
		repo:              repo,
		cipher:            cipher,
		adminClient:       adminClient,
		defaultAPIVersion: defaultAPIVersion,
		logger:            logger,
		now:               time.Now,
	}
}

// load returns the stored settings with secrets decrypted.
func (s *shopifyUseCase) load(ctx context.Context, userID string) (*shopifyDomain.Settings, error) {
	stored, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	settings := *stored
	if settings.AccessToken, err = s.cipher.Decrypt(ctx, stored.AccessToken); err != nil {
		return nil, err
	}
	if settings.AppSecret, err = s.cipher.Decrypt(ctx, stored.AppSecret); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *shopifyUseCase) GetSettings(ctx context.Context, userID string) (*shopifyDomain.Settings, error) {
	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return settings.Masked(), nil
}

func (s *shopifyUseCase) SaveSettings(
	ctx context.Context,
	userID string,
	input *shopifyDomain.SaveSettingsInput,
) (*shopifyDomain.Settings, error) {
	existing, err := s.load(ctx, userID)
	if err != nil && !errors.Is(err, shopifyDomain.ErrSettingsNotFound) {
		return nil, err
	}

	settings := &shopifyDomain.Settings{
		ShopDomain:  shopifyDomain.NormalizeDomain(input.ShopDomain),
		AccessToken: input.AccessToken,
		APIVersion:  input.APIVersion,
		AppSecret:   input.AppSecret,
		UpdatedAt:   s.now().UTC(),
	}
	if settings.APIVersion == "" {
		settings.APIVersion = s.defaultAPIVersion
	}
	if existing != nil {
		if settings.AccessToken == "" || shopifyDomain.IsMasked(settings.AccessToken) {
			settings.AccessToken = existing.AccessToken
		}
		if settings.AppSecret == "" || shopifyDomain.IsMasked(settings.AppSecret) {
			settings.AppSecret = existing.AppSecret
		}
	} else if shopifyDomain.IsMasked(settings.AccessToken) {
		settings.AccessToken = ""
	}

	if err := settings.Validate(); err != nil {
		return nil, customValidation.WrapValidationError(err)
	}

	encrypted := *settings
	if encrypted.AccessToken, err = s.cipher.Encrypt(ctx, settings.AccessToken); err != nil {
		return nil, err
	}
	if encrypted.AppSecret, err = s.cipher.Encrypt(ctx, settings.AppSecret); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, userID, &encrypted); err != nil {
		return nil, apperrors.Wrap(err, "failed to save shopify settings")
	}

	s.logger.InfoContext(ctx, "shopify settings saved",
		slog.String("user_id", userID),
		slog.String("shop_domain", settings.ShopDomain),
	)
	return settings.Masked(), nil
}

func (s *shopifyUseCase) TestConnection(ctx context.Context, userID string) (*shopifyDomain.ShopInfo, error) {
	settings, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	shop, err := s.adminClient.Shop(ctx, settings)
	if err != nil {
		s.logger.WarnContext(ctx, "shopify connection test failed",
			slog.String("user_id", userID),
			slog.String("shop_domain", settings.ShopDomain),
			slog.Any("error", err),
		)
		return nil, err
	}
	return shop, nil
}
