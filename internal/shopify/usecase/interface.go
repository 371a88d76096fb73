// Package usecase implements Shopify settings management and the connection test.
package usecase

import (
	"context"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// SettingsRepository persists settings per user id. Secrets arrive already encrypted.
type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*shopifyDomain.Settings, error)
	Save(ctx context.Context, userID string, settings *shopifyDomain.Settings) error
}

// ShopifyUseCase manages the Shopify credentials of a dashboard user.
type ShopifyUseCase interface {
	// GetSettings returns the stored settings with secrets masked, or ErrSettingsNotFound.
	GetSettings(ctx context.Context, userID string) (*shopifyDomain.Settings, error)

	// SaveSettings normalises, validates and stores the settings. Empty or masked secrets
	// keep their stored value. Returns the masked result.
	SaveSettings(
		ctx context.Context,
		userID string,
		input *shopifyDomain.SaveSettingsInput,
	) (*shopifyDomain.Settings, error)

	// TestConnection fetches shop.json with the stored credentials.
	TestConnection(ctx context.Context, userID string) (*shopifyDomain.ShopInfo, error)
}
