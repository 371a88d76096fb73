// Package repository persists Shopify settings in the key-value store.
package repository

import (
	"context"
	"errors"

	"github.com/allisson/deliverydash/internal/kvstore"
	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// KeyPrefix namespaces settings keys in the key-value store.
const KeyPrefix = "shopify:settings:"

// SettingsRepository stores one Settings value per user id.
type SettingsRepository struct {
	store kvstore.Store
}

// NewSettingsRepository creates a SettingsRepository on store.
func NewSettingsRepository(store kvstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Key returns the storage key for userID.
func Key(userID string) string {
	return KeyPrefix + userID
}

// Get returns the stored settings or shopifyDomain.ErrSettingsNotFound.
func (r *SettingsRepository) Get(ctx context.Context, userID string) (*shopifyDomain.Settings, error) {
	var settings shopifyDomain.Settings
	if err := kvstore.GetJSON(ctx, r.store, Key(userID), &settings); err != nil {
		if errors.Is(err, kvstore.ErrNotFound) {
			return nil, shopifyDomain.ErrSettingsNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save replaces the settings of userID.
func (r *SettingsRepository) Save(ctx context.Context, userID string, settings *shopifyDomain.Settings) error {
	return kvstore.PutJSON(ctx, r.store, Key(userID), settings)
}
