// Package repository persists delivery configurations in the key-value store.
package repository

import (
	"context"

	"github.com/allisson/deliverydash/internal/delivery"
	"github.com/allisson/deliverydash/internal/kvstore"
)

// KeyPrefix namespaces delivery configuration keys.
const KeyPrefix = "delivery:config:"

// ConfigRepository stores one delivery.Config per user id.
type ConfigRepository struct {
	store kvstore.Store
}

// NewConfigRepository creates a ConfigRepository on store.
func NewConfigRepository(store kvstore.Store) *ConfigRepository {
	return &ConfigRepository{store: store}
}

// Key returns the storage key for userID.
func Key(userID string) string {
	return KeyPrefix + userID
}

// Get returns the configuration of userID or kvstore.ErrNotFound.
func (r *ConfigRepository) Get(ctx context.Context, userID string) (*delivery.Config, error) {
	var cfg delivery.Config
	if err := kvstore.GetJSON(ctx, r.store, Key(userID), &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save replaces the configuration of userID.
func (r *ConfigRepository) Save(ctx context.Context, userID string, cfg *delivery.Config) error {
	return kvstore.PutJSON(ctx, r.store, Key(userID), cfg)
}
