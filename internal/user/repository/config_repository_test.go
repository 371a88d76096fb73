package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliverydash/internal/delivery"
	"github.com/allisson/deliverydash/internal/kvstore"
)

func TestConfigRepository(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	repo := NewConfigRepository(store)

	t.Run("Error_NotFound", func(t *testing.T) {
		cfg, err := repo.Get(ctx, "admin")
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, kvstore.ErrNotFound)
	})

	t.Run("Success_SaveAndGet", func(t *testing.T) {
		cfg := delivery.DefaultConfig()
		cfg.ExpressFee = 5
		cfg.BlockedDates = []string{"2024-12-25"}
		require.NoError(t, repo.Save(ctx, "admin", &cfg))

		got, err := repo.Get(ctx, "admin")
		require.NoError(t, err)
		assert.Equal(t, cfg, *got)
	})

	t.Run("Success_NormalisesLegacyValues", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, Key("legacy"), []byte(`{"expressFee":2}`)))

		got, err := repo.Get(ctx, "legacy")
		require.NoError(t, err)
		assert.Equal(t, 2.0, got.ExpressFee)
		assert.NotNil(t, got.TimeSlots)
		assert.Equal(t, delivery.DefaultTimezone, got.Settings.Timezone)
	})
}
