package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
	httpMocks "github.com/allisson/deliverydash/internal/shopify/http/mocks"
	"github.com/allisson/deliverydash/internal/shopify/usecase"
)

type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) Observe(ctx context.Context, domain, operation string, started time.Time, err error) {
	m.Called(ctx, domain, operation, started, err)
}

func TestShopifyUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("GetSettings", func(t *testing.T) {
		mockNext := &httpMocks.MockShopifyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewShopifyUseCaseWithMetrics(mockNext, mockMetrics)

		mockNext.On("GetSettings", ctx, "admin").Return(nil, shopifyDomain.ErrSettingsNotFound).Once()
		mockMetrics.On("Observe", ctx, "shopify", "get_settings", mock.AnythingOfType("time.Time"),
			shopifyDomain.ErrSettingsNotFound).Return().Once()

		res, err := uc.GetSettings(ctx, "admin")
		assert.Nil(t, res)
		assert.ErrorIs(t, err, shopifyDomain.ErrSettingsNotFound)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("SaveSettings", func(t *testing.T) {
		mockNext := &httpMocks.MockShopifyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewShopifyUseCaseWithMetrics(mockNext, mockMetrics)

		input := &shopifyDomain.SaveSettingsInput{ShopDomain: "my-store.myshopify.com"}
		settings := &shopifyDomain.Settings{ShopDomain: "my-store.myshopify.com"}
		mockNext.On("SaveSettings", ctx, "admin", input).Return(settings, nil).Once()
		mockMetrics.On("Observe", ctx, "shopify", "save_settings", mock.AnythingOfType("time.Time"), nil).
			Return().
			Once()

		res, err := uc.SaveSettings(ctx, "admin", input)
		assert.NoError(t, err)
		assert.Equal(t, settings, res)
		mockMetrics.AssertExpectations(t)
	})

	t.Run("TestConnection", func(t *testing.T) {
		mockNext := &httpMocks.MockShopifyUseCase{}
		mockMetrics := &mockBusinessMetrics{}
		uc := usecase.NewShopifyUseCaseWithMetrics(mockNext, mockMetrics)

		shop := &shopifyDomain.ShopInfo{Name: "My Store"}
		mockNext.On("TestConnection", ctx, "admin").Return(shop, nil).Once()
		mockMetrics.On("Observe", ctx, "shopify", "test_connection", mock.AnythingOfType("time.Time"), nil).
			Return().
			Once()

		res, err := uc.TestConnection(ctx, "admin")
		assert.NoError(t, err)
		assert.Equal(t, shop, res)
		mockMetrics.AssertExpectations(t)
	})
}
