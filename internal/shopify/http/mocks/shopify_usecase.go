// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// MockShopifyUseCase is a mock implementation of ShopifyUseCase for testing.
type MockShopifyUseCase struct {
	mock.Mock
}

// GetSettings mocks the GetSettings method of ShopifyUseCase.
func (m *MockShopifyUseCase) GetSettings(ctx context.Context, userID string) (*shopifyDomain.Settings, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopifyDomain.Settings), args.Error(1)
}

// SaveSettings mocks the SaveSettings method of ShopifyUseCase.
func (m *MockShopifyUseCase) SaveSettings(
	ctx context.Context,
	userID string,
	input *shopifyDomain.SaveSettingsInput,
) (*shopifyDomain.Settings, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopifyDomain.Settings), args.Error(1)
}

// TestConnection mocks the TestConnection method of ShopifyUseCase.
func (m *MockShopifyUseCase) TestConnection(ctx context.Context, userID string) (*shopifyDomain.ShopInfo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopifyDomain.ShopInfo), args.Error(1)
}
