// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/allisson/deliverydash/internal/delivery"
	userDomain "github.com/allisson/deliverydash/internal/user/domain"
)

// MockUserUseCase is a mock implementation of UserUseCase for testing.
type MockUserUseCase struct {
	mock.Mock
}

func configOrNil(args mock.Arguments) (*delivery.Config, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Config), args.Error(1)
}

// GetData mocks the GetData method of UserUseCase.
func (m *MockUserUseCase) GetData(ctx context.Context, userID string) (*delivery.Config, error) {
	return configOrNil(m.Called(ctx, userID))
}

// SaveData mocks the SaveData method of UserUseCase.
func (m *MockUserUseCase) SaveData(
	ctx context.Context,
	userID string,
	cfg *delivery.Config,
) (*delivery.Config, error) {
	return configOrNil(m.Called(ctx, userID, cfg))
}

// Migrate mocks the Migrate method of UserUseCase.
func (m *MockUserUseCase) Migrate(ctx context.Context, userID string) (*userDomain.MigrationResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.MigrationResult), args.Error(1)
}

// Sync mocks the Sync method of UserUseCase.
func (m *MockUserUseCase) Sync(ctx context.Context, userID string, cfg *delivery.Config) error {
	args := m.Called(ctx, userID, cfg)
	return args.Error(0)
}

// WidgetFeed mocks the WidgetFeed method of UserUseCase.
func (m *MockUserUseCase) WidgetFeed(
	ctx context.Context,
	userID string,
	now time.Time,
) (*userDomain.WidgetFeed, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userDomain.WidgetFeed), args.Error(1)
}
