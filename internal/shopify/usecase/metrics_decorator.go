package usecase

import (
	"context"
	"time"

	"github.com/allisson/deliverydash/internal/metrics"
	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// shopifyUseCaseWithMetrics decorates ShopifyUseCase with metrics instrumentation.
type shopifyUseCaseWithMetrics struct {
	next    ShopifyUseCase
	metrics metrics.BusinessMetrics
}

// NewShopifyUseCaseWithMetrics wraps a ShopifyUseCase with metrics recording.
func NewShopifyUseCaseWithMetrics(useCase ShopifyUseCase, m metrics.BusinessMetrics) ShopifyUseCase {
	return &shopifyUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (s *shopifyUseCaseWithMetrics) GetSettings(
	ctx context.Context,
	userID string,
) (*shopifyDomain.Settings, error) {
	start := time.Now()
	settings, err := s.next.GetSettings(ctx, userID)
	s.metrics.Observe(ctx, "shopify", "get_settings", start, err)
	return settings, err
}

func (s *shopifyUseCaseWithMetrics) SaveSettings(
	ctx context.Context,
	userID string,
	input *shopifyDomain.SaveSettingsInput,
) (*shopifyDomain.Settings, error) {
	start := time.Now()
	settings, err := s.next.SaveSettings(ctx, userID, input)
	s.metrics.Observe(ctx, "shopify", "save_settings", start, err)
	return settings, err
}

func (s *shopifyUseCaseWithMetrics) TestConnection(
	ctx context.Context,
	userID string,
) (*shopifyDomain.ShopInfo, error) {
	start := time.Now()
	shop, err := s.next.TestConnection(ctx, userID)
	s.metrics.Observe(ctx, "shopify", "test_connection", start, err)
	return shop, err
}
