package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/allisson/deliverydash/internal/httputil"
	shopifyHTTP "github.com/allisson/deliverydash/internal/shopify/http"
	shopifyRepository "github.com/allisson/deliverydash/internal/shopify/repository"
	shopifyService "github.com/allisson/deliverydash/internal/shopify/service"
	shopifyUseCase "github.com/allisson/deliverydash/internal/shopify/usecase"
)

type shopifyComponents struct {
	secretsCipher      shopifyService.Cipher
	adminClient        shopifyService.AdminClient
	settingsRepository shopifyUseCase.SettingsRepository
	shopifyUseCase     shopifyUseCase.ShopifyUseCase
	shopifyHandler     *shopifyHTTP.ShopifyHandler

	secretsCipherInit      sync.Once
	adminClientInit        sync.Once
	settingsRepositoryInit sync.Once
	shopifyUseCaseInit     sync.Once
	shopifyHandlerInit     sync.Once
}

// SecretsCipher returns the cipher that protects Shopify credentials at rest.
func (c *Container) SecretsCipher() (shopifyService.Cipher, error) {
	var err error
	c.secretsCipherInit.Do(func() {
		c.secretsCipher, err = shopifyService.OpenCipher(context.Background(), c.config.SecretsKeeperURL)
		if err != nil {
			c.initErrors["secretsCipher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["secretsCipher"]; exists {
		return nil, storedErr
	}
	return c.secretsCipher, nil
}

// AdminClient returns the Shopify Admin API client.
func (c *Container) AdminClient() (shopifyService.AdminClient, error) {
	var err error
	c.adminClientInit.Do(func() {
		c.adminClient, err = c.initAdminClient()
		if err != nil {
			c.initErrors["adminClient"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["adminClient"]; exists {
		return nil, storedErr
	}
	return c.adminClient, nil
}

// SettingsRepository returns the Shopify settings repository.
func (c *Container) SettingsRepository() (shopifyUseCase.SettingsRepository, error) {
	var err error
	c.settingsRepositoryInit.Do(func() {
		c.settingsRepository, err = c.initSettingsRepository()
		if err != nil {
			c.initErrors["settingsRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["settingsRepository"]; exists {
		return nil, storedErr
	}
	return c.settingsRepository, nil
}

// ShopifyUseCase returns the Shopify use case, decorated with metrics.
func (c *Container) ShopifyUseCase() (shopifyUseCase.ShopifyUseCase, error) {
	var err error
	c.shopifyUseCaseInit.Do(func() {
		c.shopifyUseCase, err = c.initShopifyUseCase()
		if err != nil {
			c.initErrors["shopifyUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["shopifyUseCase"]; exists {
		return nil, storedErr
	}
	return c.shopifyUseCase, nil
}

// ShopifyHandler returns the HTTP handler for the /api/shopify endpoints.
func (c *Container) ShopifyHandler() (*shopifyHTTP.ShopifyHandler, error) {
	var err error
	c.shopifyHandlerInit.Do(func() {
		c.shopifyHandler, err = c.initShopifyHandler()
		if err != nil {
			c.initErrors["shopifyHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["shopifyHandler"]; exists {
		return nil, storedErr
	}
	return c.shopifyHandler, nil
}

func (c *Container) initAdminClient() (shopifyService.AdminClient, error) {
	meterProvider, err := c.outboundMeterProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get meter provider for admin client: %w", err)
	}
	client := httputil.NewHTTPClient(c.config.ShopifyTimeout, meterProvider)
	return shopifyService.NewAdminClient(client), nil
}

func (c *Container) initSettingsRepository() (shopifyUseCase.SettingsRepository, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for settings repository: %w", err)
	}
	return shopifyRepository.NewSettingsRepository(store), nil
}

func (c *Container) initShopifyUseCase() (shopifyUseCase.ShopifyUseCase, error) {
	repo, err := c.SettingsRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get settings repository for shopify use case: %w", err)
	}

	cipher, err := c.SecretsCipher()
	if err != nil {
		return nil, fmt.Errorf("failed to get secrets cipher for shopify use case: %w", err)
	}

	adminClient, err := c.AdminClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get admin client for shopify use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for shopify use case: %w", err)
	}

	useCase := shopifyUseCase.NewShopifyUseCase(
		repo,
		cipher,
		adminClient,
		c.config.ShopifyAPIVersion,
		c.Logger(),
	)
	return shopifyUseCase.NewShopifyUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initShopifyHandler() (*shopifyHTTP.ShopifyHandler, error) {
	useCase, err := c.ShopifyUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get shopify use case for shopify handler: %w", err)
	}
	return shopifyHTTP.NewShopifyHandler(useCase, c.Logger()), nil
}
