package app

import (
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/metric"

	"github.com/allisson/deliverydash/internal/httputil"
	userHTTP "github.com/allisson/deliverydash/internal/user/http"
	userRepository "github.com/allisson/deliverydash/internal/user/repository"
	userUseCase "github.com/allisson/deliverydash/internal/user/usecase"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

type userComponents struct {
	widgetPusher     widgetsync.Pusher
	configRepository userUseCase.ConfigRepository
	userUseCase      userUseCase.UserUseCase
	userHandler      *userHTTP.UserHandler

	widgetPusherInit     sync.Once
	configRepositoryInit sync.Once
	userUseCaseInit      sync.Once
	userHandlerInit      sync.Once
}

// WidgetPusher returns the client that pushes delivery configurations to the widget worker.
func (c *Container) WidgetPusher() (widgetsync.Pusher, error) {
	var err error
	c.widgetPusherInit.Do(func() {
		c.widgetPusher, err = c.initWidgetPusher()
		if err != nil {
			c.initErrors["widgetPusher"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["widgetPusher"]; exists {
		return nil, storedErr
	}
	return c.widgetPusher, nil
}

// ConfigRepository returns the delivery configuration repository.
func (c *Container) ConfigRepository() (userUseCase.ConfigRepository, error) {
	var err error
	c.configRepositoryInit.Do(func() {
		c.configRepository, err = c.initConfigRepository()
		if err != nil {
			c.initErrors["configRepository"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["configRepository"]; exists {
		return nil, storedErr
	}
	return c.configRepository, nil
}

// UserUseCase returns the user data use case, decorated with metrics.
func (c *Container) UserUseCase() (userUseCase.UserUseCase, error) {
	var err error
	c.userUseCaseInit.Do(func() {
		c.userUseCase, err = c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// UserHandler returns the HTTP handler for the /api/user and widget endpoints.
func (c *Container) UserHandler() (*userHTTP.UserHandler, error) {
	var err error
	c.userHandlerInit.Do(func() {
		c.userHandler, err = c.initUserHandler()
		if err != nil {
			c.initErrors["userHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["userHandler"]; exists {
		return nil, storedErr
	}
	return c.userHandler, nil
}

// outboundMeterProvider returns the meter provider for outbound HTTP clients, or a nil
// interface when metrics are disabled.
func (c *Container) outboundMeterProvider() (metric.MeterProvider, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}
	return provider.MeterProvider(), nil
}

func (c *Container) initWidgetPusher() (widgetsync.Pusher, error) {
	meterProvider, err := c.outboundMeterProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get meter provider for widget pusher: %w", err)
	}
	client := httputil.NewHTTPClient(c.config.WidgetSyncTimeout, meterProvider)
	return widgetsync.NewHTTPPusher(c.config.WidgetSyncURL, client), nil
}

func (c *Container) initConfigRepository() (userUseCase.ConfigRepository, error) {
	store, err := c.KVStore()
	if err != nil {
		return nil, fmt.Errorf("failed to get kv store for config repository: %w", err)
	}
	return userRepository.NewConfigRepository(store), nil
}

func (c *Container) initUserUseCase() (userUseCase.UserUseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	configRepo, err := c.ConfigRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get config repository for user use case: %w", err)
	}

	pusher, err := c.WidgetPusher()
	if err != nil {
		return nil, fmt.Errorf("failed to get widget pusher for user use case: %w", err)
	}

	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
	}

	useCase := userUseCase.NewUserUseCase(txManager, configRepo, pusher, c.Logger())
	return userUseCase.NewUserUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initUserHandler() (*userHTTP.UserHandler, error) {
	useCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for user handler: %w", err)
	}
	return userHTTP.NewUserHandler(useCase, c.Logger()), nil
}
