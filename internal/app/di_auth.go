package app

import (
	"fmt"
	"sync"

	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
	authService "github.com/allisson/deliverydash/internal/auth/service"
	authUseCase "github.com/allisson/deliverydash/internal/auth/usecase"
)

type authComponents struct {
	tokenService    authService.TokenService
	passwordService authService.PasswordService
	authUseCase     authUseCase.AuthUseCase
	authHandler     *authHTTP.AuthHandler

	tokenServiceInit    sync.Once
	passwordServiceInit sync.Once
	authUseCaseInit     sync.Once
	authHandlerInit     sync.Once
}

// TokenService returns the token service for authentication operations.
func (c *Container) TokenService() authService.TokenService {
	c.tokenServiceInit.Do(func() {
		c.tokenService = authService.NewTokenService()
	})
	return c.tokenService
}

// PasswordService returns the verifier for the dashboard password.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	var err error
	c.passwordServiceInit.Do(func() {
		c.passwordService, err = authService.NewPasswordService(c.config.AdminPassword)
		if err != nil {
			c.initErrors["passwordService"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// AuthUseCase returns the auth use case, decorated with metrics.
func (c *Container) AuthUseCase() (authUseCase.AuthUseCase, error) {
	var err error
	c.authUseCaseInit.Do(func() {
		c.authUseCase, err = c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// AuthHandler returns the HTTP handler for the /api/auth endpoints.
func (c *Container) AuthHandler() (*authHTTP.AuthHandler, error) {
	var err error
	c.authHandlerInit.Do(func() {
		c.authHandler, err = c.initAuthHandler()
		if err != nil {
			c.initErrors["authHandler"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["authHandler"]; exists {
		return nil, storedErr
	}
	return c.authHandler, nil
}

func (c *Container) initAuthUseCase() (authUseCase.AuthUseCase, error) {
	businessMetrics, err := c.BusinessMetrics()
	if err != nil {
		return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for auth use case: %w", err)
	}

	useCase := authUseCase.NewAuthUseCase(c.config, c.TokenService(), passwordService, c.Logger())
	return authUseCase.NewAuthUseCaseWithMetrics(useCase, businessMetrics), nil
}

func (c *Container) initAuthHandler() (*authHTTP.AuthHandler, error) {
	useCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for auth handler: %w", err)
	}
	return authHTTP.NewAuthHandler(useCase, c.Logger()), nil
}
