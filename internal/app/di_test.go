package app

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/database"
	"github.com/allisson/deliverydash/internal/kvstore"
)

func memoryConfig() *config.Config {
	return &config.Config{
		LogLevel:          "error",
		ServerHost:        "localhost",
		ServerPort:        8080,
		DBDriver:          MemoryDriver,
		AdminPassword:     "admin123",
		SessionTTL:        time.Hour,
		CORSAllowOrigins:  "*",
		MetricsNamespace:  "deliverydash",
		MetricsPort:       8081,
		ShopifyAPIVersion: "2024-10",
		ShopifyTimeout:    time.Second,
		WidgetSyncTimeout: time.Second,
	}
}

// TestNewContainer verifies that a new container can be created with a valid configuration.
func TestNewContainer(t *testing.T) {
	cfg := memoryConfig()

	container := NewContainer(cfg)

	if container == nil {
		t.Fatal("expected non-nil container")
	}

	if container.Config() != cfg {
		t.Error("container config does not match provided config")
	}
}

// TestContainerLogger verifies that the logger can be retrieved from the container.
func TestContainerLogger(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "debug"})
	logger := container.Logger()

	if logger == nil {
		t.Fatal("expected non-nil logger")
	}

	// Calling Logger() again should return the same instance (singleton)
	if logger != container.Logger() {
		t.Error("expected same logger instance on multiple calls")
	}
}

// TestContainerLoggerDefaultLevel verifies that an unknown level still yields a logger.
func TestContainerLoggerDefaultLevel(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "invalid"})

	if container.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
}

// TestContainerInitializationErrors verifies that initialization errors are remembered.
func TestContainerInitializationErrors(t *testing.T) {
	container := NewContainer(&config.Config{DBDriver: "invalid_driver"})

	_, err := container.DB()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")

	// The stored error is returned on every later call
	_, err = container.DB()
	assert.Error(t, err)

	// Dependents surface the same failure
	_, err = container.KVStore()
	assert.Error(t, err)
	_, err = container.UserUseCase()
	assert.Error(t, err)
}

func TestContainerMemoryDriver(t *testing.T) {
	container := NewContainer(memoryConfig())

	db, err := container.DB()
	require.NoError(t, err)
	assert.Nil(t, db)

	store, err := container.KVStore()
	require.NoError(t, err)
	assert.IsType(t, &kvstore.MemoryStore{}, store)

	txManager, err := container.TxManager()
	require.NoError(t, err)
	assert.Equal(t, database.NoopTxManager{}, txManager)

	provider, err := container.MetricsProvider()
	require.NoError(t, err)
	assert.Nil(t, provider)

	// Same store instance is shared by both repositories
	again, err := container.KVStore()
	require.NoError(t, err)
	assert.Same(t, store, again)
}

func TestContainerSecretsCipher(t *testing.T) {
	t.Run("plain cipher without keeper url", func(t *testing.T) {
		container := NewContainer(memoryConfig())

		cipher, err := container.SecretsCipher()
		require.NoError(t, err)

		encrypted, err := cipher.Encrypt(context.Background(), "shpat_secret")
		require.NoError(t, err)
		assert.Equal(t, "shpat_secret", encrypted)
	})

	t.Run("local keeper", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.SecretsKeeperURL = "base64key://" + base64.URLEncoding.EncodeToString(make([]byte, 32))
		container := NewContainer(cfg)

		cipher, err := container.SecretsCipher()
		require.NoError(t, err)

		encrypted, err := cipher.Encrypt(context.Background(), "shpat_secret")
		require.NoError(t, err)
		assert.NotEqual(t, "shpat_secret", encrypted)

		assert.NoError(t, container.Shutdown(context.Background()))
	})

	t.Run("invalid keeper url", func(t *testing.T) {
		cfg := memoryConfig()
		cfg.SecretsKeeperURL = "unknown://keeper"
		container := NewContainer(cfg)

		_, err := container.SecretsCipher()
		assert.Error(t, err)

		_, err = container.ShopifyUseCase()
		assert.Error(t, err)
	})
}

func TestContainerWiresRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for _, metricsEnabled := range []bool{false, true} {
		cfg := memoryConfig()
		cfg.MetricsEnabled = metricsEnabled
		container := NewContainer(cfg)

		server, err := container.HTTPServer()
		require.NoError(t, err)
		authHandler, err := container.AuthHandler()
		require.NoError(t, err)
		authUseCase, err := container.AuthUseCase()
		require.NoError(t, err)
		shopifyHandler, err := container.ShopifyHandler()
		require.NoError(t, err)
		userHandler, err := container.UserHandler()
		require.NoError(t, err)
		provider, err := container.MetricsProvider()
		require.NoError(t, err)
		assert.Equal(t, metricsEnabled, provider != nil)

		ctx, cancel := context.WithCancel(context.Background())
		server.SetupRouter(ctx, cfg, authHandler, authUseCase, shopifyHandler, userHandler, provider)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ready", nil)
		server.GetHandler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"database":"memory"`)

		w = httptest.NewRecorder()
		req = httptest.NewRequest(
			http.MethodPost,
			"/api/auth/login",
			strings.NewReader(`{"username":"shop-owner","password":"admin123"}`),
		)
		req.Header.Set("Content-Type", "application/json")
		server.GetHandler().ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"token"`)

		metricsServer, err := container.MetricsServer()
		require.NoError(t, err)
		assert.NotNil(t, metricsServer.GetHandler())

		cancel()
		assert.NoError(t, container.Shutdown(context.Background()))
	}
}

// TestContainerShutdown verifies that the shutdown method can be called safely.
func TestContainerShutdown(t *testing.T) {
	container := NewContainer(&config.Config{LogLevel: "info"})

	// Shutdown should not fail even if no components are initialized
	if err := container.Shutdown(context.TODO()); err != nil {
		t.Errorf("unexpected error during shutdown: %v", err)
	}
}
