package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authHTTP "github.com/allisson/deliverydash/internal/auth/http"
	authService "github.com/allisson/deliverydash/internal/auth/service"
	authUseCase "github.com/allisson/deliverydash/internal/auth/usecase"
	"github.com/allisson/deliverydash/internal/config"
	"github.com/allisson/deliverydash/internal/database"
	"github.com/allisson/deliverydash/internal/kvstore"
	"github.com/allisson/deliverydash/internal/metrics"
	shopifyHTTP "github.com/allisson/deliverydash/internal/shopify/http"
	shopifyRepository "github.com/allisson/deliverydash/internal/shopify/repository"
	shopifyService "github.com/allisson/deliverydash/internal/shopify/service"
	shopifyUseCase "github.com/allisson/deliverydash/internal/shopify/usecase"
	userHTTP "github.com/allisson/deliverydash/internal/user/http"
	userRepository "github.com/allisson/deliverydash/internal/user/repository"
	userUseCase "github.com/allisson/deliverydash/internal/user/usecase"
	"github.com/allisson/deliverydash/internal/widgetsync"
)

// TestMain sets Gin to test mode for all tests in this package.
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

type testEnv struct {
	router      http.Handler
	workerCalls *atomic.Int32
	workerFail  *atomic.Bool
}

// newTestEnv wires the real use cases over the in-memory store, a fake Shopify shop
// and a fake widget worker.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := discardLogger()

	shop := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Shopify-Access-Token") != "shpat_valid" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"shop":{"name":"My Store","myshopify_domain":"my-store.myshopify.com"}}`))
	}))
	t.Cleanup(shop.Close)

	env := &testEnv{workerCalls: &atomic.Int32{}, workerFail: &atomic.Bool{}}
	worker := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		env.workerCalls.Add(1)
		if env.workerFail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(worker.Close)

	cfg := &config.Config{
		AdminPassword:    "admin123",
		SessionTTL:       7 * 24 * time.Hour,
		CORSAllowOrigins: "*",
		MetricsNamespace: "test",
	}
	store := kvstore.NewMemoryStore()

	passwordService, err := authService.NewPasswordService(cfg.AdminPassword)
	require.NoError(t, err)
	authUC := authUseCase.NewAuthUseCase(cfg, authService.NewTokenService(), passwordService, logger)
	shopifyUC := shopifyUseCase.NewShopifyUseCase(
		shopifyRepository.NewSettingsRepository(store),
		shopifyService.PlainCipher{},
		shopifyService.NewAdminClientWithBaseURL(shop.Client(), shop.URL),
		"",
		logger,
	)
	userUC := userUseCase.NewUserUseCase(
		database.NoopTxManager{},
		userRepository.NewConfigRepository(store),
		widgetsync.NewHTTPPusher(worker.URL, worker.Client()),
		logger,
	)

	server := NewServer(nil, "localhost", 0, logger)
	server.SetupRouter(
		context.Background(),
		cfg,
		authHTTP.NewAuthHandler(authUC, logger),
		authUC,
		shopifyHTTP.NewShopifyHandler(shopifyUC, logger),
		userHTTP.NewUserHandler(userUC, logger),
		nil,
	)
	env.router = server.GetHandler()
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return w.Code, out
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	code, body := e.do(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, code)
	token, ok := body["token"].(string)
	require.True(t, ok)
	return token
}

func TestRouter_HealthEndpoint(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/health", "", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestRouter_ReadyEndpoint_Memory(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/ready", "", nil)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ready", body["status"])
}

func TestReadinessHandler_DatabaseDown(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()
	mock.ExpectPing().WillReturnError(assert.AnError)

	server := NewServer(db, "localhost", 0, discardLogger())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/ready", nil)

	server.readinessHandler(c)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.JSONEq(t, `{"status":"not_ready","components":{"database":"error"}}`, w.Body.String())
}

func TestRouter_NotFoundEndpoint(t *testing.T) {
	env := newTestEnv(t)

	code, body := env.do(t, http.MethodGet, "/nonexistent", "", nil)

	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["success"])
}

func TestRouter_AuthFlow(t *testing.T) {
	env := newTestEnv(t)

	t.Run("login rejects short usernames", func(t *testing.T) {
		code, body := env.do(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"username": "ab", "password": "admin123"})
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid username or password", body["error"])
	})

	t.Run("missing token", func(t *testing.T) {
		code, body := env.do(t, http.MethodGet, "/api/auth/info", "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "No token provided", body["error"])
	})

	t.Run("garbage token", func(t *testing.T) {
		code, body := env.do(t, http.MethodGet, "/api/auth/info", "not-base64!", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
		assert.Equal(t, "Invalid token", body["error"])
	})

	t.Run("info and username change", func(t *testing.T) {
		token := env.login(t)

		code, body := env.do(t, http.MethodGet, "/api/auth/info", token, nil)
		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, true, body["success"])

		code, body = env.do(t, http.MethodPost, "/api/auth/change-username", token,
			map[string]string{"password": "admin123", "newUsername": "admin"})
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "New username must be different", body["error"])

		code, body = env.do(t, http.MethodPost, "/api/auth/change-username", token,
			map[string]string{"password": "admin123", "newUsername": "manager"})
		require.Equal(t, http.StatusOK, code)
		assert.NotEqual(t, token, body["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		token := env.login(t)

		code, _ := env.do(t, http.MethodPost, "/api/auth/delete", token, map[string]string{"password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, code)
	})
}

func TestRouter_UserData(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	code, body := env.do(t, http.MethodGet, "/api/user/data", token, nil)
	require.Equal(t, http.StatusOK, code)
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{}, data["timeSlots"])

	code, _ = env.do(t, http.MethodPost, "/api/user/data", token, map[string]any{
		"timeSlots":    []map[string]any{{"startTime": "10:00", "endTime": "14:00", "name": "Morning"}},
		"blockedDates": []string{"2030-12-25"},
		"expressFee":   5,
	})
	require.Equal(t, http.StatusOK, code)

	code, body = env.do(t, http.MethodGet, "/api/user/data", token, nil)
	require.Equal(t, http.StatusOK, code)
	data = body["data"].(map[string]any)
	assert.Equal(t, float64(5), data["expressFee"])

	code, body = env.do(t, http.MethodPost, "/api/user/data", token, map[string]any{
		"blockedDates": []string{"25/12/2030"},
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body["error"], "blockedDates")

	code, body = env.do(t, http.MethodPost, "/api/user/migrate", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["migrated"])

	code, body = env.do(t, http.MethodGet, "/api/widget/delivery-data?user=admin", "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.NotEmpty(t, body["availableDates"])
	assert.Contains(t, body["sampleTags"], "10:00-14:00")
}

func TestRouter_Sync(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	code, _ := env.do(t, http.MethodPost, "/api/user/sync", token, nil)
	assert.Equal(t, http.StatusOK, code)

	env.workerFail.Store(true)
	code, body := env.do(t, http.MethodPost, "/api/user/sync", token, nil)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Widget sync failed", body["error"])
	assert.Equal(t, int32(2), env.workerCalls.Load())
}

func TestRouter_Shopify(t *testing.T) {
	env := newTestEnv(t)
	token := env.login(t)

	code, body := env.do(t, http.MethodGet, "/api/shopify/test-connection", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Shopify settings not configured", body["error"])

	code, body = env.do(t, http.MethodGet, "/api/shopify/settings", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["configured"])

	code, _ = env.do(t, http.MethodPost, "/api/shopify/settings", token, map[string]string{
		"shopDomain":  "https://my-store.myshopify.com",
		"accessToken": "shpat_valid",
	})
	require.Equal(t, http.StatusOK, code)

	code, body = env.do(t, http.MethodGet, "/api/shopify/settings", token, nil)
	require.Equal(t, http.StatusOK, code)
	settings := body["settings"].(map[string]any)
	assert.Equal(t, "my-store.myshopify.com", settings["shopDomain"])
	assert.Equal(t, "****alid", settings["accessToken"])

	code, body = env.do(t, http.MethodGet, "/api/shopify/test-connection", token, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "My Store", body["shop"].(map[string]any)["name"])
}

func TestRouter_RecoversFromPanic(t *testing.T) {
	router := gin.New()
	router.Use(RecoveryMiddleware(discardLogger()))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/panic", func(c *gin.Context) {
		panic("test panic")
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, w.Body.String())
}

// TestRequestIDMiddleware_HeaderPresent verifies X-Request-Id header is present in response.
func TestRequestIDMiddleware_HeaderPresent(t *testing.T) {
	router := gin.New()
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(discardLogger()))
	router.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "test"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	parsed, err := uuid.Parse(w.Header().Get("X-Request-Id"))
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, parsed)
}

func TestServer_ShutdownGracefully(t *testing.T) {
	server := NewServer(nil, "localhost", 0, discardLogger())
	server.router = gin.New()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start(context.Background())
	}()

	time.Sleep(100 * time.Millisecond)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(shutdownCtx))

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

// TestMetricsServer_Endpoints tests the metrics server endpoints.
func TestMetricsServer_Endpoints(t *testing.T) {
	provider, err := metrics.NewProvider("test_app")
	require.NoError(t, err)
	defer func() {
		assert.NoError(t, provider.Shutdown(context.Background()))
	}()

	metricsServer := NewMetricsServer("localhost", 8081, discardLogger(), provider)
	require.NotNil(t, metricsServer)

	w := httptest.NewRecorder()
	metricsServer.GetHandler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
}

func TestServer_NoMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)

	code, _ := env.do(t, http.MethodGet, "/metrics", "", nil)

	assert.Equal(t, http.StatusNotFound, code)
}
