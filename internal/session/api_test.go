package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/allisson/deliverydash/internal/errors"
)

func TestHTTPAuthAPI_Login(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		w.Header().Set("Content-Type", "application/json")
		if body["password"] != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"success":false,"error":"Invalid username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":true,"token":"tok","user":{"username":"admin"}}`))
	}))
	defer server.Close()

	api := NewHTTPAuthAPI(server.URL+"/", server.Client())

	t.Run("success", func(t *testing.T) {
		result, err := api.Login(context.Background(), "admin", "admin123")
		require.NoError(t, err)
		assert.Equal(t, "tok", result.Token)
		assert.Equal(t, "admin", result.User.Username)
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := api.Login(context.Background(), "admin", "nope")
		require.Error(t, err)
		assert.True(t, apperrors.Is(err, apperrors.ErrUnauthorized))

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Invalid username or password", apiErr.Message)
	})
}

func TestHTTPAuthAPI_Call(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/user/data":
			assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
			_, _ = w.Write([]byte(`{"success":true,"data":{"expressFee":5}}`))
		case "/api/user/sync":
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"success":false,"error":"Widget sync failed"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	api := NewHTTPAuthAPI(server.URL, server.Client())

	var out struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, api.Call(context.Background(), http.MethodGet, "/api/user/data", "tok", nil, &out))
	assert.Equal(t, float64(5), out.Data["expressFee"])

	err := api.Call(context.Background(), http.MethodPost, "/api/user/sync", "tok", map[string]any{}, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
	assert.Contains(t, err.Error(), "Widget sync failed")

	err = api.Call(context.Background(), http.MethodGet, "/missing", "tok", nil, nil)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
}

func TestHTTPAuthAPI_Logout(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"success":true,"message":"Logged out"}`))
	}))
	defer server.Close()

	api := NewHTTPAuthAPI(server.URL, server.Client())
	require.NoError(t, api.Logout(context.Background(), "tok"))
	assert.Equal(t, "Bearer tok", gotAuth)
}
