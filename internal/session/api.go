package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	authDomain "github.com/allisson/deliverydash/internal/auth/domain"
	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// LoginResult is the successful answer of the login endpoint.
type LoginResult struct {
	Token string
	User  authDomain.User
}

// AuthAPI is the backend as seen by AuthContext.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error

	// Call performs an authenticated JSON request. in may be nil; out receives the
	// whole success envelope when non-nil.
	Call(ctx context.Context, method, path, token string, in, out any) error
}

// APIError is a non-2xx answer from the dashboard API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("dashboard api returned %d", e.StatusCode)
	}
	return fmt.Sprintf("dashboard api returned %d: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status code to the shared error kinds.
func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusBadRequest:
		return apperrors.ErrInvalidInput
	case http.StatusUnauthorized:
		return apperrors.ErrUnauthorized
	case http.StatusNotFound:
		return apperrors.ErrNotFound
	case http.StatusBadGateway:
		return apperrors.ErrUpstream
	default:
		return nil
	}
}

// HTTPAuthAPI talks to the dashboard backend over HTTP.
type HTTPAuthAPI struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAuthAPI creates an HTTPAuthAPI for the backend at baseURL.
func NewHTTPAuthAPI(baseURL string, client *http.Client) *HTTPAuthAPI {
	return &HTTPAuthAPI{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

type envelope struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Token   string          `json:"token"`
	User    authDomain.User `json:"user"`
}

func (a *HTTPAuthAPI) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	var env envelope
	body := map[string]string{"username": username, "password": password}
	if err := a.Call(ctx, http.MethodPost, "/api/auth/login", "", body, &env); err != nil {
		return nil, err
	}
	if env.Token == "" {
		return nil, apperrors.New("login response did not include a token")
	}
	return &LoginResult{Token: env.Token, User: env.User}, nil
}

func (a *HTTPAuthAPI) Logout(ctx context.Context, token string) error {
	return a.Call(ctx, http.MethodPost, "/api/auth/logout", token, nil, nil)
}

func (a *HTTPAuthAPI) Call(ctx context.Context, method, path, token string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return apperrors.Wrap(err, "failed to encode request")
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return apperrors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return apperrors.Wrap(err, "dashboard api request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return apperrors.Wrap(err, "failed to read dashboard api response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var env envelope
		_ = json.Unmarshal(raw, &env)
		return &APIError{StatusCode: resp.StatusCode, Message: env.Error}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return apperrors.Wrap(err, "failed to decode dashboard api response")
		}
	}
	return nil
}
