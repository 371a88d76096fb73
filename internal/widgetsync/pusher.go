// Package widgetsync pushes the delivery configuration to the worker that serves the
// storefront widget. The push is one-way and never retried; callers see the outcome.
package widgetsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/allisson/deliverydash/internal/delivery"
	apperrors "github.com/allisson/deliverydash/internal/errors"
)

// SyncPath is the worker endpoint receiving the configuration.
const SyncPath = "/api/sync/delivery-data"

var (
	// ErrSyncFailed indicates the worker was unreachable or answered non-2xx.
	ErrSyncFailed = apperrors.Public(apperrors.ErrUpstream, "Widget sync failed")

	// ErrNotConfigured indicates no worker URL is configured.
	ErrNotConfigured = apperrors.Public(apperrors.ErrUpstream, "Widget sync is not configured")
)

// Payload is the body sent to the worker.
type Payload struct {
	UserID string          `json:"userId,omitempty"`
	Config delivery.Config `json:"config"`
}

// Pusher sends a Payload to the widget worker.
type Pusher interface {
	Push(ctx context.Context, payload Payload) error
}

// HTTPPusher implements Pusher over HTTP.
type HTTPPusher struct {
	baseURL string
	client  *http.Client
}

// NewHTTPPusher creates an HTTPPusher for the worker at baseURL.
func NewHTTPPusher(baseURL string, client *http.Client) *HTTPPusher {
	return &HTTPPusher{baseURL: strings.TrimRight(baseURL, "/"), client: client}
}

// Push posts the full payload. Any transport error or non-2xx status is returned
// wrapping ErrSyncFailed.
func (p *HTTPPusher) Push(ctx context.Context, payload Payload) error {
	if p.baseURL == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return apperrors.Wrap(err, "failed to encode widget payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+SyncPath, bytes.NewReader(body))
	if err != nil {
		return apperrors.Wrap(err, "failed to build widget sync request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSyncFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: worker returned %d", ErrSyncFailed, resp.StatusCode)
	}
	return nil
}
