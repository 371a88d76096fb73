package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	shopifyDomain "github.com/allisson/deliverydash/internal/shopify/domain"
)

// AdminClient calls the Shopify Admin REST API. Only shop.json is used.
type AdminClient interface {
	Shop(ctx context.Context, settings *shopifyDomain.Settings) (*shopifyDomain.ShopInfo, error)
}

type adminClient struct {
	client  *http.Client
	baseURL func(shopDomain string) string
}

// NewAdminClient creates an AdminClient that talks to https://{shopDomain}.
func NewAdminClient(client *http.Client) AdminClient {
	return &adminClient{
		client:  client,
		baseURL: func(shopDomain string) string { return "https://" + shopDomain },
	}
}

// NewAdminClientWithBaseURL sends every request to baseURL regardless of shop domain.
func NewAdminClientWithBaseURL(client *http.Client, baseURL string) AdminClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &adminClient{
		client:  client,
		baseURL: func(string) string { return baseURL },
	}
}

func (a *adminClient) Shop(
	ctx context.Context,
	settings *shopifyDomain.Settings,
) (*shopifyDomain.ShopInfo, error) {
	url := fmt.Sprintf("%s/admin/api/%s/shop.json", a.baseURL(settings.ShopDomain), settings.APIVersion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build shopify request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", settings.AccessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shopifyDomain.ErrConnectionFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, fmt.Errorf("%w: shopify returned %d", shopifyDomain.ErrConnectionFailed, resp.StatusCode)
	}

	var body struct {
		Shop shopifyDomain.ShopInfo `json:"shop"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: invalid shop.json response: %v", shopifyDomain.ErrConnectionFailed, err)
	}
	return &body.Shop, nil
}
