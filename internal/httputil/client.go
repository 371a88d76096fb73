package httputil

import (
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/metric"
)

// NewHTTPClient returns a client for outbound calls (Shopify, widget worker, dashboard
// API) whose transport records otelhttp client metrics on meterProvider. A nil
// meterProvider falls back to the global one.
func NewHTTPClient(timeout time.Duration, meterProvider metric.MeterProvider) *http.Client {
	var opts []otelhttp.Option
	if meterProvider != nil {
		opts = append(opts, otelhttp.WithMeterProvider(meterProvider))
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport, opts...),
	}
}
