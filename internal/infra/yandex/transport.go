// Package yandex talks to the Yandex Delivery B2B API and the Yandex Geocoder.
//
// Every call goes through Transport, which owns headers, TLS settings, the
// optional client-side rate limit, logging and metrics. Clients build request
// bodies and reshape the decoded JSON; they return plain errors and leave the
// sentinel contract to the caller.
package yandex

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"github.com/artkolev/yandex-delivery/internal/metrics"
)

var (
	ErrEmptyRequest       = errors.New("empty request body or url")
	ErrEmptyResponse      = errors.New("empty response")
	ErrPreconditionFailed = errors.New("precondition not met")
	ErrProviderRejected   = errors.New("rejected by provider")
	ErrPathNotFound       = errors.New("path not found in response")
)

const (
	EndpointCheckPrice        = "check_price"
	EndpointPricingCalculator = "pricing_calculator"
	EndpointOffersCreate      = "offers_create"
	EndpointGeocode           = "geocode"
)

// HTTPClient lets tests swap the network; *http.Client satisfies it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type TransportConfig struct {
	Locale             string
	Token              string
	Timeout            time.Duration
	InsecureSkipVerify bool
	// RateLimit is requests per second; zero disables client-side limiting.
	RateLimit float64
	Burst     int
	Tracing   bool
}

type Transport struct {
	config  TransportConfig
	client  HTTPClient
	limiter *rate.Limiter
	metrics metrics.MetricsProvider
}

func NewTransport(config TransportConfig, provider metrics.MetricsProvider) *Transport {
	base := http.DefaultTransport.(*http.Transport).Clone()
	if config.InsecureSkipVerify {
		slog.Warn("TLS certificate verification is disabled for Yandex API calls")
		base.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // explicit opt-in
	}

	var rt http.RoundTripper = base
	if config.Tracing {
		rt = otelhttp.NewTransport(base)
	}

	return NewTransportWithClient(config, &http.Client{
		Timeout:   config.Timeout,
		Transport: rt,
	}, provider)
}

func NewTransportWithClient(config TransportConfig, client HTTPClient, provider metrics.MetricsProvider) *Transport {
	if provider == nil {
		provider = metrics.NewNoOpProvider()
	}

	var limiter *rate.Limiter
	if config.RateLimit > 0 {
		burst := config.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(config.RateLimit), burst)
	}

	return &Transport{
		config:  config,
		client:  client,
		limiter: limiter,
		metrics: provider,
	}
}

// Post sends a JSON body with the delivery API headers. The decoded body is
// returned whatever the HTTP status; an empty body decodes to an empty map.
func (t *Transport) Post(ctx context.Context, endpoint, url string, body []byte) (map[string]any, error) {
	if len(body) == 0 || url == "" {
		return nil, ErrEmptyRequest
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	req.Header.Set("Accept-Language", t.config.Locale)
	req.Header.Set("Authorization", "Bearer "+t.config.Token)
	req.Header.Set("Content-Type", "application/json")

	return t.do(ctx, endpoint, req)
}

// Get issues a bare GET; geocoder calls carry no delivery auth header.
func (t *Transport) Get(ctx context.Context, endpoint, url string) (map[string]any, error) {
	if url == "" {
		return nil, ErrEmptyRequest
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "create request")
	}

	return t.do(ctx, endpoint, req)
}

func (t *Transport) do(ctx context.Context, endpoint string, req *http.Request) (map[string]any, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "rate limiter wait")
		}
	}

	requestID := uuid.NewString()
	start := time.Now()

	resp, err := t.client.Do(req)
	if err != nil {
		t.metrics.RequestDone(endpoint, 0, time.Since(start).Seconds())
		slog.Debug("yandex request failed",
			"request_id", requestID,
			"endpoint", endpoint,
			"error", err)
		return nil, errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	duration := time.Since(start)
	t.metrics.RequestDone(endpoint, resp.StatusCode, duration.Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}

	slog.Debug("yandex request done",
		"request_id", requestID,
		"endpoint", endpoint,
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration", duration)
	if resp.StatusCode >= http.StatusBadRequest {
		slog.Warn("yandex api returned error status",
			"request_id", requestID,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"body", truncate(raw, 512))
	}

	return decodeObject(raw)
}

func decodeObject(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, errors.Wrap(err, "decode response")
	}
	if out == nil {
		out = map[string]any{}
	}
	return out, nil
}

func truncate(raw []byte, n int) string {
	if len(raw) <= n {
		return string(raw)
	}
	return string(raw[:n]) + "..."
}
