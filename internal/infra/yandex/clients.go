package yandex

import (
	"github.com/artkolev/yandex-delivery/internal/config"
	"github.com/artkolev/yandex-delivery/internal/metrics"
)

// Clients bundles the three API clients sharing one Transport.
type Clients struct {
	Transport *Transport
	Geocoder  *GeocodingClient
	Pricing   *PricingClient
	Offers    *OfferClient
	Cache     *GeoCache
}

func NewFromConfig(cfg *config.Config, provider metrics.MetricsProvider) *Clients {
	transport := NewTransport(TransportConfig{
		Locale:             cfg.Delivery.Locale,
		Token:              cfg.Delivery.Token,
		Timeout:            cfg.HTTP.Timeout,
		InsecureSkipVerify: cfg.HTTP.InsecureSkipVerify,
		RateLimit:          cfg.HTTP.RateLimit,
		Burst:              cfg.HTTP.Burst,
		Tracing:            cfg.Gateway.Tracing,
	}, provider)

	var cache *GeoCache
	if cfg.Cache.Enabled {
		cache = NewGeoCache(GeoCacheConfig{MaxSize: cfg.Cache.MaxSize, TTL: cfg.Cache.TTL})
	}

	return &Clients{
		Transport: transport,
		Geocoder:  NewGeocodingClient(transport, cfg.Geocoder.BaseURL, cfg.Geocoder.Token, cache, provider),
		Pricing:   NewPricingClient(transport, cfg.Delivery.BaseURL),
		Offers:    NewOfferClient(transport, cfg.Delivery.BaseURL),
		Cache:     cache,
	}
}
