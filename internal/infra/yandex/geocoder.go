package yandex

import (
	"context"
	"fmt"
	"net/url"

	"github.com/pkg/errors"

	"github.com/artkolev/yandex-delivery/internal/domain"
	"github.com/artkolev/yandex-delivery/internal/metrics"
)

type GeocodingClient struct {
	transport *Transport
	baseURL   string
	apiKey    string
	cache     *GeoCache
	metrics   metrics.MetricsProvider
}

// NewGeocodingClient builds a geocoder client; cache may be nil.
func NewGeocodingClient(transport *Transport, baseURL, apiKey string, cache *GeoCache, provider metrics.MetricsProvider) *GeocodingClient {
	if provider == nil {
		provider = metrics.NewNoOpProvider()
	}
	return &GeocodingClient{
		transport: transport,
		baseURL:   baseURL,
		apiKey:    apiKey,
		cache:     cache,
		metrics:   provider,
	}
}

func (g *GeocodingClient) requestURL(address string) string {
	return fmt.Sprintf("%s?apikey=%s&format=json&geocode=%s", g.baseURL, url.QueryEscape(g.apiKey), url.QueryEscape(address))
}

// ResolveAddress returns the first geocoder hit for a free-text address.
func (g *GeocodingClient) ResolveAddress(ctx context.Context, address string) (domain.Coordinate, error) {
	if address == "" {
		return domain.Coordinate{}, ErrEmptyRequest
	}

	if g.cache != nil {
		point, hit := g.cache.Get(address)
		g.metrics.GeocodeCacheLookup(hit, g.cache.Len())
		if hit {
			return point, nil
		}
	}

	resp, err := g.transport.Get(ctx, EndpointGeocode, g.requestURL(address))
	if err != nil {
		return domain.Coordinate{}, errors.Wrap(err, "geocode")
	}

	point, err := extractPoint(resp)
	if err != nil {
		return domain.Coordinate{}, err
	}

	if g.cache != nil {
		g.cache.Set(address, point)
	}
	return point, nil
}

func extractPoint(resp map[string]any) (domain.Coordinate, error) {
	pos, ok := lookupString(resp, "response", "GeoObjectCollection", "featureMember", 0, "GeoObject", "Point", "pos")
	if !ok {
		return domain.Coordinate{}, errors.Wrap(ErrPathNotFound, "featureMember[0].GeoObject.Point.pos")
	}

	point, ok := domain.ParsePos(pos)
	if !ok {
		return domain.Coordinate{}, errors.Wrapf(ErrPathNotFound, "unparsable pos %q", pos)
	}
	return point, nil
}
