package yandex

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

const (
	checkPricePath        = "b2b/cargo/integration/v1/check-price"
	pricingCalculatorPath = "b2b/platform/pricing-calculator"
)

type CheckPriceRequest struct {
	Items          []CheckPriceItem `json:"items"`
	Requirements   Requirements     `json:"requirements"`
	RoutePoints    []RoutePoint     `json:"route_points"`
	SkipDoorToDoor bool             `json:"skip_door_to_door"`
}

type CheckPriceItem struct {
	Quantity int `json:"quantity"`
}

type Requirements struct {
	ProCourier bool   `json:"pro_courier"`
	TaxiClass  string `json:"taxi_class"`
}

type RoutePoint struct {
	Coordinates LatLng `json:"coordinates"`
}

// LatLng is the point shape check-price expects, unlike the [lon, lat]
// arrays of the platform API.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func latLng(c domain.Coordinate) LatLng {
	return LatLng{Lat: c.Latitude, Lng: c.Longitude}
}

type CalculatorRequest struct {
	Source      CalculatorSource      `json:"source"`
	Destination CalculatorDestination `json:"destination"`
	Tariff      domain.Tariff         `json:"tariff"`
	TotalWeight int64                 `json:"total_weight"`
}

type CalculatorSource struct {
	PlatformStationID string `json:"platform_station_id"`
}

type CalculatorDestination struct {
	Address string `json:"address"`
}

// priceBuilder turns a query into the endpoint path and request body of one variant.
type priceBuilder func(q domain.PriceQuery) (string, any, error)

var priceBuilders = map[domain.PriceVariant]priceBuilder{
	domain.VariantCheckPrice:        buildCheckPrice,
	domain.VariantPricingCalculator: buildCalculator,
}

func buildCheckPrice(q domain.PriceQuery) (string, any, error) {
	if q.Quantity <= 0 || q.Sender.IsEmpty() || q.Recipient.IsEmpty() {
		return "", nil, ErrPreconditionFailed
	}

	return checkPricePath, CheckPriceRequest{
		Items: []CheckPriceItem{{Quantity: q.Quantity}},
		Requirements: Requirements{
			ProCourier: false,
			TaxiClass:  "express",
		},
		RoutePoints: []RoutePoint{
			{Coordinates: latLng(q.Sender)},
			{Coordinates: latLng(q.Recipient)},
		},
		SkipDoorToDoor: false,
	}, nil
}

func buildCalculator(q domain.PriceQuery) (string, any, error) {
	return pricingCalculatorPath, CalculatorRequest{
		Source:      CalculatorSource{PlatformStationID: q.SourceStationID},
		Destination: CalculatorDestination{Address: q.DestinationAddress},
		Tariff:      q.Tariff,
		TotalWeight: q.TotalWeight,
	}, nil
}

// BuildPriceRequest returns the path and JSON body for the chosen variant.
func BuildPriceRequest(variant domain.PriceVariant, q domain.PriceQuery) (string, []byte, error) {
	build, ok := priceBuilders[variant]
	if !ok {
		return "", nil, fmt.Errorf("unknown price variant %s", variant)
	}

	path, body, err := build(q)
	if err != nil {
		return "", nil, err
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", nil, errors.Wrap(err, "marshal price request")
	}
	return path, data, nil
}

type PricingClient struct {
	transport *Transport
	baseURL   string
}

func NewPricingClient(transport *Transport, baseURL string) *PricingClient {
	return &PricingClient{transport: transport, baseURL: baseURL}
}

// Price posts the variant's payload and returns the decoded response as is.
func (p *PricingClient) Price(ctx context.Context, variant domain.PriceVariant, q domain.PriceQuery) (map[string]any, error) {
	path, body, err := BuildPriceRequest(variant, q)
	if err != nil {
		return nil, err
	}
	return p.transport.Post(ctx, variant.String(), p.baseURL+path, body)
}

func (p *PricingClient) CheckPrice(ctx context.Context, q domain.PriceQuery) (domain.PriceQuote, error) {
	resp, err := p.Price(ctx, domain.VariantCheckPrice, q)
	if err != nil {
		return domain.PriceQuote{}, errors.Wrap(err, "check price")
	}
	if len(resp) == 0 {
		return domain.PriceQuote{}, ErrEmptyResponse
	}

	raw, ok := lookup(resp, "price")
	if !ok {
		return domain.PriceQuote{}, errors.Wrap(ErrPathNotFound, "price")
	}
	price, ok := toF64(raw)
	if !ok {
		return domain.PriceQuote{}, errors.Errorf("check price: unparsable price %v", raw)
	}

	quote := domain.PriceQuote{Price: price}
	quote.Currency, _ = lookupString(resp, "currency_rules", "code")
	if d, ok := lookup(resp, "distance_meters"); ok {
		quote.DistanceMeters, _ = toF64(d)
	}
	if eta, ok := lookup(resp, "eta"); ok {
		quote.ETA = toInt64(eta)
	}
	return quote, nil
}

// CalculatePrice returns pricing_total. A response carrying error_details is
// a provider rejection even when pricing_total is present too.
func (p *PricingClient) CalculatePrice(ctx context.Context, q domain.PriceQuery) (float64, error) {
	resp, err := p.Price(ctx, domain.VariantPricingCalculator, q)
	if err != nil {
		return 0, errors.Wrap(err, "calculate price")
	}

	if details, ok := resp["error_details"]; ok {
		return 0, errors.Wrapf(ErrProviderRejected, "%v", details)
	}

	raw, ok := lookup(resp, "pricing_total")
	if !ok {
		return 0, errors.Wrap(ErrPathNotFound, "pricing_total")
	}
	total, ok := toF64(raw)
	if !ok {
		return 0, errors.Errorf("calculate price: unparsable pricing_total %v", raw)
	}
	return total, nil
}
