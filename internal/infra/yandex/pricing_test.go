package yandex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artkolev/yandex-delivery/internal/domain"
)

var (
	moscow = domain.NewCoordinate(55.75, 37.61)
	tver   = domain.NewCoordinate(56.86, 35.9)
)

func TestBuildPriceRequest_CheckPrice(t *testing.T) {
	t.Parallel()

	path, body, err := BuildPriceRequest(domain.VariantCheckPrice, domain.PriceQuery{
		Quantity:  3,
		Sender:    moscow,
		Recipient: tver,
	})
	require.NoError(t, err)

	assert.Equal(t, checkPricePath, path)
	assert.JSONEq(t, `{
		"items": [{"quantity": 3}],
		"requirements": {"pro_courier": false, "taxi_class": "express"},
		"route_points": [
			{"coordinates": {"lat": 55.75, "lng": 37.61}},
			{"coordinates": {"lat": 56.86, "lng": 35.9}}
		],
		"skip_door_to_door": false
	}`, string(body))
}

func TestBuildPriceRequest_CheckPriceParsedPoints(t *testing.T) {
	t.Parallel()

	sender, ok := domain.ParseCoordinate("55.75,37.61")
	require.True(t, ok)
	recipient, ok := domain.ParseCoordinate("56.86,35.9")
	require.True(t, ok)

	_, body, err := BuildPriceRequest(domain.VariantCheckPrice, domain.PriceQuery{
		Quantity:  1,
		Sender:    sender,
		Recipient: recipient,
	})
	require.NoError(t, err)

	var got CheckPriceRequest
	require.NoError(t, json.Unmarshal(body, &got))
	require.Len(t, got.RoutePoints, 2)
	assert.Equal(t, LatLng{Lat: 55.75, Lng: 37.61}, got.RoutePoints[0].Coordinates)
	assert.Equal(t, LatLng{Lat: 56.86, Lng: 35.9}, got.RoutePoints[1].Coordinates)
	assert.NotContains(t, string(body), "[37.61")
}

func TestBuildPriceRequest_Calculator(t *testing.T) {
	t.Parallel()

	path, body, err := BuildPriceRequest(domain.VariantPricingCalculator, domain.PriceQuery{
		TotalWeight:        1200,
		SourceStationID:    "station-1",
		DestinationAddress: "Тверь, ул. Советская, 1",
		Tariff:             domain.TariffSelfPickup,
	})
	require.NoError(t, err)

	assert.Equal(t, pricingCalculatorPath, path)
	assert.JSONEq(t, `{
		"source": {"platform_station_id": "station-1"},
		"destination": {"address": "Тверь, ул. Советская, 1"},
		"tariff": "self_pickup",
		"total_weight": 1200
	}`, string(body))
}

func TestBuildPriceRequest_Preconditions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query domain.PriceQuery
	}{
		{"ZeroQuantity", domain.PriceQuery{Quantity: 0, Sender: moscow, Recipient: tver}},
		{"NoSender", domain.PriceQuery{Quantity: 1, Recipient: tver}},
		{"NoRecipient", domain.PriceQuery{Quantity: 1, Sender: moscow}},
	}
	for _, tt := range tests {
		tt := tt
		_, _, err := BuildPriceRequest(domain.VariantCheckPrice, tt.query)
		assert.ErrorIs(t, err, ErrPreconditionFailed, tt.name)
	}

	_, _, err := BuildPriceRequest(domain.PriceVariant(9), domain.PriceQuery{})
	assert.Error(t, err)
}

func pricingServer(t *testing.T, wantPath, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+wantPath, r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		assert.True(t, json.Valid(raw))
		_, _ = w.Write([]byte(body))
	}))
}

func TestPricingClient_CheckPrice(t *testing.T) {
	t.Parallel()

	query := domain.PriceQuery{Quantity: 1, Sender: moscow, Recipient: tver}

	tests := []struct {
		name    string
		body    string
		want    domain.PriceQuote
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "Full",
			body:    `{"price": "512.40", "currency_rules": {"code": "RUB"}, "distance_meters": 167000.5, "eta": 180}`,
			want:    domain.PriceQuote{Price: 512.4, Currency: "RUB", DistanceMeters: 167000.5, ETA: 180},
			wantErr: assert.NoError,
		},
		{
			name:    "NumericPrice",
			body:    `{"price": 99}`,
			want:    domain.PriceQuote{Price: 99},
			wantErr: assert.NoError,
		},
		{
			name: "Empty",
			body: ``,
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrEmptyResponse)
			},
		},
		{
			name: "NoPrice",
			body: `{"code": "not_found"}`,
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrPathNotFound)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := pricingServer(t, checkPricePath, tt.body)
			defer srv.Close()

			client := NewPricingClient(testTransport(t), srv.URL+"/")
			got, err := client.CheckPrice(context.Background(), query)
			tt.wantErr(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPricingClient_CheckPrice_PreconditionSkipsNetwork(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent")
	}))
	defer srv.Close()

	client := NewPricingClient(testTransport(t), srv.URL+"/")
	_, err := client.CheckPrice(context.Background(), domain.PriceQuery{Quantity: 1, Sender: moscow})
	assert.ErrorIs(t, err, ErrPreconditionFailed)
}

func TestPricingClient_CalculatePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    float64
		wantErr assert.ErrorAssertionFunc
	}{
		{
			name:    "Total",
			body:    `{"pricing_total": "195.5 RUB", "delivery_days": 2}`,
			want:    195.5,
			wantErr: assert.NoError,
		},
		{
			name:    "NumericTotal",
			body:    `{"pricing_total": 300}`,
			want:    300,
			wantErr: assert.NoError,
		},
		{
			name: "ErrorDetailsWins",
			body: `{"pricing_total": "100 RUB", "error_details": ["station not found"]}`,
			want: 0,
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrProviderRejected) &&
					assert.Contains(t, err.Error(), "station not found")
			},
		},
		{
			name: "NoTotal",
			body: `{"message": "ok"}`,
			wantErr: func(t assert.TestingT, err error, _ ...interface{}) bool {
				return assert.ErrorIs(t, err, ErrPathNotFound)
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := pricingServer(t, pricingCalculatorPath, tt.body)
			defer srv.Close()

			client := NewPricingClient(testTransport(t), srv.URL+"/")
			got, err := client.CalculatePrice(context.Background(), domain.PriceQuery{
				TotalWeight:        500,
				SourceStationID:    "s",
				DestinationAddress: "a",
				Tariff:             domain.TariffTimeInterval,
			})
			tt.wantErr(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}
