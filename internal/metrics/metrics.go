package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yandex_delivery_requests_total",
		Help: "Outbound Yandex API calls by endpoint and response status",
	}, []string{"endpoint", "status"})

	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yandex_delivery_request_duration_seconds",
		Help:    "Duration of outbound Yandex API calls in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	ErrorsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yandex_delivery_errors_recorded_total",
		Help: "Error codes recorded into the facade error bag",
	}, []string{"code"})

	GeocodeCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yandex_delivery_geocode_cache_total",
		Help: "Geocode cache lookups by result",
	}, []string{"result"})

	GeocodeCacheSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "yandex_delivery_geocode_cache_size",
		Help: "Current number of cached geocode results",
	})

	GatewayDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yandex_delivery_gateway_duration_seconds",
		Help:    "Duration of gateway HTTP handlers in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "status"})
)
