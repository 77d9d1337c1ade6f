package metrics

import "strconv"

type MetricsProvider interface {
	RequestDone(endpoint string, status int, seconds float64)
	ErrorRecorded(code string)
	GeocodeCacheLookup(hit bool, size int)
	GatewayRequest(route string, status int, seconds float64)
}

type PrometheusProvider struct{}

func NewPrometheusProvider() *PrometheusProvider {
	return &PrometheusProvider{}
}

// RequestDone records one outbound call. A status of 0 means the call never got a response.
func (p *PrometheusProvider) RequestDone(endpoint string, status int, seconds float64) {
	RequestsTotal.WithLabelValues(endpoint, statusLabel(status)).Inc()
	RequestDuration.WithLabelValues(endpoint).Observe(seconds)
}

func (p *PrometheusProvider) ErrorRecorded(code string) {
	ErrorsRecorded.WithLabelValues(code).Inc()
}

func (p *PrometheusProvider) GeocodeCacheLookup(hit bool, size int) {
	result := "miss"
	if hit {
		result = "hit"
	}
	GeocodeCacheHits.WithLabelValues(result).Inc()
	GeocodeCacheSize.Set(float64(size))
}

func (p *PrometheusProvider) GatewayRequest(route string, status int, seconds float64) {
	GatewayDuration.WithLabelValues(route, statusLabel(status)).Observe(seconds)
}

func statusLabel(status int) string {
	if status == 0 {
		return "error"
	}
	return strconv.Itoa(status)
}

type NoOpProvider struct{}

func NewNoOpProvider() *NoOpProvider {
	return &NoOpProvider{}
}

func (p *NoOpProvider) RequestDone(endpoint string, status int, seconds float64)  {}
func (p *NoOpProvider) ErrorRecorded(code string)                                 {}
func (p *NoOpProvider) GeocodeCacheLookup(hit bool, size int)                     {}
func (p *NoOpProvider) GatewayRequest(route string, status int, seconds float64) {}
