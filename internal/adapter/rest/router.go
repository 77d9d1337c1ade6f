package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/ulule/limiter/v3"
	limiterhttp "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/artkolev/yandex-delivery/internal/metrics"
)

type RouterConfig struct {
	// RateLimit uses the limiter format, e.g. "100-M"; empty disables limiting.
	RateLimit string
	Tracing   bool
}

func NewRouter(h *Handler, cfg RouterConfig, provider metrics.MetricsProvider) (http.Handler, error) {
	if provider == nil {
		provider = metrics.NewNoOpProvider()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(Observe(provider))
	r.Use(middleware.Recoverer)

	if cfg.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
		if err != nil {
			return nil, errors.Wrapf(err, "parse rate limit %q", cfg.RateLimit)
		}
		r.Use(limiterhttp.NewMiddleware(limiter.New(memory.NewStore(), rate)).Handler)
	}

	r.Get("/healthz", h.Health())
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/geocode", h.Geocode())
		r.Post("/check-price", h.CheckPrice())
		r.Post("/calculate-price", h.CalculatePrice())
		r.Post("/offers", h.CreateOffer())
		r.Post("/notifications", h.RecordNotification())
		r.Get("/log", h.Log())
	})

	if cfg.Tracing {
		return otelhttp.NewHandler(r, "yandex-delivery-gateway"), nil
	}
	return r, nil
}
