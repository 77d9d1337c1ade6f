package app

import (
	"context"
	"log/slog"
	"maps"
	"sync"
	"time"

	"github.com/artkolev/yandex-delivery/internal/config"
	"github.com/artkolev/yandex-delivery/internal/domain"
	"github.com/artkolev/yandex-delivery/internal/metrics"
)

type Geocoder interface {
	ResolveAddress(ctx context.Context, address string) (domain.Coordinate, error)
}

type Pricer interface {
	CheckPrice(ctx context.Context, q domain.PriceQuery) (domain.PriceQuote, error)
	CalculatePrice(ctx context.Context, q domain.PriceQuery) (float64, error)
}

type OfferCreator interface {
	CreateOffer(ctx context.Context, req domain.OfferRequest) (map[string]any, error)
}

// Settings is the read-only part of the configuration the service needs.
type Settings struct {
	Enabled          bool
	Debug            bool
	Timeout          time.Duration
	GeocodeWorkers   int
	SourcePlatformID string
	DefaultPlace     domain.Place
}

func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Enabled:          cfg.Enabled(),
		Debug:            cfg.Delivery.Debug,
		Timeout:          cfg.HTTP.Timeout,
		GeocodeWorkers:   cfg.Geocoder.Workers,
		SourcePlatformID: cfg.Offer.SourcePlatformID,
		DefaultPlace: domain.Place{
			WeightGross: cfg.Offer.DefaultPlace.WeightGross,
			DX:          cfg.Offer.DefaultPlace.DX,
			DY:          cfg.Offer.DefaultPlace.DY,
			DZ:          cfg.Offer.DefaultPlace.DZ,
		},
	}
}

// DeliveryService is the single entry point of the integration. It never
// returns transport or decode errors to the caller: failures come back as
// empty values and land in the error bag and the log.
type DeliveryService struct {
	geocoder Geocoder
	pricer   Pricer
	offers   OfferCreator
	settings Settings
	metrics  metrics.MetricsProvider
	now      func() time.Time

	mu   sync.Mutex
	log  []string
	errs map[domain.ErrorCode]string
}

func NewDeliveryService(settings Settings, geocoder Geocoder, pricer Pricer, offers OfferCreator, provider metrics.MetricsProvider) *DeliveryService {
	if provider == nil {
		provider = metrics.NewNoOpProvider()
	}
	if settings.GeocodeWorkers <= 0 {
		settings.GeocodeWorkers = config.DefaultGeocodeWorkers
	}

	return &DeliveryService{
		geocoder: geocoder,
		pricer:   pricer,
		offers:   offers,
		settings: settings,
		metrics:  provider,
		now:      time.Now,
		errs:     make(map[domain.ErrorCode]string),
	}
}

func (s *DeliveryService) Enabled() bool {
	return s.settings.Enabled
}

// RecordError upserts code into the error bag.
func (s *DeliveryService) RecordError(code domain.ErrorCode) {
	s.mu.Lock()
	s.errs[code] = string(code)
	s.mu.Unlock()

	s.metrics.ErrorRecorded(string(code))
}

// RecordNotification appends a pending SMS line to the log. It does nothing
// unless debug mode is on; a zero at means now.
func (s *DeliveryService) RecordNotification(phone, message string, at time.Time) bool {
	if !s.settings.Debug {
		return false
	}
	if at.IsZero() {
		at = s.now()
	}

	line := formatNotification(at, phone, message)

	s.mu.Lock()
	s.log = append(s.log, line)
	s.mu.Unlock()
	return true
}

// Log returns a copy of the notification log in insertion order.
func (s *DeliveryService) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, len(s.log))
	copy(out, s.log)
	return out
}

// Errors returns a copy of the error bag.
func (s *DeliveryService) Errors() map[domain.ErrorCode]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return maps.Clone(s.errs)
}

// absorb turns an internal failure into a recorded code plus a warning line.
// The code also goes to the call's ErrorTrace when ctx carries one.
func (s *DeliveryService) absorb(ctx context.Context, op string, code domain.ErrorCode, err error) {
	slog.Warn("yandex delivery call failed",
		"op", op,
		"code", code,
		"error", err)
	s.RecordError(code)
	domain.TraceError(ctx, code)
}
