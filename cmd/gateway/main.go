package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/artkolev/yandex-delivery/internal/adapter/rest"
	"github.com/artkolev/yandex-delivery/internal/app"
	"github.com/artkolev/yandex-delivery/internal/config"
	"github.com/artkolev/yandex-delivery/internal/infra"
	"github.com/artkolev/yandex-delivery/internal/infra/yandex"
	"github.com/artkolev/yandex-delivery/internal/metrics"
	"github.com/artkolev/yandex-delivery/internal/tracing"
)

const defaultConfigPath = "config/config.yaml"

var version = "dev"

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load(configPath())
	if err != nil {
		slog.Error("Config load failed", "error", err)
		os.Exit(1)
	}
	setupLogger(cfg.Delivery.Debug)

	shutdownTracing := func(context.Context) {}
	if cfg.Gateway.Tracing {
		shutdownTracing = tracing.Init(context.Background(), tracing.ServiceName, version)
	}

	provider := metrics.NewPrometheusProvider()
	clients := yandex.NewFromConfig(cfg, provider)
	service := app.NewDeliveryService(app.SettingsFromConfig(cfg), clients.Geocoder, clients.Pricing, clients.Offers, provider)
	if !service.Enabled() {
		slog.Warn("Delivery integration is disabled, every operation returns its sentinel")
	}

	var cacheManager infra.CacheManager
	if clients.Cache != nil {
		cacheManager = clients.Cache
		go func() {
			ticker := time.NewTicker(cfg.Cache.CleanupInterval)
			defer ticker.Stop()

			for range ticker.C {
				clients.Cache.CleanupExpired()
				stats := clients.Cache.Stats()
				metrics.GeocodeCacheSize.Set(float64(stats["size"]))
				slog.Debug("Geocode cache cleanup completed", "stats", stats)
			}
		}()

		slog.Info("Geocode cache enabled",
			"max_size", cfg.Cache.MaxSize,
			"ttl", cfg.Cache.TTL,
			"cleanup_interval", cfg.Cache.CleanupInterval)
	} else {
		slog.Info("Geocode cache disabled")
	}

	router, err := rest.NewRouter(rest.NewHandler(service), rest.RouterConfig{
		RateLimit: cfg.Gateway.RateLimit,
		Tracing:   cfg.Gateway.Tracing,
	}, provider)
	if err != nil {
		slog.Error("Router setup failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.Gateway.Address,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("HTTP gateway listening", "addr", cfg.Gateway.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP gateway serve error", "error", err)
			os.Exit(1)
		}
	}()

	admin := infra.NewAdmin(cfg.Gateway.MetricsAddress, cacheManager)
	admin.Start()
	slog.Info("admin HTTP listening", "addr", cfg.Gateway.MetricsAddress)

	// curl -XGET 'http://localhost:9090/metrics'
	// curl -XGET 'http://localhost:9090/cache/stats'
	// curl -XPOST 'http://localhost:9090/cache/clear'

	infra.Graceful(
		func(ctx context.Context) {
			if err := srv.Shutdown(ctx); err != nil {
				slog.Error("HTTP gateway shutdown error", "error", err)
			}
		},
		admin.Shutdown,
		shutdownTracing,
	)
}

// configPath prefers CONFIG_PATH, then the bundled yaml; with neither the
// configuration comes from the environment alone.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat(defaultConfigPath); err == nil {
		return defaultConfigPath
	}
	return ""
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
