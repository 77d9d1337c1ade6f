package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

const (
	DefaultLocale         = "ru_RU"
	DefaultGeocoderURL    = "https://geocode-maps.yandex.ru/1.x/"
	DefaultTimeout        = 10 * time.Second
	DefaultCacheSize      = 1000
	DefaultCacheTTL       = 24 * time.Hour
	DefaultCacheCleanup   = 10 * time.Minute
	DefaultGeocodeWorkers = 4
)

type Config struct {
	Delivery struct {
		On      int    `yaml:"on" env:"YANDEX_DELIVERY_ON"`
		BaseURL string `yaml:"base_url" env:"YANDEX_DELIVERY_URL"`
		Token   string `yaml:"-" env:"YANDEX_DELIVERY_TOKEN"`
		Locale  string `yaml:"locale" env:"YANDEX_DELIVERY_LOCALE"`
		Debug   bool   `yaml:"debug" env:"YANDEX_DELIVERY_DEBUG"`
	} `yaml:"delivery"`

	Geocoder struct {
		BaseURL string `yaml:"base_url"`
		Token   string `yaml:"-" env:"YANDEX_GEOCODER_TOKEN"`
		Workers int    `yaml:"workers"`
	} `yaml:"geocoder"`

	HTTP struct {
		Timeout            time.Duration `yaml:"timeout"`
		InsecureSkipVerify bool          `yaml:"insecure_skip_verify" env:"YANDEX_DELIVERY_INSECURE_TLS"`
		RateLimit          float64       `yaml:"rate_limit"`
		Burst              int           `yaml:"burst"`
	} `yaml:"http"`

	Cache struct {
		Enabled         bool          `yaml:"enabled" env:"YANDEX_GEOCODE_CACHE"`
		MaxSize         int           `yaml:"max_size"`
		TTL             time.Duration `yaml:"ttl"`
		CleanupInterval time.Duration `yaml:"cleanup_interval"`
	} `yaml:"cache"`

	Offer struct {
		SourcePlatformID string `yaml:"source_platform_id" env:"YANDEX_SOURCE_PLATFORM_ID"`
		DefaultPlace     struct {
			WeightGross int64 `yaml:"weight_gross"`
			DX          int64 `yaml:"dx"`
			DY          int64 `yaml:"dy"`
			DZ          int64 `yaml:"dz"`
		} `yaml:"default_place"`
	} `yaml:"offer"`

	Gateway struct {
		Address        string `yaml:"address" env:"GATEWAY_ADDRESS"`
		MetricsAddress string `yaml:"metrics_address"`
		RateLimit      string `yaml:"rate_limit"`
		Tracing        bool   `yaml:"tracing" env:"GATEWAY_TRACING"`
	} `yaml:"gateway"`
}

// Enabled reports the YANDEX_DELIVERY_ON feature flag; any non-zero value is on.
func (c *Config) Enabled() bool {
	return c.Delivery.On != 0
}

// Load reads the yaml file at path (skipped when path is empty), overlays the
// environment, fills defaults and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "read yaml")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "parse yaml")
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "validate")
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Delivery.Locale == "" {
		c.Delivery.Locale = DefaultLocale
	}
	if c.Delivery.BaseURL != "" && !strings.HasSuffix(c.Delivery.BaseURL, "/") {
		c.Delivery.BaseURL += "/"
	}
	if c.Geocoder.BaseURL == "" {
		c.Geocoder.BaseURL = DefaultGeocoderURL
	}
	if c.Geocoder.Workers <= 0 {
		c.Geocoder.Workers = DefaultGeocodeWorkers
	}
	if c.HTTP.Timeout == 0 {
		c.HTTP.Timeout = DefaultTimeout
	}
	if c.HTTP.RateLimit > 0 && c.HTTP.Burst <= 0 {
		c.HTTP.Burst = 1
	}
	if c.Cache.MaxSize <= 0 {
		c.Cache.MaxSize = DefaultCacheSize
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.CleanupInterval <= 0 {
		c.Cache.CleanupInterval = DefaultCacheCleanup
	}
	if c.Gateway.Address == "" {
		c.Gateway.Address = ":8080"
	}
	if c.Gateway.MetricsAddress == "" {
		c.Gateway.MetricsAddress = ":9090"
	}
	if c.Gateway.RateLimit == "" {
		c.Gateway.RateLimit = "100-M"
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var combinedErr error

	if c.Delivery.Token == "" {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("YANDEX_DELIVERY_TOKEN is required"))
	}
	if c.Delivery.BaseURL == "" {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("YANDEX_DELIVERY_URL is required"))
	} else if u, err := url.Parse(c.Delivery.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("YANDEX_DELIVERY_URL %q is not an absolute url", c.Delivery.BaseURL))
	}
	if c.Enabled() && c.Geocoder.Token == "" {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("YANDEX_GEOCODER_TOKEN is required when delivery is on"))
	}
	if c.HTTP.Timeout < 0 {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout))
	}
	if c.HTTP.RateLimit < 0 {
		combinedErr = multierr.Append(combinedErr, fmt.Errorf("http.rate_limit must not be negative"))
	}
	return combinedErr
}
