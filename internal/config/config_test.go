package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_YamlAndEnv(t *testing.T) {
	path := writeConfig(t, `
delivery:
  base_url: https://b2b.taxi.yandex.net
  locale: en_US
http:
  timeout: 3s
  rate_limit: 5
cache:
  enabled: true
  ttl: 1h
offer:
  source_platform_id: station-42
  default_place:
    weight_gross: 1000
    dx: 10
    dy: 20
    dz: 30
`)
	t.Setenv("YANDEX_DELIVERY_ON", "1")
	t.Setenv("YANDEX_DELIVERY_TOKEN", "taxi-token")
	t.Setenv("YANDEX_GEOCODER_TOKEN", "geo-token")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.Enabled())
	assert.Equal(t, "https://b2b.taxi.yandex.net/", cfg.Delivery.BaseURL)
	assert.Equal(t, "en_US", cfg.Delivery.Locale)
	assert.Equal(t, "taxi-token", cfg.Delivery.Token)
	assert.Equal(t, "geo-token", cfg.Geocoder.Token)
	assert.Equal(t, DefaultGeocoderURL, cfg.Geocoder.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 1, cfg.HTTP.Burst)
	assert.False(t, cfg.HTTP.InsecureSkipVerify)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, DefaultCacheSize, cfg.Cache.MaxSize)
	assert.Equal(t, DefaultCacheCleanup, cfg.Cache.CleanupInterval)
	assert.Equal(t, "station-42", cfg.Offer.SourcePlatformID)
	assert.Equal(t, int64(1000), cfg.Offer.DefaultPlace.WeightGross)
	assert.Equal(t, ":8080", cfg.Gateway.Address)
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("YANDEX_DELIVERY_ON", "0")
	t.Setenv("YANDEX_DELIVERY_URL", "https://b2b.taxi.yandex.net/")
	t.Setenv("YANDEX_DELIVERY_TOKEN", "taxi-token")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Enabled())
	assert.Equal(t, DefaultLocale, cfg.Delivery.Locale)
	assert.Equal(t, DefaultTimeout, cfg.HTTP.Timeout)
}

func TestLoad_IntegerFlagIsTruthy(t *testing.T) {
	t.Setenv("YANDEX_DELIVERY_ON", "2")
	t.Setenv("YANDEX_DELIVERY_URL", "https://b2b.taxi.yandex.net/")
	t.Setenv("YANDEX_DELIVERY_TOKEN", "taxi-token")
	t.Setenv("YANDEX_GEOCODER_TOKEN", "geo-token")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Enabled())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read yaml")
}

func TestLoad_BadYaml(t *testing.T) {
	path := writeConfig(t, "delivery: [unterminated")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		prepare   func(*Config)
		wantCount int
		wantSub   string
	}{
		{
			name:      "Valid",
			prepare:   func(c *Config) {},
			wantCount: 0,
		},
		{
			name:      "MissingToken",
			prepare:   func(c *Config) { c.Delivery.Token = "" },
			wantCount: 1,
			wantSub:   "YANDEX_DELIVERY_TOKEN",
		},
		{
			name:      "RelativeURL",
			prepare:   func(c *Config) { c.Delivery.BaseURL = "b2b/" },
			wantCount: 1,
			wantSub:   "absolute",
		},
		{
			name: "EverythingMissing",
			prepare: func(c *Config) {
				c.Delivery.Token = ""
				c.Delivery.BaseURL = ""
				c.Geocoder.Token = ""
				c.HTTP.Timeout = -time.Second
			},
			wantCount: 4,
			wantSub:   "YANDEX_GEOCODER_TOKEN",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var cfg Config
			cfg.Delivery.On = 1
			cfg.Delivery.BaseURL = "https://b2b.taxi.yandex.net/"
			cfg.Delivery.Token = "taxi"
			cfg.Geocoder.Token = "geo"
			cfg.applyDefaults()
			tt.prepare(&cfg)

			err := cfg.Validate()
			assert.Len(t, multierr.Errors(err), tt.wantCount)
			if tt.wantSub != "" {
				assert.ErrorContains(t, err, tt.wantSub)
			}
		})
	}
}
