package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values
const (
	// Output defaults
	DefaultOutputDir = "."
	DefaultCreator   = "ymaps2gpx"

	// Fetch defaults
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3

	// Geocoder defaults
	DefaultGeocoderBaseURL  = "https://geocode-maps.yandex.ru/v1/"
	DefaultGeocoderLanguage = "ru_RU"

	// Cache defaults
	DefaultCacheEnabled = true
	DefaultCacheTTL     = 24 * time.Hour

	// Logging defaults
	DefaultLogLevel  = "info"
	DefaultLogFormat = "pretty"
)

// GeocoderKeyEnv is the environment variable consulted when no API key is
// configured via flag or config file.
const GeocoderKeyEnv = "YANDEX_GEOCODER_API_KEY"

// ConfigDir returns the config directory path
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".ymaps2gpx"
	}
	return filepath.Join(home, ".ymaps2gpx")
}

// CacheDir returns the cache directory path
func CacheDir() string {
	return filepath.Join(ConfigDir(), "cache")
}

// ConfigFilePath returns the config file path
func ConfigFilePath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Directory: DefaultOutputDir,
			Creator:   DefaultCreator,
		},
		Fetch: FetchConfig{
			Timeout:    DefaultTimeout,
			MaxRetries: DefaultMaxRetries,
		},
		Geocoder: GeocoderConfig{
			BaseURL:  DefaultGeocoderBaseURL,
			Language: DefaultGeocoderLanguage,
		},
		Cache: CacheConfig{
			Enabled:   DefaultCacheEnabled,
			TTL:       DefaultCacheTTL,
			Directory: CacheDir(),
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
