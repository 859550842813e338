// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/sejalthool/AQI/internal/airquality"
	"github.com/sejalthool/AQI/internal/airquality/waqi"
	"github.com/sejalthool/AQI/internal/geocode"
)

var validate = validator.New()

// Config holds the full runtime configuration for the API server.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port string `validate:"required"`

	// Env names the deployment environment (development, staging, production).
	Env string

	// LogLevel is the minimum zerolog level (trace, debug, info, warn, error).
	LogLevel string

	// WAQIToken authenticates requests to the World Air Quality Index API.
	// The server refuses to start without it.
	WAQIToken string `validate:"required"`

	// WAQIBaseURL is the WAQI API base URL.
	WAQIBaseURL string `validate:"required,url"`

	// NominatimURL is the Nominatim geocoding server.
	NominatimURL string `validate:"required,url"`

	// SearchRadiusDeg is the half-size in degrees of the station search box.
	SearchRadiusDeg float64 `validate:"gt=0"`

	// StationLimit is how many nearby stations contribute to a reading.
	StationLimit int `validate:"gt=0"`

	// FeedCacheTTL is how long station feeds are served from cache.
	FeedCacheTTL time.Duration `validate:"gt=0"`

	// OTLPEndpoint is the OpenTelemetry collector endpoint.
	OTLPEndpoint string

	// TelemetryEnabled turns on OTLP trace and metric export.
	TelemetryEnabled bool
}

// Load reads configuration from the environment with sensible defaults and
// validates it. A .env file in the working directory is picked up when
// present; deployments normally configure the process environment directly.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnvOrDefault("APP_PORT", "8080"),
		Env:              getEnvOrDefault("APP_ENV", "development"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		WAQIToken:        os.Getenv("WAQI_TOKEN"),
		WAQIBaseURL:      getEnvOrDefault("WAQI_BASE_URL", waqi.DefaultBaseURL),
		NominatimURL:     getEnvOrDefault("NOMINATIM_URL", geocode.DefaultServerURL),
		SearchRadiusDeg:  getEnvFloat("AQ_SEARCH_RADIUS", airquality.DefaultSearchRadiusDeg),
		StationLimit:     getEnvInt("AQ_STATION_LIMIT", airquality.DefaultStationLimit),
		OTLPEndpoint:     getEnvOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled: os.Getenv("OTEL_ENABLED") == "true",
	}

	ttlStr := getEnvOrDefault("AQ_FEED_CACHE_TTL", "60s")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid AQ_FEED_CACHE_TTL: %w", err)
	}
	cfg.FeedCacheTTL = ttl

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
