// Package config loads service endpoints and timeouts from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds the external service endpoints the editor depends on.
type Config struct {
	PricingURL     string
	ExtractionURL  string
	RequestTimeout int // seconds
	// OAuth2 client-credentials for the services; when empty, the API key
	// from the OS credential manager is used instead.
	OAuthClientID     string
	OAuthClientSecret string
	OAuthTokenURL     string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		PricingURL:        getEnv("QB_PRICING_URL", "https://api.pinpointtech.example/v1/quote/calculate"),
		ExtractionURL:     getEnv("QB_EXTRACTION_URL", "https://api.pinpointtech.example/v1/extract/hardware"),
		RequestTimeout:    getEnvAsInt("QB_REQUEST_TIMEOUT", 30),
		OAuthClientID:     getEnv("QB_OAUTH_CLIENT_ID", ""),
		OAuthClientSecret: getEnv("QB_OAUTH_CLIENT_SECRET", ""),
		OAuthTokenURL:     getEnv("QB_OAUTH_TOKEN_URL", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}
