// Package config provides configuration for the trip-planning backend.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the backend configuration. It is constructed once in main
// and passed to the components that need it; there is no global state.
type Config struct {
	// Server settings
	HTTPPort  int
	JWTSecret string

	// Database
	DatabaseURL string

	// Generative model
	GeminiBaseURL string
	GeminiAPIKey  string
	GeminiModel   string
	GeminiTimeout time.Duration

	// Amadeus travel APIs
	AmadeusBaseURL      string
	AmadeusClientID     string
	AmadeusClientSecret string
	ProviderTimeout     time.Duration

	// In-memory session eviction
	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables, reading an optional
// .env file first.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:             getEnvInt("HTTP_PORT", 4000),
		JWTSecret:            getEnv("JWT_SECRET", "default_secret"),
		DatabaseURL:          getEnv("DATABASE_URL", "file:eazymytrip.db?cache=shared&mode=rwc"),
		GeminiBaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-pro"),
		GeminiTimeout:        time.Duration(getEnvInt("GEMINI_TIMEOUT_MS", 45000)) * time.Millisecond,
		AmadeusBaseURL:       getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		AmadeusClientID:      getEnv("AMADEUS_CLIENT_ID", ""),
		AmadeusClientSecret:  getEnv("AMADEUS_CLIENT_SECRET", ""),
		ProviderTimeout:      time.Duration(getEnvInt("PROVIDER_TIMEOUT_MS", 30000)) * time.Millisecond,
		SessionIdleTTL:       time.Duration(getEnvInt("SESSION_IDLE_TTL_MS", 7200000)) * time.Millisecond,
		SessionSweepInterval: time.Duration(getEnvInt("SESSION_SWEEP_INTERVAL_MS", 300000)) * time.Millisecond,
		LogLevel:             getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
