package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port         string
	Env          string
	MaxBodyBytes int64

	// Anthropic
	AnthropicAPIKey  string
	AnthropicBaseURL string
	DefaultModel     string
	DefaultMaxTokens int

	// Frontend
	FrontendURL string
}

const (
	DefaultModel     = "claude-opus-4-1-20250805"
	DefaultMaxTokens = 4000
	DefaultRelayURL  = "http://localhost:5001"
)

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	cfg := &Config{
		Port:         getEnvOrDefault("PORT", "5001"),
		Env:          getEnvOrDefault("ENV", "development"),
		MaxBodyBytes: int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 10<<20)),

		// A missing key fails each /api/claude request, not the process.
		AnthropicAPIKey:  getEnvOrDefault("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL: getEnvOrDefault("ANTHROPIC_BASE_URL", ""),
		DefaultModel:     getEnvOrDefault("DEFAULT_MODEL", DefaultModel),
		DefaultMaxTokens: getEnvAsIntOrDefault("DEFAULT_MAX_TOKENS", DefaultMaxTokens),

		FrontendURL: getEnvOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}

	return cfg
}

// ClientConfig holds what the terminal client needs to reach the relay.
type ClientConfig struct {
	RelayURL      string
	PrefsPath     string
	PrefsRedisURL string
}

func LoadClient() *ClientConfig {
	godotenv.Load()

	relayURL := getEnvOrDefault("PONDER_RELAY_URL", "")
	if relayURL == "" {
		relayURL = getEnvOrDefault("REACT_APP_API_URL", DefaultRelayURL)
	}

	return &ClientConfig{
		RelayURL:      relayURL,
		PrefsPath:     getEnvOrDefault("PONDER_PREFS_PATH", defaultPrefsPath()),
		PrefsRedisURL: getEnvOrDefault("PONDER_PREFS_REDIS_URL", ""),
	}
}

func defaultPrefsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "ponder-prefs.db"
	}
	return filepath.Join(dir, "ponder", "prefs.db")
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
