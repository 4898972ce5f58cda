// Package config reads the server settings from the environment, after
// loading an optional .env file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type Config struct {
	Port   string
	APIKey string

	DatabaseURL string
	SQLitePath  string

	AIProvider    string
	GeminiAPIKey  string
	GeminiBaseURL string
	OpenAIAPIKey  string
	RedisURL      string
	AIRatePerMin  int

	LogFile      string
	LogLevel     string
	OTelEnabled  bool
	TelemetryDir string

	CORSOrigins []string
	SeedDemo    bool
}

// Load reads .env (if present) and the environment.
func Load() (Config, error) {
	godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return fallback
	}

	cfg := Config{
		Port:          get("PORT", "8080"),
		APIKey:        getenv("API_KEY"),
		DatabaseURL:   getenv("DATABASE_URL"),
		SQLitePath:    getenv("SQLITE_PATH"),
		AIProvider:    strings.ToLower(get("AI_PROVIDER", ProviderGemini)),
		GeminiAPIKey:  getenv("GEMINI_API_KEY"),
		GeminiBaseURL: getenv("GEMINI_BASE_URL"),
		OpenAIAPIKey:  getenv("OPENAI_API_KEY"),
		RedisURL:      getenv("REDIS_URL"),
		LogFile:       getenv("LOG_FILE"),
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
		TelemetryDir:  get("TELEMETRY_DIR", "logs"),
		CORSOrigins:   splitList(get("CORS_ORIGINS", "*")),
	}

	if cfg.AIProvider != ProviderGemini && cfg.AIProvider != ProviderOpenAI {
		return Config{}, fmt.Errorf("invalid AI_PROVIDER %q (expected gemini or openai)", cfg.AIProvider)
	}

	rate, err := strconv.Atoi(get("AI_RATE_PER_MIN", "20"))
	if err != nil || rate <= 0 {
		return Config{}, fmt.Errorf("invalid AI_RATE_PER_MIN %q", getenv("AI_RATE_PER_MIN"))
	}
	cfg.AIRatePerMin = rate

	if cfg.OTelEnabled, err = parseBool(getenv("OTEL_ENABLED")); err != nil {
		return Config{}, fmt.Errorf("invalid OTEL_ENABLED: %w", err)
	}
	if cfg.SeedDemo, err = parseBool(getenv("SEED_DEMO")); err != nil {
		return Config{}, fmt.Errorf("invalid SEED_DEMO: %w", err)
	}

	return cfg, nil
}

func parseBool(v string) (bool, error) {
	if strings.TrimSpace(v) == "" {
		return false, nil
	}
	return strconv.ParseBool(strings.TrimSpace(v))
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
