package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGemini, cfg.AIProvider)
	assert.Equal(t, 20, cfg.AIRatePerMin)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "logs", cfg.TelemetryDir)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.OTelEnabled)
	assert.False(t, cfg.SeedDemo)
	assert.Empty(t, cfg.APIKey)
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"PORT":            "9000",
		"API_KEY":         "secret",
		"AI_PROVIDER":     "OpenAI",
		"AI_RATE_PER_MIN": "5",
		"OTEL_ENABLED":    "true",
		"SEED_DEMO":       "1",
		"CORS_ORIGINS":    "https://a.example, https://b.example,",
		"SQLITE_PATH":     "/tmp/wayfarer.db",
	}))
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "secret", cfg.APIKey)
	assert.Equal(t, ProviderOpenAI, cfg.AIProvider)
	assert.Equal(t, 5, cfg.AIRatePerMin)
	assert.True(t, cfg.OTelEnabled)
	assert.True(t, cfg.SeedDemo)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "/tmp/wayfarer.db", cfg.SQLitePath)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown provider", map[string]string{"AI_PROVIDER": "llama"}},
		{"rate not a number", map[string]string{"AI_RATE_PER_MIN": "lots"}},
		{"rate zero", map[string]string{"AI_RATE_PER_MIN": "0"}},
		{"bad bool", map[string]string{"OTEL_ENABLED": "maybe"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromEnv(envOf(tt.env))
			assert.Error(t, err)
		})
	}
}
