package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_DefaultPort(t *testing.T) {
	t.Setenv("PORT", "")

	config := Load()
	assert.Equal(t, "8080", config.Port)
}

func TestLoad_CustomPort(t *testing.T) {
	t.Setenv("PORT", "3000")

	config := Load()
	assert.Equal(t, "3000", config.Port)
}

func TestLoad_AllEnvVars(t *testing.T) {
	envVars := map[string]string{
		"PORT":                   "9000",
		"SHEET_ID":               "test-sheet-id",
		"GOOGLE_API_KEY":         "google_api_key_test",
		"GEMINI_MODEL":           "gemini-2.5-pro",
		"EVOLUTION_BASE_URL":     "https://evo.example.com",
		"EVOLUTION_API_KEY":      "evo_key",
		"EVOLUTION_INSTANCE":     "madeiras",
		"SUPABASE_URL":           "https://test.supabase.co",
		"SUPABASE_SECRET_KEY":    "test_secret_key",
		"BROADCAST_MIN_DELAY_MS": "500",
		"BROADCAST_MAX_DELAY_MS": "900",
	}
	for k, v := range envVars {
		t.Setenv(k, v)
	}

	config := Load()

	assert.Equal(t, "9000", config.Port)
	assert.Equal(t, "test-sheet-id", config.SheetID)
	assert.Equal(t, "google_api_key_test", config.GoogleAPIKey)
	assert.Equal(t, "gemini-2.5-pro", config.GeminiModel)
	assert.Equal(t, "https://evo.example.com", config.EvolutionBaseURL)
	assert.Equal(t, "evo_key", config.EvolutionAPIKey)
	assert.Equal(t, "madeiras", config.EvolutionInstance)
	assert.Equal(t, "https://test.supabase.co", config.SupabaseURL)
	assert.Equal(t, "test_secret_key", config.SupabaseKey)
	assert.Equal(t, 500*time.Millisecond, config.BroadcastMinDelay)
	assert.Equal(t, 900*time.Millisecond, config.BroadcastMaxDelay)
}

func TestLoad_DefaultDelays(t *testing.T) {
	t.Setenv("BROADCAST_MIN_DELAY_MS", "")
	t.Setenv("BROADCAST_MAX_DELAY_MS", "")

	config := Load()
	assert.Equal(t, DefaultBroadcastMinDelay, config.BroadcastMinDelay)
	assert.Equal(t, DefaultBroadcastMaxDelay, config.BroadcastMaxDelay)
}

func TestDurationMS_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not a number", "soon"},
		{"zero", "0"},
		{"negative", "-100"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_DELAY_MS", tc.value)
			assert.Equal(t, time.Second, durationMS("TEST_DELAY_MS", time.Second))
		})
	}
}
