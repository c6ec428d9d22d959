package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Default pacing bounds for broadcasts.
const (
	DefaultBroadcastMinDelay = 12 * time.Second
	DefaultBroadcastMaxDelay = 20 * time.Second
)

// Config holds the application configuration
type Config struct {
	Port string

	// Spreadsheet ingestion
	SheetID string

	// Gemini (schema mapper and assistant)
	GoogleAPIKey string
	GeminiModel  string

	// Evolution API gateway
	EvolutionBaseURL  string
	EvolutionAPIKey   string
	EvolutionInstance string

	// Supabase persistence
	SupabaseURL string
	SupabaseKey string

	// Broadcast pacing
	BroadcastMinDelay time.Duration
	BroadcastMaxDelay time.Duration
}

// Load reads configuration from the environment, with .env as a convenience
// for local development.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Printf("[Config] Loaded environment from .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &Config{
		Port:              port,
		SheetID:           os.Getenv("SHEET_ID"),
		GoogleAPIKey:      os.Getenv("GOOGLE_API_KEY"),
		GeminiModel:       os.Getenv("GEMINI_MODEL"),
		EvolutionBaseURL:  os.Getenv("EVOLUTION_BASE_URL"),
		EvolutionAPIKey:   os.Getenv("EVOLUTION_API_KEY"),
		EvolutionInstance: os.Getenv("EVOLUTION_INSTANCE"),
		SupabaseURL:       os.Getenv("SUPABASE_URL"),
		SupabaseKey:       os.Getenv("SUPABASE_SECRET_KEY"),
		BroadcastMinDelay: durationMS("BROADCAST_MIN_DELAY_MS", DefaultBroadcastMinDelay),
		BroadcastMaxDelay: durationMS("BROADCAST_MAX_DELAY_MS", DefaultBroadcastMaxDelay),
	}
}

// durationMS reads a millisecond env var, keeping the fallback on absence or
// a non-positive value.
func durationMS(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms <= 0 {
		log.Printf("[Config] Ignoring invalid %s=%q", key, raw)
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
