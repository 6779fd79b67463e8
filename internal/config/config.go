package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the process configuration. Every value has a default so the
// server starts with nothing but provider keys supplied per request.
type Config struct {
	Port string

	// Default provider keys for deployments that do not pass keys per
	// request. A key in the request body always wins.
	GroqAPIKey   string
	GeminiAPIKey string

	// MinDailyBudget is the lowest accepted budget per person per day.
	MinDailyBudget float64

	// FactCheckInterval is the minimum spacing between outbound calls to the
	// geocoding and wiki services.
	FactCheckInterval time.Duration

	// FactCheckCacheTTL of zero keeps verdicts for the process lifetime.
	FactCheckCacheTTL time.Duration

	NominatimBaseURL string
	WikipediaBaseURL string
}

// NewFromEnv loads .env when present and reads the environment.
func NewFromEnv() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		Port:              envOr("PORT", "8080"),
		GroqAPIKey:        os.Getenv("GROQ_API_KEY"),
		GeminiAPIKey:      os.Getenv("GEMINI_API_KEY"),
		MinDailyBudget:    envFloat("MIN_DAILY_BUDGET", 50),
		FactCheckInterval: envDuration("FACTCHECK_MIN_INTERVAL", time.Second),
		FactCheckCacheTTL: envDuration("FACTCHECK_CACHE_TTL", 0),
		NominatimBaseURL:  envOr("NOMINATIM_BASE_URL", "https://nominatim.openstreetmap.org"),
		WikipediaBaseURL:  envOr("WIKIPEDIA_BASE_URL", "https://en.wikipedia.org"),
	}
}

// ProviderKey returns the configured default key for a provider.
func (c *Config) ProviderKey(provider string) string {
	switch provider {
	case "gemini":
		return c.GeminiAPIKey
	default:
		return c.GroqAPIKey
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return f
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %v", key, v, fallback)
		return fallback
	}
	return d
}
