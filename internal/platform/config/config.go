package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	Port         string
	IsProduction bool

	// MasterSecret is the single secret all vault keys are derived from.
	// Sync refuses to start without it.
	MasterSecret string

	// BaseCurrencyCode is the household base currency used for
	// foreign-currency annotations on normalized transactions.
	BaseCurrencyCode string

	// SyncConcurrency caps how many connections are scraped in parallel
	// within one cycle.
	SyncConcurrency int

	// SyncTimeout bounds the wall-clock duration of a whole sync cycle.
	SyncTimeout time.Duration

	// RateLimit is an ulule/limiter formatted rate (e.g. "30-M").
	RateLimit string

	// ScraperURL is the base URL of the scraper sidecar that performs the
	// actual bank-site automation.
	ScraperURL string

	PosthogAPIKey string
	PosthogHost   string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("MASTER_SECRET", "")
	viper.SetDefault("BASE_CURRENCY", "ILS")
	viper.SetDefault("SYNC_CONCURRENCY", 3)
	viper.SetDefault("SYNC_TIMEOUT", "5m")
	viper.SetDefault("RATE_LIMIT", "30-M")
	viper.SetDefault("SCRAPER_URL", "http://localhost:8081")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("POSTHOG_HOST", "https://eu.i.posthog.com")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.MasterSecret = viper.GetString("MASTER_SECRET")
	if cfg.MasterSecret == "" {
		log.Println("Warning: MASTER_SECRET not set. Credential encryption and sync will be unavailable.")
	}

	cfg.BaseCurrencyCode = viper.GetString("BASE_CURRENCY")

	cfg.SyncConcurrency = viper.GetInt("SYNC_CONCURRENCY")
	if cfg.SyncConcurrency < 1 {
		log.Printf("Warning: Invalid SYNC_CONCURRENCY (%d). Defaulting to 3.\n", cfg.SyncConcurrency)
		cfg.SyncConcurrency = 3
	}

	syncTimeoutStr := viper.GetString("SYNC_TIMEOUT")
	syncTimeout, err := time.ParseDuration(syncTimeoutStr)
	if err != nil {
		syncTimeout = 5 * time.Minute
		if syncTimeoutStr != "" {
			log.Printf("Warning: Invalid value for SYNC_TIMEOUT ('%s'). Defaulting to %s.\n", syncTimeoutStr, syncTimeout)
		}
	}
	cfg.SyncTimeout = syncTimeout

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.ScraperURL = viper.GetString("SCRAPER_URL")

	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.PosthogHost = viper.GetString("POSTHOG_HOST")

	return cfg, nil
}
