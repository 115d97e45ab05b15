package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// MunicipalID is stamped onto every ledger row written by this instance.
	MunicipalID int

	// Rate limiting for the posting endpoints.
	RateLimitPeriod string
	RateLimitMax    int64
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("MUNICIPAL_ID", 1)
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_MAX", 120)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.MunicipalID = viper.GetInt("MUNICIPAL_ID")
	if cfg.MunicipalID <= 0 {
		cfg.MunicipalID = 1
		log.Printf("Warning: Invalid MUNICIPAL_ID. Defaulting to %d.\n", cfg.MunicipalID)
	}

	cfg.RateLimitPeriod = viper.GetString("RATE_LIMIT_PERIOD")
	cfg.RateLimitMax = viper.GetInt64("RATE_LIMIT_MAX")

	return cfg, nil
}
