package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig holds all runtime configuration for the service.
type AppConfig struct {
	Port                 string
	DBPath               string
	Timezone             string
	LogLevel             string
	Environment          string
	PredictionHorizon    int
	CronSpecStatsRefresh string
}

// Load reads configuration from environment variables, with an optional .env
// file. Existing environment variables are never overridden by the file.
func Load() (*AppConfig, error) {
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:                 getEnv("PORT", "8080"),
		DBPath:               getEnv("DB_PATH", "data/palmoticeva.db"),
		Timezone:             getEnv("TZ", "UTC"),
		LogLevel:             strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Environment:          strings.ToLower(getEnv("ENVIRONMENT", "development")),
		CronSpecStatsRefresh: getEnv("CRON_SPEC_STATS_REFRESH", "15 3 * * *"),
	}

	horizonValue := getEnv("PREDICTION_HORIZON", "6")
	horizon, err := strconv.Atoi(horizonValue)
	if err != nil || horizon < 1 || horizon > 24 {
		return nil, fmt.Errorf("invalid PREDICTION_HORIZON %q: want an integer between 1 and 24", horizonValue)
	}
	cfg.PredictionHorizon = horizon

	return cfg, nil
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
