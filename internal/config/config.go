package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr            string
	DBPath          string
	LogLevel        string
	RolloverHour    int // hour of day (0-23) at which the study day rolls over
	StreakThreshold int
	LeechThreshold  int
	ChartDays       int
	ShowCharts      bool
	DefaultGoal     int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:            envOr("ADDR", ":8080"),
		DBPath:          envOr("DB_PATH", "file:deckpulse.db"),
		LogLevel:        envOr("LOG_LEVEL", "INFO"),
		RolloverHour:    envIntOr("ROLLOVER_HOUR", 4),
		StreakThreshold: envIntOr("STREAK_THRESHOLD", 20),
		LeechThreshold:  envIntOr("LEECH_THRESHOLD", 10),
		ChartDays:       envIntOr("CHART_DAYS", 7),
		ShowCharts:      envBoolOr("SHOW_CHARTS", true),
		DefaultGoal:     envIntOr("DEFAULT_GOAL", 100),
	}
}

// Validate checks the loaded configuration and returns all problems at
// once, each naming the environment variable to fix.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.RolloverHour < 0 || c.RolloverHour > 23 {
		problems = append(problems, fmt.Sprintf("ROLLOVER_HOUR must be between 0 and 23 (got %d)", c.RolloverHour))
	}
	if c.StreakThreshold < 1 {
		problems = append(problems, fmt.Sprintf("STREAK_THRESHOLD must be at least 1 (got %d)", c.StreakThreshold))
	}
	if c.LeechThreshold < 1 {
		problems = append(problems, fmt.Sprintf("LEECH_THRESHOLD must be at least 1 (got %d)", c.LeechThreshold))
	}
	if c.ChartDays < 3 {
		problems = append(problems, fmt.Sprintf("CHART_DAYS must be at least 3 (got %d)", c.ChartDays))
	}
	if c.DefaultGoal < 1 {
		problems = append(problems, fmt.Sprintf("DEFAULT_GOAL must be at least 1 (got %d)", c.DefaultGoal))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
