package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/deckpulse/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:            ":8080",
		DBPath:          "test.db",
		LogLevel:        "INFO",
		RolloverHour:    4,
		StreakThreshold: 20,
		LeechThreshold:  10,
		ChartDays:       7,
		ShowCharts:      true,
		DefaultGoal:     100,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	cfg := validConfig()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_InvalidRolloverHour(t *testing.T) {
	tests := []struct {
		name string
		hour int
	}{
		{
			name: "negative hour",
			hour: -1,
		},
		{
			name: "hour past midnight wrap",
			hour: 24,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.RolloverHour = tt.hour

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), "ROLLOVER_HOUR")
		})
	}
}

func TestValidate_ValidRolloverHours(t *testing.T) {
	for _, hour := range []int{0, 4, 23} {
		cfg := validConfig()
		cfg.RolloverHour = hour
		assert.NoError(t, cfg.Validate())
	}
}

func TestValidate_InvalidThresholds(t *testing.T) {
	tests := []struct {
		name          string
		mutate        func(*config.Config)
		expectedError string
	}{
		{
			name:          "zero streak threshold",
			mutate:        func(c *config.Config) { c.StreakThreshold = 0 },
			expectedError: "STREAK_THRESHOLD",
		},
		{
			name:          "zero leech threshold",
			mutate:        func(c *config.Config) { c.LeechThreshold = 0 },
			expectedError: "LEECH_THRESHOLD",
		},
		{
			name:          "chart window too small",
			mutate:        func(c *config.Config) { c.ChartDays = 2 },
			expectedError: "CHART_DAYS",
		},
		{
			name:          "zero default goal",
			mutate:        func(c *config.Config) { c.DefaultGoal = 0 },
			expectedError: "DEFAULT_GOAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{
			name:  "invalid level",
			level: "INVALID",
		},
		{
			name:  "empty level",
			level: "",
		},
		{
			name:  "lowercase valid level",
			level: "debug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.level == "debug" {
				// Lowercase should be accepted (converted to uppercase)
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_ValidLogLevels(t *testing.T) {
	validLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = level
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{
		Addr:         "",
		DBPath:       "",
		LogLevel:     "INVALID",
		RolloverHour: 30,
		ChartDays:    0,
	}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "ROLLOVER_HOUR")
	assert.Contains(t, errStr, "STREAK_THRESHOLD")
	assert.Contains(t, errStr, "LEECH_THRESHOLD")
	assert.Contains(t, errStr, "CHART_DAYS")
	assert.Contains(t, errStr, "DEFAULT_GOAL")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	// Save original values
	originalAddr := os.Getenv("ADDR")
	originalRollover := os.Getenv("ROLLOVER_HOUR")

	defer func() {
		if originalAddr != "" {
			os.Setenv("ADDR", originalAddr)
		} else {
			os.Unsetenv("ADDR")
		}
		if originalRollover != "" {
			os.Setenv("ROLLOVER_HOUR", originalRollover)
		} else {
			os.Unsetenv("ROLLOVER_HOUR")
		}
	}()

	os.Setenv("ADDR", ":9090")
	os.Setenv("ROLLOVER_HOUR", "6")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 6, cfg.RolloverHour)
}
