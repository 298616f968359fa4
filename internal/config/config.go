// Package config handles configuration loading and management
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the CLI configuration
type Config struct {
	LogLevel          string
	FailSilently      bool
	SetupExpectations bool
	Verbose           bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// It's okay if the file doesn't exist
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading .env file: %w", err)
		}
	}

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	failSilently, err := getBoolEnv("VERITY_FAIL_SILENTLY", false)
	if err != nil {
		return nil, err
	}
	cfg.FailSilently = failSilently

	setupExpectations, err := getBoolEnv("VERITY_SETUP_EXPECTATIONS", false)
	if err != nil {
		return nil, err
	}
	cfg.SetupExpectations = setupExpectations

	verbose, err := getBoolEnv("VERITY_VERBOSE", false)
	if err != nil {
		return nil, err
	}
	cfg.Verbose = verbose

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}

	return parsed, nil
}

func (c *Config) String() string {
	return fmt.Sprintf(`Current Configuration:
======================
Log Level:           %s
Fail Silently:       %t
Setup Expectations:  %t
Verbose:             %t`,
		c.LogLevel,
		c.FailSilently,
		c.SetupExpectations,
		c.Verbose,
	)
}
