package config

import (
	"os"
	"strconv"

	"hypotest/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Server ServerConfig
	Log    LogConfig
	Stats  StatsConfig
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string
	Pretty bool
}

// StatsConfig holds settings for the computation layer glue.
// SyntheticSeed seeds the normal draws used to reconstruct raw samples
// from summary statistics; zero means seed from the clock.
type StatsConfig struct {
	SyntheticSeed uint64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:    getEnvWithDefault("PORT", "8080"),
			GinMode: getEnvWithDefault("GIN_MODE", "release"),
		},
		Log: LogConfig{
			Level:  getEnvWithDefault("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}

	seed, err := getEnvUint("SYNTHETIC_SEED", 0)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stats configuration")
	}
	config.Stats.SyntheticSeed = seed

	if _, err := strconv.Atoi(config.Server.Port); err != nil {
		return nil, errors.ConfigInvalid("PORT must be numeric")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvUint(key string, defaultValue uint64) (uint64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, errors.ConfigInvalid(key + " must be a non-negative integer")
	}
	return parsed, nil
}
