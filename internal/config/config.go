package config

import (
	"os"
	"strconv"

	"dredge/internal/errors"
)

// Defaults for the simulation parameters.
const (
	DefaultTrials       = 1000
	DefaultObservations = 1000
	DefaultCovariates   = 5
	DefaultAlpha        = 0.05
	DefaultSeed         = 12345
	DefaultWorkers      = 1
)

// Config represents the complete application configuration
type Config struct {
	Simulation SimulationConfig
	Database   DatabaseConfig
	Server     ServerConfig
}

// SimulationConfig holds the Monte Carlo run parameters
type SimulationConfig struct {
	Trials       int     // independent trials per run
	Observations int     // rows per generated dataset
	Covariates   int     // nuisance covariates per dataset
	Alpha        float64 // significance threshold
	Seed         int64   // base seed for deterministic substreams
	Workers      int     // > 1 enables the parallel runner
}

// DatabaseConfig holds optional run-persistence settings
type DatabaseConfig struct {
	URL string // empty disables persistence
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string
}

// Load reads configuration from environment variables and validates it.
// Invalid configuration is fatal before any trial runs: a simulation with a
// broken parameter set produces numbers that look real and are not.
func Load() (*Config, error) {
	cfg := &Config{
		Simulation: SimulationConfig{
			Trials:       getEnvIntOrDefault("DREDGE_TRIALS", DefaultTrials),
			Observations: getEnvIntOrDefault("DREDGE_OBSERVATIONS", DefaultObservations),
			Covariates:   getEnvIntOrDefault("DREDGE_COVARIATES", DefaultCovariates),
			Alpha:        getEnvFloatOrDefault("DREDGE_ALPHA", DefaultAlpha),
			Seed:         getEnvInt64OrDefault("DREDGE_SEED", DefaultSeed),
			Workers:      getEnvIntOrDefault("DREDGE_WORKERS", DefaultWorkers),
		},
		Database: DatabaseConfig{
			URL: getEnvOrDefault("DATABASE_URL", ""),
		},
		Server: ServerConfig{
			Port: getEnvOrDefault("PORT", "8080"),
		},
	}

	if err := cfg.Simulation.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// Validate rejects parameter sets no run should start with.
func (c SimulationConfig) Validate() error {
	if c.Trials < 1 {
		return errors.ConfigInvalid("trial count must be at least 1")
	}
	if c.Observations < 1 {
		return errors.ConfigInvalid("observations per trial must be at least 1")
	}
	if c.Covariates < 0 {
		return errors.ConfigInvalid("covariate count cannot be negative")
	}
	if c.Alpha <= 0 || c.Alpha >= 1 {
		return errors.ConfigInvalid("significance threshold must be in (0, 1)")
	}
	if c.Workers < 1 {
		return errors.ConfigInvalid("worker count must be at least 1")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
