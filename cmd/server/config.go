package main

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server settings read from the process environment
type Config struct {
	Port            string        `env:"APP_PORT" envDefault:"8080"`
	PackPath        string        `env:"MAP_PACK"`
	MetricsInterval time.Duration `env:"METRICS_INTERVAL"`
	Profiling       ProfilingConfig
}

// ProfilingConfig holds configuration for the pprof sidecar
type ProfilingConfig struct {
	Enabled bool   `env:"ENABLE_PROFILING"`
	Port    string `env:"PPROF_PORT" envDefault:"42069"`
}

// LoadConfig parses configuration from environment variables
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
