package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the simulator's environment-driven configuration.
type Config struct {
	Port             int     `envconfig:"PORT" default:"8080"`
	RateLimit        float64 `envconfig:"RATE_LIMIT" default:"50"`
	RateBurst        int     `envconfig:"RATE_BURST" default:"100"`
	LogLevel         string  `envconfig:"LOG_LEVEL" default:"info"`
	MetricsNamespace string  `envconfig:"METRICS_NAMESPACE" default:"clinicsim"`
}

// Load reads CLINICSIM_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("clinicsim", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}
	return &cfg, nil
}
