// Package config loads server configuration from an optional YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr        string    `yaml:"addr"`
	DatabaseURL string    `yaml:"database_url"`
	RateLimit   RateLimit `yaml:"rate_limit"`
	Tracing     Tracing   `yaml:"tracing"`
}

type RateLimit struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

type Tracing struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// Load reads path when non-empty, then applies environment overrides on top
// of the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:      ":8080",
		RateLimit: RateLimit{PerSecond: 50, Burst: 100},
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Addr = getEnv("BOOKLEDGER_ADDR", cfg.Addr)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.Tracing.Endpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", cfg.Tracing.Endpoint)
	if v, ok := os.LookupEnv("BOOKLEDGER_RATE_PER_SECOND"); ok {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse BOOKLEDGER_RATE_PER_SECOND: %w", err)
		}
		cfg.RateLimit.PerSecond = n
	}
	if v, ok := os.LookupEnv("BOOKLEDGER_RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse BOOKLEDGER_RATE_BURST: %w", err)
		}
		cfg.RateLimit.Burst = n
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
