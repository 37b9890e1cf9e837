// Package config loads service settings from defaults, an optional YAML file
// and environment overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv           = "CHURN_CONFIG"
	portEnv                 = "PORT"
	modelURIEnv             = "MODEL_URI"
	modelTimeoutEnv         = "MODEL_TIMEOUT"
	rateLimitEnabledEnv     = "RATE_LIMIT_ENABLED"
	rateLimitRPSEnv         = "RATE_LIMIT_RPS"
	rateLimitBurstEnv       = "RATE_LIMIT_BURST"
	slowRequestThresholdEnv = "SLOW_REQUEST_THRESHOLD"
)

// Config holds everything the server and CLI need at startup
type Config struct {
	Port                 int             `yaml:"port"`
	ModelURI             string          `yaml:"modelURI"`
	ModelTimeout         time.Duration   `yaml:"modelTimeout"`
	RequestTimeout       time.Duration   `yaml:"requestTimeout"`
	ShutdownTimeout      time.Duration   `yaml:"shutdownTimeout"`
	SlowRequestThreshold time.Duration   `yaml:"slowRequestThreshold"`
	RateLimit            RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig is the per-client token bucket on prediction routes
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps"`
	Burst   int     `yaml:"burst"`
}

// Default returns the settings used when nothing is configured
func Default() Config {
	return Config{
		Port:                 8080,
		ModelURI:             "models/churn_logistic.json",
		ModelTimeout:         5 * time.Second,
		RequestTimeout:       60 * time.Second,
		ShutdownTimeout:      30 * time.Second,
		SlowRequestThreshold: time.Second,
		RateLimit: RateLimitConfig{
			Enabled: true,
			RPS:     30,
			Burst:   60,
		},
	}
}

// Load builds the configuration. An empty path falls back to CHURN_CONFIG;
// when neither is set only defaults and environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv(configPathEnv))
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := ApplyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	// Keys absent from the file keep their current values
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// ApplyEnvOverrides replaces settings with any environment variables that are set
func ApplyEnvOverrides(cfg *Config) error {
	var errs []error

	if raw := env(portEnv); raw != "" {
		if port, err := strconv.Atoi(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", portEnv, err))
		} else {
			cfg.Port = port
		}
	}
	if raw := env(modelURIEnv); raw != "" {
		cfg.ModelURI = raw
	}
	if raw := env(modelTimeoutEnv); raw != "" {
		if d, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", modelTimeoutEnv, err))
		} else {
			cfg.ModelTimeout = d
		}
	}
	if raw := env(slowRequestThresholdEnv); raw != "" {
		if d, err := time.ParseDuration(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", slowRequestThresholdEnv, err))
		} else {
			cfg.SlowRequestThreshold = d
		}
	}
	if raw := env(rateLimitEnabledEnv); raw != "" {
		if b, err := strconv.ParseBool(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rateLimitEnabledEnv, err))
		} else {
			cfg.RateLimit.Enabled = b
		}
	}
	if raw := env(rateLimitRPSEnv); raw != "" {
		if rps, err := strconv.ParseFloat(raw, 64); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rateLimitRPSEnv, err))
		} else {
			cfg.RateLimit.RPS = rps
		}
	}
	if raw := env(rateLimitBurstEnv); raw != "" {
		if burst, err := strconv.Atoi(raw); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", rateLimitBurstEnv, err))
		} else {
			cfg.RateLimit.Burst = burst
		}
	}

	return errors.Join(errs...)
}

// Validate checks that the settings can start a server
func (c Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	if strings.TrimSpace(c.ModelURI) == "" {
		return fmt.Errorf("model URI is required")
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("model timeout must be positive, got %s", c.ModelTimeout)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate limit rps must be positive, got %v", c.RateLimit.RPS)
		}
		if c.RateLimit.Burst <= 0 {
			return fmt.Errorf("rate limit burst must be positive, got %d", c.RateLimit.Burst)
		}
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}
