// Package config handles loading and validating the rsc configuration from
// YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/rocketsource-go/pkg/rocketsource"
)

// Config is the top-level configuration.
type Config struct {
	API       APIConfig       `yaml:"api"`
	Logging   LoggingConfig   `yaml:"logging"`
	Batch     BatchConfig     `yaml:"batch"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// APIConfig defines how the client reaches the RocketSource API.
type APIConfig struct {
	BaseURL string            `yaml:"base_url"`
	APIKey  string            `yaml:"api_key"`
	Timeout time.Duration     `yaml:"timeout"`
	Headers map[string]string `yaml:"headers"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// BatchConfig defines how large identifier lists are split and paced.
type BatchConfig struct {
	Size      int     `yaml:"size"`
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// TelemetryConfig defines trace export. An empty endpoint disables it.
type TelemetryConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// MaxBatchSize is the largest accepted batch.size.
const MaxBatchSize = 1000

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Read is Load without validation, for callers that layer overrides on the
// file before validating.
func Read(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)
	return cfg, nil
}

// Default returns a configuration with every default applied, for use when
// no file is given.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// ClientOptions maps the API settings to client options.
func (c *Config) ClientOptions(logger *slog.Logger) []rocketsource.Option {
	opts := []rocketsource.Option{
		rocketsource.WithBaseURL(c.API.BaseURL),
		rocketsource.WithAPIKey(c.API.APIKey),
		rocketsource.WithTimeout(c.API.Timeout),
	}
	if len(c.API.Headers) > 0 {
		opts = append(opts, rocketsource.WithHeaders(c.API.Headers))
	}
	if logger != nil {
		opts = append(opts, rocketsource.WithLogger(logger))
	}
	return opts
}

func applyDefaults(cfg *Config) {
	applyAPIDefaults(&cfg.API)
	applyLoggingDefaults(&cfg.Logging)
	applyBatchDefaults(&cfg.Batch)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applyAPIDefaults(a *APIConfig) {
	if a.BaseURL == "" {
		a.BaseURL = rocketsource.DefaultBaseURL
	}
	if a.Timeout == 0 {
		a.Timeout = rocketsource.DefaultTimeout
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func applyBatchDefaults(b *BatchConfig) {
	if b.Size == 0 {
		b.Size = 100
	}
	if b.PerSecond == 0 {
		b.PerSecond = 2
	}
	if b.Burst == 0 {
		b.Burst = 1
	}
}

func applyTelemetryDefaults(t *TelemetryConfig) {
	if t.ServiceName == "" {
		t.ServiceName = "rsc"
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.API.BaseURL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("api.base_url is invalid: %w", err))
	case u.Scheme != "http" && u.Scheme != "https", u.Host == "":
		errs = append(errs, fmt.Errorf("api.base_url must be an absolute http(s) URL (got %q)", c.API.BaseURL))
	}

	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive (got %s)", c.API.Timeout))
	}

	if c.Batch.Size < 1 || c.Batch.Size > MaxBatchSize {
		errs = append(errs, fmt.Errorf("batch.size must be between 1 and %d (got %d)", MaxBatchSize, c.Batch.Size))
	}
	if c.Batch.PerSecond <= 0 {
		errs = append(errs, fmt.Errorf("batch.per_second must be positive (got %g)", c.Batch.PerSecond))
	}
	if c.Batch.Burst < 1 {
		errs = append(errs, fmt.Errorf("batch.burst must be at least 1 (got %d)", c.Batch.Burst))
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be one of: text, json (got %q)", c.Logging.Format))
	}

	return errors.Join(errs...)
}
