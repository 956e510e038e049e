package main

import "errors"

// KnownMetrics is the set of metric names exported by the rocketsource
// client, batch converter and mock server, plus recording rule names
// referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Client metrics.
	"rsc_client_requests_total":                  true,
	"rsc_client_request_duration_seconds":        true,
	"rsc_client_request_duration_seconds_bucket": true,
	"rsc_client_request_duration_seconds_sum":    true,
	"rsc_client_request_duration_seconds_count":  true,
	"rsc_client_errors_total":                    true,

	// Batch metrics.
	"rsc_batch_chunks_total":      true,
	"rsc_batch_identifiers_total": true,

	// Mock server metrics.
	"rsc_mock_requests_total": true,

	// Recording rules.
	"rsc:client_requests:rate5m":   true,
	"rsc:client_errors:rate5m":     true,
	"rsc:batch_chunks:rate5m":      true,
	"rsc:batch_identifiers:rate5m": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
