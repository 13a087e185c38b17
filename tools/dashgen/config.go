package main

import "errors"

// KnownMetrics is the set of metric names exported by the catalog importer
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"cimp_http_request_duration_seconds": true,
	"cimp_http_requests_total":           true,
	"cimp_http_panics_total":             true,

	// Health metrics.
	"cimp_healthz_up": true,
	"cimp_readyz_up":  true,

	// Quota metrics.
	"cimp_quota_decisions_total":     true,
	"cimp_quota_releases_total":      true,
	"cimp_quota_window_resets_total": true,

	// Import metrics.
	"cimp_import_jobs_created_total":      true,
	"cimp_import_jobs_finished_total":     true,
	"cimp_import_jobs_active":             true,
	"cimp_import_job_duration_seconds":    true,
	"cimp_import_pages_total":             true,
	"cimp_import_page_failures_total":     true,
	"cimp_import_items_total":             true,
	"cimp_import_pacer_delay_seconds":     true,
	"cimp_import_leases_lost_total":       true,
	"cimp_queue_publish_total":            true,
	"cimp_queue_deliveries_total":         true,
	"cimp_proxy_requests_total":           true,
	"cimp_proxy_request_duration_seconds": true,

	// eBay API metrics.
	"cimp_ebay_api_calls_total":        true,
	"cimp_ebay_daily_usage":            true,
	"cimp_ebay_daily_limit_hits_total": true,
	"cimp_ebay_token_refreshes_total":  true,
	"cimp_ebay_errors_total":           true,

	// Scheduler and notification metrics.
	"cimp_scheduler_runs_total":          true,
	"cimp_notification_duration_seconds": true,
	"cimp_notification_failures_total":   true,

	// Recording rules.
	"cimp:http_requests:rate5m":        true,
	"cimp:http_errors:rate5m":          true,
	"cimp:import_items:rate5m":         true,
	"cimp:import_page_failures:rate5m": true,
	"cimp:quota_denied:rate5m":         true,
	"cimp:ebay_api_calls:rate5m":       true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
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
