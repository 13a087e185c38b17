// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Queue backends.
const (
	QueueRedis    = "redis"
	QueuePostgres = "postgres"
)

// Config is the top-level application configuration.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Database      DatabaseConfig      `yaml:"database"`
	Redis         RedisConfig         `yaml:"redis"`
	Queue         QueueConfig         `yaml:"queue"`
	Shopify       ShopifyConfig       `yaml:"shopify"`
	Ebay          EbayConfig          `yaml:"ebay"`
	Proxy         ProxyConfig         `yaml:"proxy"`
	Quota         QuotaConfig         `yaml:"quota"`
	Worker        WorkerConfig        `yaml:"worker"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Tracing       TracingConfig       `yaml:"tracing"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	CORSOrigins  []string      `yaml:"cors_origins"`
	// OperatorToken is the bearer credential for /ops/ routes.
	OperatorToken string `yaml:"operator_token"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// RedisConfig defines the Redis connection used by the redis queue backend.
type RedisConfig struct {
	URL string `yaml:"url"` // redis:// or rediss://
}

// QueueConfig selects and tunes the work queue.
type QueueConfig struct {
	Backend      string        `yaml:"backend"` // redis, postgres
	Stream       string        `yaml:"stream"`
	Group        string        `yaml:"group"`
	Visibility   time.Duration `yaml:"visibility"`
	PollInterval time.Duration `yaml:"poll_interval"`
	DedupeTTL    time.Duration `yaml:"dedupe_ttl"`
}

// ShopifyConfig holds the app credentials used to verify session tokens.
type ShopifyConfig struct {
	APIKey    string `yaml:"api_key"`
	APISecret string `yaml:"api_secret"`
}

// EbayConfig defines eBay API settings.
type EbayConfig struct {
	AppID        string          `yaml:"app_id"`
	CertID       string          `yaml:"cert_id"`
	TokenURL     string          `yaml:"token_url"`
	BrowseURL    string          `yaml:"browse_url"`
	AnalyticsURL string          `yaml:"analytics_url"`
	Marketplace  string          `yaml:"marketplace"`
	PageSize     int             `yaml:"page_size"`
	SellerQuery  string          `yaml:"seller_query"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines eBay API rate limiting settings.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ProxyConfig defines the internal product-creation proxy.
type ProxyConfig struct {
	URL            string        `yaml:"url"`
	InternalSecret string        `yaml:"internal_secret"`
	Timeout        time.Duration `yaml:"timeout"`
}

// QuotaConfig defines plan limits, the window length, and operation costs.
type QuotaConfig struct {
	Window time.Duration  `yaml:"window"`
	Plans  map[string]int `yaml:"plans"`
	Costs  CostsConfig    `yaml:"costs"`
}

// CostsConfig is the number of quota units each billable operation uses.
// Pointers distinguish an explicit 0 from unset.
type CostsConfig struct {
	Lookup       *int `yaml:"lookup"`
	ImportJob    *int `yaml:"import_job"`
	ImportedItem *int `yaml:"imported_item"`
}

// WorkerConfig tunes the import worker pool.
type WorkerConfig struct {
	Concurrency           int           `yaml:"concurrency"`
	PageDelay             time.Duration `yaml:"page_delay"`
	MaxPageDelay          time.Duration `yaml:"max_page_delay"`
	PageCostEstimate      time.Duration `yaml:"page_cost_estimate"`
	PageRetries           int           `yaml:"page_retries"`
	ItemRetries           int           `yaml:"item_retries"`
	MaxJobDuration        time.Duration `yaml:"max_job_duration"`
	MaxAttempts           int           `yaml:"max_attempts"`
	ReportPartialFailures *bool         `yaml:"report_partial_failures"` // default: true
}

// ScheduleConfig defines maintenance task intervals. A negative interval
// disables the task.
type ScheduleConfig struct {
	QuotaSweepInterval   time.Duration `yaml:"quota_sweep_interval"`
	ReaperInterval       time.Duration `yaml:"reaper_interval"`
	StuckAfter           time.Duration `yaml:"stuck_after"`
	QueueCleanupInterval time.Duration `yaml:"queue_cleanup_interval"`
	QueueRetention       time.Duration `yaml:"queue_retention"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Discord DiscordConfig `yaml:"discord"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// TracingConfig defines OpenTelemetry trace export.
type TracingConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	ServiceName string  `yaml:"service_name"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation. A .env file next to the config file, or in
// the working directory, is loaded first; variables already set win.
func Load(path string) (*Config, error) {
	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env"), ".env"); err != nil {
		return nil, err
	}

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

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadDotEnv(paths ...string) error {
	seen := map[string]bool{}
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil || seen[abs] {
			continue
		}
		seen[abs] = true
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("loading %s: %w", p, err)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyQueueDefaults(&cfg.Queue)
	applyEbayDefaults(&cfg.Ebay)
	applyProxyDefaults(&cfg.Proxy)
	applyQuotaDefaults(&cfg.Quota)
	applyWorkerDefaults(&cfg.Worker)
	applyScheduleDefaults(&cfg.Schedule)
	applyTracingDefaults(&cfg.Tracing)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyQueueDefaults(q *QueueConfig) {
	if q.Backend == "" {
		q.Backend = QueueRedis
	}
	if q.Stream == "" {
		q.Stream = "import-jobs"
	}
	if q.Group == "" {
		q.Group = "importers"
	}
	if q.Visibility == 0 {
		q.Visibility = 5 * time.Minute
	}
	if q.PollInterval == 0 {
		q.PollInterval = 2 * time.Second
	}
	if q.DedupeTTL == 0 {
		q.DedupeTTL = 24 * time.Hour
	}
}

func applyEbayDefaults(e *EbayConfig) {
	if e.TokenURL == "" {
		e.TokenURL = "https://api.ebay.com/identity/v1/oauth2/token"
	}
	if e.BrowseURL == "" {
		e.BrowseURL = "https://api.ebay.com/buy/browse/v1/item_summary/search"
	}
	if e.AnalyticsURL == "" {
		e.AnalyticsURL = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"
	}
	if e.Marketplace == "" {
		e.Marketplace = "EBAY_US"
	}
	if e.PageSize == 0 {
		e.PageSize = 50
	}
	applyRateLimitDefaults(&e.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 5.0
	}
	if r.Burst == 0 {
		r.Burst = 10
	}
	if r.DailyLimit == 0 {
		r.DailyLimit = 5000
	}
}

func applyProxyDefaults(p *ProxyConfig) {
	if p.Timeout == 0 {
		p.Timeout = 30 * time.Second
	}
}

func applyQuotaDefaults(q *QuotaConfig) {
	if q.Window == 0 {
		q.Window = 30 * 24 * time.Hour
	}
	if q.Plans == nil {
		q.Plans = map[string]int{}
	}
	for tier, limit := range map[string]int{"free": 250, "plus": 2500, "pro": 25000} {
		if _, ok := q.Plans[tier]; !ok {
			q.Plans[tier] = limit
		}
	}
	if q.Costs.Lookup == nil {
		q.Costs.Lookup = intPtr(1)
	}
	if q.Costs.ImportJob == nil {
		q.Costs.ImportJob = intPtr(1)
	}
	if q.Costs.ImportedItem == nil {
		q.Costs.ImportedItem = intPtr(0)
	}
}

func applyWorkerDefaults(w *WorkerConfig) {
	if w.Concurrency == 0 {
		w.Concurrency = 5
	}
	if w.PageDelay == 0 {
		w.PageDelay = 500 * time.Millisecond
	}
	if w.MaxPageDelay == 0 {
		w.MaxPageDelay = 30 * time.Second
	}
	if w.PageCostEstimate == 0 {
		w.PageCostEstimate = 5 * time.Second
	}
	if w.PageRetries == 0 {
		w.PageRetries = 3
	}
	if w.ItemRetries == 0 {
		w.ItemRetries = 2
	}
	if w.MaxJobDuration == 0 {
		w.MaxJobDuration = 2 * time.Hour
	}
	if w.MaxAttempts == 0 {
		w.MaxAttempts = 5
	}
	if w.ReportPartialFailures == nil {
		enabled := true
		w.ReportPartialFailures = &enabled
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.QuotaSweepInterval == 0 {
		s.QuotaSweepInterval = time.Hour
	}
	if s.ReaperInterval == 0 {
		s.ReaperInterval = 5 * time.Minute
	}
	if s.StuckAfter == 0 {
		s.StuckAfter = 3 * time.Hour
	}
	if s.QueueCleanupInterval == 0 {
		s.QueueCleanupInterval = 24 * time.Hour
	}
	if s.QueueRetention == 0 {
		s.QueueRetention = 7 * 24 * time.Hour
	}
}

func applyTracingDefaults(t *TracingConfig) {
	if t.Endpoint == "" {
		t.Endpoint = "localhost:4317"
	}
	if t.ServiceName == "" {
		t.ServiceName = "catalog-importer"
	}
	if t.SampleRatio == 0 {
		t.SampleRatio = 1.0
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

func intPtr(n int) *int { return &n }

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	switch cfg.Queue.Backend {
	case QueueRedis:
		if cfg.Redis.URL == "" {
			errs = append(errs, fmt.Errorf("redis.url is required when queue.backend is redis"))
		}
	case QueuePostgres:
	default:
		errs = append(errs, fmt.Errorf(
			"queue.backend must be one of: redis, postgres (got %q)", cfg.Queue.Backend,
		))
	}

	if cfg.Ebay.PageSize < 1 || cfg.Ebay.PageSize > 200 {
		errs = append(errs, fmt.Errorf("ebay.page_size must be between 1 and 200 (got %d)", cfg.Ebay.PageSize))
	}
	if cfg.Worker.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("worker.concurrency must be positive (got %d)", cfg.Worker.Concurrency))
	}
	if cfg.Worker.MaxPageDelay < cfg.Worker.PageDelay {
		errs = append(errs, fmt.Errorf("worker.max_page_delay must not be below worker.page_delay"))
	}
	if cfg.Schedule.ReaperInterval > 0 && cfg.Schedule.StuckAfter <= cfg.Worker.MaxJobDuration {
		errs = append(errs, fmt.Errorf(
			"schedule.stuck_after (%s) must exceed worker.max_job_duration (%s)",
			cfg.Schedule.StuckAfter, cfg.Worker.MaxJobDuration,
		))
	}

	for tier, limit := range cfg.Quota.Plans {
		if limit < 0 {
			errs = append(errs, fmt.Errorf("quota.plans.%s must not be negative", tier))
		}
	}
	for name, cost := range map[string]*int{
		"lookup":        cfg.Quota.Costs.Lookup,
		"import_job":    cfg.Quota.Costs.ImportJob,
		"imported_item": cfg.Quota.Costs.ImportedItem,
	} {
		if *cost < 0 {
			errs = append(errs, fmt.Errorf("quota.costs.%s must not be negative", name))
		}
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(errs, fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"))
	}
	if cfg.Tracing.SampleRatio < 0 || cfg.Tracing.SampleRatio > 1 {
		errs = append(errs, fmt.Errorf("tracing.sample_ratio must be between 0 and 1"))
	}

	return errors.Join(errs...)
}
