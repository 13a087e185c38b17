package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/donaldgifford/ebay-catalog-importer/internal/config"
	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
	"github.com/donaldgifford/ebay-catalog-importer/internal/notify"
	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	"github.com/donaldgifford/ebay-catalog-importer/internal/sink"
	"github.com/donaldgifford/ebay-catalog-importer/internal/store"
	"github.com/donaldgifford/ebay-catalog-importer/internal/telemetry"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// app holds every long-lived component of one process.
type app struct {
	cfg *config.Config
	log *slog.Logger

	store     *store.PostgresStore
	redis     *redis.Client
	queue     queue.Queue
	ledger    *quota.Ledger
	limiter   *ebay.RateLimiter
	analytics *ebay.AnalyticsClient
	paginator *ebay.Paginator
	service   *engine.Service
	importer  *engine.Importer

	shutdownTracing telemetry.ShutdownFunc
}

func newApp(ctx context.Context, cfg *config.Config, log *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log}

	shutdown, err := telemetry.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return nil, fmt.Errorf("setting up tracing: %w", err)
	}
	a.shutdownTracing = shutdown

	a.store, err = store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithMaxConns(int32(cfg.Database.PoolSize))) //nolint:gosec // bounded by config validation
	if err != nil {
		a.close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := a.buildQueue(ctx); err != nil {
		a.close()
		return nil, err
	}

	a.ledger = quota.NewLedger(a.store,
		quota.WithPlans(planLimits(cfg.Quota.Plans)),
		quota.WithWindow(cfg.Quota.Window),
		quota.WithLogger(log),
	)

	tokens := ebay.NewOAuthTokenProvider(cfg.Ebay.AppID, cfg.Ebay.CertID,
		ebay.WithTokenURL(cfg.Ebay.TokenURL),
	)
	a.limiter = ebay.NewRateLimiter(cfg.Ebay.RateLimit.PerSecond, cfg.Ebay.RateLimit.Burst, cfg.Ebay.RateLimit.DailyLimit)
	browse := ebay.NewBrowseClient(tokens,
		ebay.WithBrowseURL(cfg.Ebay.BrowseURL),
		ebay.WithMarketplace(cfg.Ebay.Marketplace),
		ebay.WithRateLimiter(a.limiter),
	)
	a.paginator = ebay.NewPaginator(browse,
		ebay.WithPageSize(cfg.Ebay.PageSize),
		ebay.WithQuery(cfg.Ebay.SellerQuery),
		ebay.WithPaginatorLogger(log),
	)
	a.analytics = ebay.NewAnalyticsClient(tokens,
		ebay.WithAnalyticsURL(cfg.Ebay.AnalyticsURL),
		ebay.WithBudgetObserver(a.limiter.Sync),
	)

	costs := quotaCosts(cfg.Quota.Costs)
	admission := engine.NewAdmissionController(a.store, a.ledger, log)
	intake := engine.NewIntake(a.paginator, a.store, a.queue,
		engine.WithIntakeLogger(log),
		engine.WithETAEstimate(cfg.Worker.PageDelay, cfg.Worker.PageCostEstimate),
	)
	a.service = engine.NewService(admission, a.paginator, intake, costs, log)

	importerOpts := []engine.ImporterOption{
		engine.WithImporterLogger(log),
		engine.WithNotifier(a.notifier()),
		engine.WithPacer(engine.NewPacer(cfg.Worker.PageDelay, cfg.Worker.MaxPageDelay)),
		engine.WithRetryPolicies(
			engine.RetryPolicy{
				Retries:         cfg.Worker.PageRetries,
				InitialInterval: engine.DefaultPageRetry.InitialInterval,
				MaxInterval:     engine.DefaultPageRetry.MaxInterval,
			},
			engine.RetryPolicy{
				Retries:         cfg.Worker.ItemRetries,
				InitialInterval: engine.DefaultItemRetry.InitialInterval,
				MaxInterval:     engine.DefaultItemRetry.MaxInterval,
			},
		),
		engine.WithMaxJobDuration(cfg.Worker.MaxJobDuration),
		engine.WithMaxAttempts(cfg.Worker.MaxAttempts),
		engine.WithLeaseHeartbeat(cfg.Queue.Visibility / 3),
		engine.WithReportPartialFailures(*cfg.Worker.ReportPartialFailures),
	}
	if costs.ImportedItem > 0 {
		importerOpts = append(importerOpts, engine.WithItemCharge(a.ledger, costs.ImportedItem))
	}
	products := sink.NewProxySink(cfg.Proxy.URL, cfg.Proxy.InternalSecret,
		sink.WithHTTPClient(&http.Client{Timeout: cfg.Proxy.Timeout}),
	)
	a.importer = engine.NewImporter(a.store, a.paginator, products, a.queue, importerOpts...)

	return a, nil
}

func (a *app) buildQueue(ctx context.Context) error {
	qc := a.cfg.Queue
	switch qc.Backend {
	case config.QueuePostgres:
		a.queue = queue.NewPostgresQueue(a.store,
			queue.WithLeaseVisibility(qc.Visibility),
			queue.WithLeasePollInterval(qc.PollInterval),
			queue.WithPostgresLogger(a.log),
		)
	default:
		client, err := queue.NewRedisClient(ctx, a.cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		a.redis = client
		rq, err := queue.NewRedisQueue(ctx, client,
			queue.WithStream(qc.Stream),
			queue.WithGroup(qc.Group),
			queue.WithVisibility(qc.Visibility),
			queue.WithPollInterval(qc.PollInterval),
			queue.WithDedupeTTL(qc.DedupeTTL),
			queue.WithRedisLogger(a.log),
		)
		if err != nil {
			return fmt.Errorf("creating redis queue: %w", err)
		}
		a.queue = rq
	}
	a.log.Info("work queue ready", "backend", qc.Backend)
	return nil
}

func (a *app) notifier() notify.Notifier {
	if a.cfg.Notifications.Discord.Enabled {
		return notify.NewDiscordNotifier(a.cfg.Notifications.Discord.WebhookURL)
	}
	return notify.NewNoOpNotifier(a.log)
}

// newScheduler builds the maintenance scheduler over the app's store.
func (a *app) newScheduler() (*engine.Scheduler, error) {
	return engine.NewScheduler(a.store, a.ledger, scheduleConfig(a.cfg.Schedule), a.log)
}

// newPool builds the worker pool over the app's queue.
func (a *app) newPool() *engine.Pool {
	return engine.NewPool(a.queue, a.importer,
		engine.WithWorkers(a.cfg.Worker.Concurrency),
		engine.WithPoolLogger(a.log),
	)
}

func (a *app) close() {
	switch {
	case a.queue != nil:
		if err := a.queue.Close(); err != nil {
			a.log.Warn("closing queue", "error", err)
		}
	case a.redis != nil:
		_ = a.redis.Close()
	}
	if a.store != nil {
		a.store.Close()
	}
	if a.shutdownTracing != nil {
		if err := a.shutdownTracing(context.Background()); err != nil {
			a.log.Warn("flushing traces", "error", err)
		}
	}
}

func planLimits(plans map[string]int) quota.Plans {
	out := make(quota.Plans, len(plans))
	for tier, limit := range plans {
		out[domain.PlanTier(tier)] = limit
	}
	return out
}

func quotaCosts(c config.CostsConfig) quota.Costs {
	costs := quota.DefaultCosts()
	if c.Lookup != nil {
		costs.Lookup = *c.Lookup
	}
	if c.ImportJob != nil {
		costs.ImportJob = *c.ImportJob
	}
	if c.ImportedItem != nil {
		costs.ImportedItem = *c.ImportedItem
	}
	return costs
}

// scheduleConfig maps config intervals onto the scheduler, which skips
// tasks whose interval is not positive.
func scheduleConfig(s config.ScheduleConfig) engine.ScheduleConfig {
	return engine.ScheduleConfig{
		QuotaSweepInterval:   s.QuotaSweepInterval,
		ReaperInterval:       s.ReaperInterval,
		StuckAfter:           s.StuckAfter,
		QueueCleanupInterval: s.QueueCleanupInterval,
		QueueRetention:       s.QueueRetention,
	}
}
