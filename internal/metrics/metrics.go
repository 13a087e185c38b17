// Package metrics defines Prometheus metrics for the catalog importer.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cimp"

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status"})

	HTTPPanicsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_panics_total",
		Help:      "Total number of handler panics recovered, by route.",
	}, []string{"path"})
)

// Health metrics.
var (
	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 when the liveness probe last succeeded.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 when the readiness probe last succeeded.",
	})
)

// Quota metrics.
var (
	QuotaDecisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_decisions_total",
		Help:      "Quota reservations by result (allowed, denied, error).",
	}, []string{"result"})

	QuotaReleasesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_releases_total",
		Help:      "Total number of refunded quota reservations.",
	})

	QuotaWindowResetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_window_resets_total",
		Help:      "Total number of tenant quota windows rolled over.",
	})
)

// Import metrics.
var (
	ImportJobsCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_jobs_created_total",
		Help:      "Total number of import jobs accepted and queued.",
	})

	ImportJobsFinishedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_jobs_finished_total",
		Help:      "Total number of import jobs finalized, by terminal status.",
	}, []string{"status"})

	ImportJobsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_jobs_active",
		Help:      "Number of import jobs currently being processed by this process.",
	})

	ImportJobDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "import_job_duration_seconds",
		Help:      "Wall-clock duration of import job processing.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 14), // 1s .. ~2.3h
	})

	ImportPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_pages_total",
		Help:      "Total number of import pages processed, by result (ok, failed).",
	}, []string{"result"})

	ImportPageFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_page_failures_total",
		Help:      "Total number of import pages recorded as failed, by failure kind.",
	}, []string{"kind"})

	ImportItemsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_items_total",
		Help:      "Total number of items forwarded downstream, by result (ok, failed).",
	}, []string{"result"})

	ImportPacerDelay = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "import_pacer_delay_seconds",
		Help:      "Most recent inter-page delay chosen by the adaptive pacer.",
	})
)

// Queue metrics.
var (
	QueuePublishTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queue_publish_total",
		Help:      "Total number of queue publishes, by result (ok, duplicate, error).",
	}, []string{"result"})

	ImportLeasesLostTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_leases_lost_total",
		Help:      "Total number of import deliveries whose lease was taken over while running.",
	})

	QueueDeliveriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "queue_deliveries_total",
		Help:      "Total number of queue deliveries, by kind (new, redelivered).",
	}, []string{"kind"})
)

// eBay API metrics.
var (
	EbayAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_api_calls_total",
		Help:      "Total cumulative eBay API calls.",
	})

	EbayDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "ebay_daily_usage",
		Help:      "Current daily eBay API call count within the rolling 24-hour window.",
	})

	EbayDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_daily_limit_hits_total",
		Help:      "Total number of times the daily eBay API limit was reached.",
	})

	EbayTokenRefreshesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_token_refreshes_total",
		Help:      "Total number of eBay client-credential exchanges, by result.",
	}, []string{"result"})

	EbayErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ebay_errors_total",
		Help:      "Total number of non-success eBay Browse responses, by status code.",
	}, []string{"status"})
)

// Downstream proxy metrics.
var (
	ProxyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "proxy_requests_total",
		Help:      "Total number of product proxy requests, by status code.",
	}, []string{"status"})

	ProxyRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "proxy_request_duration_seconds",
		Help:      "Duration of product proxy requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Scheduler and notification metrics.
var (
	SchedulerRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scheduler_runs_total",
		Help:      "Total number of scheduled task runs, by task and status.",
	}, []string{"task", "status"})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of job notification webhook calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	NotificationFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures.",
	})
)
