package rules

// AlertRules returns the operational alerts for the catalog importer.
func AlertRules() PrometheusRule {
	return newRuleCR("cimp-alerts", "cimp-alerts",
		alert("CimpDown", SeverityCritical,
			`absent(up{job="catalog-importer"})`, "2m",
			"Catalog importer is down",
			"The catalog-importer job has been absent for more than 2 minutes."),
		alert("CimpReadinessDown", SeverityCritical,
			`cimp_readyz_up == 0`, "2m",
			"Catalog importer readiness check is failing",
			"The database or work queue has been unreachable for more than 2 minutes."),
		alert("CimpHighErrorRate", SeverityWarning,
			`cimp:http_errors:rate5m / cimp:http_requests:rate5m > 0.05`, "5m",
			"High HTTP error rate on the catalog importer",
			"More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes."),
		alert("CimpHandlerPanics", SeverityWarning,
			`sum by (path) (increase(cimp_http_panics_total[10m])) > 0`, "0m",
			"An API handler panicked",
			"A handler on {{ $labels.path }} panicked and was recovered. Search the logs for \"handler panicked\" and the request ID."),
		alert("CimpImportPageFailures", SeverityWarning,
			`cimp:import_page_failures:rate5m > 0.1`, "10m",
			"Import pages are failing",
			"Import pages have been failing at more than 0.1/s for 10 minutes. Check cimp_import_page_failures_total by kind."),
		alert("CimpImportLeasesLost", SeverityWarning,
			`increase(cimp_import_leases_lost_total[30m]) > 2`, "0m",
			"Import jobs are losing their queue lease",
			"Workers are stopping jobs because another worker reclaimed them. Raise queue.visibility or check for stalled workers."),
		alert("CimpDeadLetteredJobs", SeverityWarning,
			`increase(cimp_queue_deliveries_total{kind="dead_lettered"}[15m]) > 0`, "0m",
			"Import jobs were dead-lettered",
			"One or more queue entries could not be decoded and were moved aside."),
		alert("CimpEbayQuotaHigh", SeverityWarning,
			`cimp_ebay_daily_usage > 4000`, "5m",
			"eBay API daily usage is above 80% of the quota",
			"Daily eBay API usage has exceeded 4000 calls (limit is 5000)."),
		alert("CimpEbayLimitReached", SeverityCritical,
			`increase(cimp_ebay_daily_limit_hits_total[5m]) > 0`, "0m",
			"eBay API daily limit has been reached",
			"The eBay Browse API daily budget is exhausted. Lookups and import pages fail until reset."),
		alert("CimpNotificationFailures", SeverityWarning,
			`increase(cimp_notification_failures_total[5m]) > 0`, "1m",
			"Notification delivery failures detected",
			"One or more import completion notifications (Discord webhooks) have failed to send."),
	)
}
