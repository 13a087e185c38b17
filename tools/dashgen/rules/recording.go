package rules

// RecordingRules returns the pre-computed rates used by the dashboard and
// the alert rules.
func RecordingRules() PrometheusRule {
	return newRuleCR("cimp-recording-rules", "cimp-recording",
		record("cimp:http_requests:rate5m", `sum(rate(cimp_http_requests_total[5m]))`),
		record("cimp:http_errors:rate5m", `sum(rate(cimp_http_requests_total{status=~"5.."}[5m]))`),
		record("cimp:import_items:rate5m", `sum(rate(cimp_import_items_total{result="ok"}[5m]))`),
		record("cimp:import_page_failures:rate5m", `sum(rate(cimp_import_page_failures_total[5m]))`),
		record("cimp:quota_denied:rate5m", `sum(rate(cimp_quota_decisions_total{result="denied"}[5m]))`),
		record("cimp:ebay_api_calls:rate5m", `sum(rate(cimp_ebay_api_calls_total[5m]))`),
	)
}
