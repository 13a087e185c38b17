package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// ProxyLatency returns a timeseries panel showing product-creation proxy
// latency and non-2xx responses.
func ProxyLatency() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Proxy Latency (p95)").
		Description("95th percentile latency of draft product creation calls").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(p95("cimp_proxy_request_duration_seconds"), "p95", "A")).
		WithTarget(PromQuery(
			`sum by (status) (rate(cimp_proxy_requests_total{job="`+Job+`",status!~"2.."}[5m]))`,
			"{{status}}", "B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SchedulerFailures returns a stat panel showing maintenance task runs that
// failed in the last 24 hours.
func SchedulerFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Scheduler Failures (24h)").
		Description("Failed quota sweep, stuck job reaper and queue cleanup runs").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(increase(cimp_scheduler_runs_total{job="`+Job+`",status=~"failed|error"}[24h]))`,
			"", "A",
		)).
		Thresholds(ThresholdsGreenYellowRed(1, 3)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// NotificationFailures returns a stat panel showing notification failures
// in the past 24 hours.
func NotificationFailures() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Notification Failures (24h)").
		Description("Failed import completion notifications (Discord webhooks) in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(cimp_notification_failures_total{job="`+Job+`"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 5)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
