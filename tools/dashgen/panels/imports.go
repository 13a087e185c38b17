package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// JobOutcomes returns a timeseries panel showing import jobs created and
// finished, by terminal status.
func JobOutcomes() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Import Jobs").
		Description("Jobs created and finished per minute, by terminal status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(cimp_import_jobs_created_total{job="`+Job+`"}[5m])) * 60`,
			"created", "A",
		)).
		WithTarget(PromQuery(
			`sum by (status) (rate(cimp_import_jobs_finished_total{job="`+Job+`"}[5m])) * 60`,
			"{{status}}", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ItemsRate returns a timeseries panel showing products created per minute.
func ItemsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Items / min").
		Description("Listings turned into draft products per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`cimp:import_items:rate5m * 60`, "items/min", "A")).
		WithTarget(PromQuery(
			`sum(rate(cimp_import_items_total{job="`+Job+`",result="failed"}[5m])) * 60`,
			"failed/min", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PageFailures returns a timeseries panel showing failed pages by kind.
func PageFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Page Failures").
		Description("Pages that did not fully import, by failure kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (kind) (rate(cimp_import_page_failures_total{job="`+Job+`"}[5m])) * 60`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// JobDuration returns a timeseries panel showing the p95 import job duration.
func JobDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Job Duration (p95)").
		Description("95th percentile wall time from first page to terminal status").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(p95("cimp_import_job_duration_seconds"), "p95", "A")).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// PacerDelay returns a stat panel showing the current inter-page delay,
// which grows when eBay or the downstream proxy push back.
func PacerDelay() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Pacer Delay").
		Description("Current delay between pages across all workers").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`max(`+sel("cimp_import_pacer_delay_seconds")+`)`, "", "A")).
		Unit("s").
		Thresholds(ThresholdsGreenYellowRed(5, 30)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}

// QueueActivity returns a timeseries panel showing publishes by result and
// deliveries by kind.
func QueueActivity() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Work Queue").
		Description("Publishes by result and deliveries by kind (new, redelivered, dead_lettered)").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum by (result) (rate(cimp_queue_publish_total{job="`+Job+`"}[5m])) * 60`,
			"publish {{result}}", "A",
		)).
		WithTarget(PromQuery(
			`sum by (kind) (rate(cimp_queue_deliveries_total{job="`+Job+`"}[5m])) * 60`,
			"deliver {{kind}}", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
