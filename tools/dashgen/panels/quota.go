package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// QuotaDecisions returns a timeseries panel showing admission decisions.
func QuotaDecisions() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Quota Decisions").
		Description("Billable requests admitted, denied or errored, per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum by (result) (rate(cimp_quota_decisions_total{job="`+Job+`"}[5m])) * 60`,
			"{{result}}", "A",
		)).
		WithTarget(PromQuery(
			`sum(rate(cimp_quota_releases_total{job="`+Job+`"}[5m])) * 60`,
			"refunded", "B",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("sum")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// WindowResets returns a stat panel showing tenant quota windows rolled
// over in the last 24 hours.
func WindowResets() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Window Resets (24h)").
		Description("Tenant quota windows rolled over by the sweep or on access").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(`increase(cimp_quota_window_resets_total{job="`+Job+`"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds()).
		GraphMode(common.BigValueGraphModeArea)
}
