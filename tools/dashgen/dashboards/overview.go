// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/ebay-catalog-importer/tools/dashgen/panels"
)

// BuildOverview constructs the Catalog Importer overview dashboard.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("Catalog Importer Overview").
		Uid("cimp-overview").
		Tags([]string{"cimp", "catalog-importer"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.EbayQuotaGauge()).
		WithPanel(panels.ActiveImports()))

	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	b.WithRow(dashboard.NewRowBuilder("Imports").
		WithPanel(panels.JobOutcomes()).
		WithPanel(panels.ItemsRate()).
		WithPanel(panels.PageFailures()).
		WithPanel(panels.JobDuration()).
		WithPanel(panels.PacerDelay()).
		WithPanel(panels.QueueActivity()))

	b.WithRow(dashboard.NewRowBuilder("Tenant Quota").
		WithPanel(panels.QuotaDecisions()).
		WithPanel(panels.WindowResets()))

	b.WithRow(dashboard.NewRowBuilder("eBay API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.UpstreamErrors()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Operations").
		WithPanel(panels.ProxyLatency()).
		WithPanel(panels.SchedulerFailures()).
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
