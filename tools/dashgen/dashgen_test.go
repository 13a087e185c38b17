package main

import (
	"maps"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/ebay-catalog-importer/tools/dashgen/dashboards"
	"github.com/donaldgifford/ebay-catalog-importer/tools/dashgen/rules"
	"github.com/donaldgifford/ebay-catalog-importer/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	require.NotNil(t, dash.Uid)
	assert.Equal(t, "cimp-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "Catalog Importer Overview", *dash.Title)

	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	assert.Len(t, dash.Panels, 6)

	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 22, totalPanels)

	// Recording rule names are known up front in KnownMetrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "cimp-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "cimp-recording", group.Name)

	expectedRecords := []string{
		"cimp:http_requests:rate5m",
		"cimp:http_errors:rate5m",
		"cimp:import_items:rate5m",
		"cimp:import_page_failures:rate5m",
		"cimp:quota_denied:rate5m",
		"cimp:ebay_api_calls:rate5m",
	}
	require.Len(t, group.Rules, len(expectedRecords))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.True(t, KnownMetrics[rule.Record], "%s missing from KnownMetrics", rule.Record)
	}

	result := validate.Rules(cr, maps.Clone(KnownMetrics))
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "cimp-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "cimp-alerts", group.Name)

	expectedAlerts := []string{
		"CimpDown",
		"CimpReadinessDown",
		"CimpHighErrorRate",
		"CimpHandlerPanics",
		"CimpImportPageFailures",
		"CimpImportLeasesLost",
		"CimpDeadLetteredJobs",
		"CimpEbayQuotaHigh",
		"CimpEbayLimitReached",
		"CimpNotificationFailures",
	}
	require.Len(t, group.Rules, len(expectedAlerts))
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.Rules(cr, maps.Clone(KnownMetrics))
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestAlertRules_Severities(t *testing.T) {
	t.Parallel()

	critical := map[string]bool{
		"CimpDown":             true,
		"CimpReadinessDown":    true,
		"CimpEbayLimitReached": true,
	}
	for _, rule := range rules.AlertRules().Spec.Groups[0].Rules {
		want := rules.SeverityWarning
		if critical[rule.Alert] {
			want = rules.SeverityCritical
		}
		assert.Equal(t, string(want), rule.Labels["severity"], rule.Alert)
	}
}

func TestRuleCRsAreSelectedByPrometheus(t *testing.T) {
	t.Parallel()

	for _, cr := range []rules.PrometheusRule{rules.RecordingRules(), rules.AlertRules()} {
		assert.Equal(t, "PrometheusRule", cr.Kind)
		assert.Equal(t, "system-rules-prometheus", cr.Metadata.Labels["prometheus"], cr.Metadata.Name)
	}
}

func TestValidateExpr(t *testing.T) {
	t.Parallel()

	known := map[string]bool{"cimp_http_request_duration_seconds": true}

	tests := []struct {
		name     string
		expr     string
		wantErrs int
	}{
		{name: "histogram bucket", expr: `sum(rate(cimp_http_request_duration_seconds_bucket[5m])) by (le)`},
		{name: "unknown metric", expr: `rate(cimp_missing_total[5m])`, wantErrs: 1},
		{name: "syntax error", expr: `sum(rate(`, wantErrs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Len(t, validate.Expr("test", tt.expr, known).Errors, tt.wantErrs)
		})
	}
}

func TestRun_WritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, run(Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}, false))

	for _, rel := range []string{
		"grafana/data/cimp-overview.json",
		"prometheus/cimp-recording-rules.yaml",
		"prometheus/cimp-alerts.yaml",
	} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, rel)
		assert.NotEmpty(t, data, rel)
	}

	alerts, err := os.ReadFile(filepath.Join(dir, "prometheus", "cimp-alerts.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(alerts), generatedHeader)
}
