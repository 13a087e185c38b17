package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, QuotaDecisionsTotal)
	assert.NotNil(t, QuotaReleasesTotal)
	assert.NotNil(t, QuotaWindowResetsTotal)
	assert.NotNil(t, ImportJobsCreatedTotal)
	assert.NotNil(t, ImportJobsFinishedTotal)
	assert.NotNil(t, ImportJobsActive)
	assert.NotNil(t, ImportJobDuration)
	assert.NotNil(t, ImportPagesTotal)
	assert.NotNil(t, ImportPageFailuresTotal)
	assert.NotNil(t, ImportItemsTotal)
	assert.NotNil(t, ImportPacerDelay)
	assert.NotNil(t, QueuePublishTotal)
	assert.NotNil(t, QueueDeliveriesTotal)
	assert.NotNil(t, EbayAPICallsTotal)
	assert.NotNil(t, EbayTokenRefreshesTotal)
	assert.NotNil(t, ProxyRequestsTotal)
	assert.NotNil(t, SchedulerRunsTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
}

func TestVectorsAcceptLabels(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(ImportPageFailuresTotal.WithLabelValues("metrics_test"))
	ImportPageFailuresTotal.WithLabelValues("metrics_test").Inc()
	assert.InDelta(t, before+1, testutil.ToFloat64(ImportPageFailuresTotal.WithLabelValues("metrics_test")), 0.001)
}
