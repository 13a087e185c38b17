package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	ptestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	"github.com/donaldgifford/ebay-catalog-importer/internal/notify"
	notifyMocks "github.com/donaldgifford/ebay-catalog-importer/internal/notify/mocks"
	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	"github.com/donaldgifford/ebay-catalog-importer/pkg/logger"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

type fakeToucher struct {
	mu      sync.Mutex
	touches int
	err     error
}

func (f *fakeToucher) Touch(context.Context, *queue.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touches++
	return f.err
}

func queuedJob(total int) domain.ImportJob {
	return domain.ImportJob{
		ID:             "job-1",
		ShopDomain:     testShop,
		SellerUsername: "seller1",
		TotalItems:     total,
		PageSize:       50,
		PagesTotal:     domain.PageCount(total, 50),
		Status:         domain.JobQueued,
	}
}

func delivery() *queue.Delivery {
	return &queue.Delivery{
		Message: queue.Message{JobID: "job-1", ShopDomain: testShop, ExternalSellerIdentity: "seller1"},
		ID:      "job-1",
		Attempt: 1,
	}
}

func newTestImporter(jobs JobStore, pages PageFetcher, s *recordingSink, leases LeaseToucher, opts ...ImporterOption) *Importer {
	base := []ImporterOption{
		WithImporterLogger(quietLogger()),
		WithPacer(NewPacer(0, 0)),
		WithRetryPolicies(fastRetry, fastRetry),
	}
	return NewImporter(jobs, pages, s, leases, append(base, opts...)...)
}

func unavailable() error {
	return &domain.HTTPStatusError{
		Service:    "eBay Browse API",
		StatusCode: http.StatusServiceUnavailable,
		Kind:       domain.ErrUpstreamUnavailable,
	}
}

func TestProcess_ImportsEveryPage(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50}
	s := &recordingSink{}
	leases := &fakeToucher{}

	im := newTestImporter(jobs, catalog, s, leases)
	require.NoError(t, im.Process(context.Background(), delivery()))

	assert.Equal(t, []int{0, 1, 2}, catalog.fetchedPages())
	assert.Len(t, catalog.calls, 3, "exactly ceil(120/50) fetches")
	assert.Len(t, s.products, 120)
	assert.Equal(t, 3, leases.touches)

	job := jobs.get("job-1")
	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.Equal(t, 120, job.ItemsImported)
	assert.Equal(t, 3, job.NextPage)
	assert.Empty(t, job.PageFailures)
	assert.Equal(t, 1, job.Attempts)
}

func TestProcess_FailedPageIsRecordedAndSkipped(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50, failPages: map[int]error{1: unavailable()}}
	s := &recordingSink{}

	failuresBefore := ptestutil.ToFloat64(metrics.ImportPageFailuresTotal.WithLabelValues(string(domain.FailureUpstreamUnavailable)))

	im := newTestImporter(jobs, catalog, s, &fakeToucher{},
		WithImporterLogger(logger.NewWithWriter(&logs, "info", "text")),
		WithReportPartialFailures(false),
	)
	require.NoError(t, im.Process(context.Background(), delivery()))

	assert.Equal(t, []int{0, 1, 2}, catalog.fetchedPages())

	job := jobs.get("job-1")
	assert.Equal(t, domain.JobCompleted, job.Status)
	assert.Equal(t, 70, job.ItemsImported)
	assert.Equal(t, 50, job.ItemsFailed)
	require.Len(t, job.PageFailures, 1)
	assert.Equal(t, 1, job.PageFailures[0].Page)
	assert.Equal(t, 50, job.PageFailures[0].Offset)
	assert.Equal(t, domain.FailureUpstreamUnavailable, job.PageFailures[0].Kind)
	assert.NotEmpty(t, job.ErrorText)

	for _, sku := range s.skus() {
		var n int
		_, err := fmt.Sscanf(sku, "v1|%d|0", &n)
		require.NoError(t, err)
		assert.False(t, n >= 50 && n < 100, "item %d from the failed page reached the sink", n)
	}

	failuresAfter := ptestutil.ToFloat64(metrics.ImportPageFailuresTotal.WithLabelValues(string(domain.FailureUpstreamUnavailable)))
	assert.GreaterOrEqual(t, failuresAfter-failuresBefore, 1.0)
	assert.Contains(t, logs.String(), "import page failed")
	assert.Contains(t, logs.String(), "page=1")
	assert.Regexp(t, `msg="import page failed".* job_id=job-1`, logs.String())
}

func TestProcess_PartialFailureStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		failPages map[int]error
		want      domain.JobStatus
	}{
		{name: "some pages imported", failPages: map[int]error{1: unavailable()}, want: domain.JobPartiallyFailed},
		{name: "nothing imported", failPages: map[int]error{0: unavailable(), 1: unavailable(), 2: unavailable()}, want: domain.JobFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			jobs := newMemJobs(queuedJob(120))
			catalog := &fakeCatalog{total: 120, pageSize: 50, failPages: tt.failPages}
			im := newTestImporter(jobs, catalog, &recordingSink{}, &fakeToucher{})

			require.NoError(t, im.Process(context.Background(), delivery()))
			assert.Equal(t, tt.want, jobs.get("job-1").Status)
		})
	}
}

func TestProcess_ResumesAtNextPage(t *testing.T) {
	t.Parallel()

	job := queuedJob(120)
	job.Status = domain.JobRunning
	job.NextPage = 2
	job.ItemsImported = 100
	job.Attempts = 1

	jobs := newMemJobs(job)
	catalog := &fakeCatalog{total: 120, pageSize: 50}
	s := &recordingSink{}

	im := newTestImporter(jobs, catalog, s, &fakeToucher{})
	require.NoError(t, im.Process(context.Background(), delivery()))

	assert.Equal(t, []int{2}, catalog.fetchedPages())
	assert.Len(t, s.products, 20)

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobCompleted, got.Status)
	assert.Equal(t, 120, got.ItemsImported)
	assert.Equal(t, 2, got.Attempts)
}

func TestProcess_AcksWithoutWork(t *testing.T) {
	t.Parallel()

	t.Run("terminal job", func(t *testing.T) {
		t.Parallel()
		job := queuedJob(120)
		job.Status = domain.JobCompleted
		catalog := &fakeCatalog{total: 120, pageSize: 50}

		im := newTestImporter(newMemJobs(job), catalog, &recordingSink{}, &fakeToucher{})
		require.NoError(t, im.Process(context.Background(), delivery()))
		assert.Empty(t, catalog.calls)
	})

	t.Run("unknown job", func(t *testing.T) {
		t.Parallel()
		catalog := &fakeCatalog{total: 120, pageSize: 50}

		im := newTestImporter(newMemJobs(), catalog, &recordingSink{}, &fakeToucher{})
		require.NoError(t, im.Process(context.Background(), delivery()))
		assert.Empty(t, catalog.calls)
	})
}

func TestProcess_AbandonsAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	job := queuedJob(120)
	job.Status = domain.JobRunning
	job.Attempts = 3
	jobs := newMemJobs(job)
	catalog := &fakeCatalog{total: 120, pageSize: 50}

	im := newTestImporter(jobs, catalog, &recordingSink{}, &fakeToucher{}, WithMaxAttempts(3))
	require.NoError(t, im.Process(context.Background(), delivery()))

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobFailed, got.Status)
	assert.Contains(t, got.ErrorText, "abandoned after 3 attempts")
	assert.Empty(t, catalog.calls)
}

func TestProcess_ShutdownLeavesJobForRedelivery(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50}
	leases := &fakeToucher{}

	// Cancel after the first page has been recorded.
	im := newTestImporter(jobs, catalog, &recordingSink{}, touchThenCancel{leases, cancel})
	err := im.Process(ctx, delivery())
	require.ErrorIs(t, err, context.Canceled)

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobRunning, got.Status)
	assert.Equal(t, 1, got.NextPage)
	assert.Equal(t, 50, got.ItemsImported)
	assert.NotContains(t, jobs.finished, "job-1")
}

type touchThenCancel struct {
	*fakeToucher
	cancel context.CancelFunc
}

func (tc touchThenCancel) Touch(ctx context.Context, d *queue.Delivery) error {
	err := tc.fakeToucher.Touch(ctx, d)
	tc.cancel()
	return err
}

func TestProcess_LeaseLost(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50}

	im := newTestImporter(jobs, catalog, &recordingSink{}, &fakeToucher{err: queue.ErrLeaseLost})
	err := im.Process(context.Background(), delivery())
	require.ErrorIs(t, err, errLeaseLost)
	assert.Equal(t, []int{0}, catalog.fetchedPages())
	assert.NotContains(t, jobs.finished, "job-1")
}

// timedToucher records when each lease extension happened.
type timedToucher struct {
	mu    sync.Mutex
	times []time.Time
}

func (tt *timedToucher) Touch(context.Context, *queue.Delivery) error {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.times = append(tt.times, time.Now())
	return nil
}

// longestGap returns the longest stretch without a lease extension,
// starting from since.
func (tt *timedToucher) longestGap(since time.Time) (time.Duration, int) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	var longest time.Duration
	prev := since
	for _, at := range tt.times {
		longest = max(longest, at.Sub(prev))
		prev = at
	}
	return longest, len(tt.times)
}

func TestProcess_HeartbeatExtendsLeaseWithinPage(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(100))
	catalog := &fakeCatalog{total: 100, pageSize: 50}
	// 50 items at 5ms each keep a single page busy for at least 250ms.
	s := &recordingSink{delay: 5 * time.Millisecond}
	leases := &timedToucher{}

	im := newTestImporter(jobs, catalog, s, leases, WithLeaseHeartbeat(10*time.Millisecond))
	start := time.Now()
	require.NoError(t, im.Process(context.Background(), delivery()))

	gap, touches := leases.longestGap(start)
	assert.Greater(t, touches, 2, "lease extended more often than once per page")
	assert.Less(t, gap, 100*time.Millisecond, "longest stretch without a lease extension")
	assert.Equal(t, 100, s.count())
	assert.Equal(t, domain.JobCompleted, jobs.get("job-1").Status)
}

func TestProcess_LeaseLostMidPageStopsForwarding(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(100))
	catalog := &fakeCatalog{total: 100, pageSize: 50}
	s := &recordingSink{delay: 5 * time.Millisecond}

	im := newTestImporter(jobs, catalog, s, &fakeToucher{err: queue.ErrLeaseLost},
		WithLeaseHeartbeat(20*time.Millisecond))
	err := im.Process(context.Background(), delivery())
	require.ErrorIs(t, err, errLeaseLost)

	assert.Less(t, s.count(), 50, "forwarding stops before the first page completes")
	got := jobs.get("job-1")
	assert.Equal(t, 0, got.NextPage, "no progress recorded after the lease was lost")
	assert.NotContains(t, jobs.finished, "job-1")
}

func TestProcess_DeadlineFailsRemainingPages(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50}

	im := newTestImporter(jobs, catalog, &recordingSink{}, &fakeToucher{}, WithMaxJobDuration(time.Nanosecond))
	require.NoError(t, im.Process(context.Background(), delivery()))

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobFailed, got.Status)
	require.Len(t, got.PageFailures, 3)
	for _, f := range got.PageFailures {
		assert.Equal(t, domain.FailureDeadlineExceeded, f.Kind)
	}
	assert.Equal(t, 120, got.ItemsFailed)
}

func TestProcess_PerItemQuotaStopsImport(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50}
	s := &recordingSink{}
	ledger := &fakeLedger{limit: 60}

	im := newTestImporter(jobs, catalog, s, &fakeToucher{}, WithItemCharge(ledger, 1))
	require.NoError(t, im.Process(context.Background(), delivery()))

	assert.Equal(t, []int{0, 1}, catalog.fetchedPages())
	assert.Len(t, s.products, 60)
	assert.Equal(t, 60, ledger.Used())

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobPartiallyFailed, got.Status)
	assert.Equal(t, 60, got.ItemsImported)
	assert.Equal(t, 60, got.ItemsFailed)
	require.Len(t, got.PageFailures, 2)
	assert.Equal(t, domain.FailureQuotaExceeded, got.PageFailures[0].Kind)
	assert.Equal(t, domain.FailureQuotaExceeded, got.PageFailures[1].Kind)
	assert.Equal(t, 2, got.PageFailures[1].Page)
}

func TestProcess_ForwardFailureRefundsItemCharge(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(10))
	catalog := &fakeCatalog{total: 10, pageSize: 50}
	s := &recordingSink{err: &domain.HTTPStatusError{
		Service:    "product proxy",
		StatusCode: http.StatusUnprocessableEntity,
		Kind:       domain.ErrDownstreamForward,
	}}
	ledger := &fakeLedger{limit: 100}

	im := newTestImporter(jobs, catalog, s, &fakeToucher{}, WithItemCharge(ledger, 1))
	require.NoError(t, im.Process(context.Background(), delivery()))

	assert.Equal(t, 0, ledger.Used())
	assert.Len(t, ledger.releases, 10)

	got := jobs.get("job-1")
	assert.Equal(t, domain.JobFailed, got.Status)
	require.Len(t, got.PageFailures, 1)
	assert.Equal(t, domain.FailureDownstream, got.PageFailures[0].Kind)
	assert.Equal(t, 10, got.ItemsFailed)
}

func TestProcess_NotifiesOnFinish(t *testing.T) {
	t.Parallel()

	jobs := newMemJobs(queuedJob(120))
	catalog := &fakeCatalog{total: 120, pageSize: 50, failPages: map[int]error{2: unavailable()}}

	mn := notifyMocks.NewMockNotifier(t)
	mn.EXPECT().JobFinished(mock.Anything, mock.MatchedBy(func(s *notify.JobSummary) bool {
		return s.JobID == "job-1" &&
			s.Status == domain.JobPartiallyFailed &&
			s.ItemsImported == 100 &&
			s.ItemsFailed == 20 &&
			s.PagesFailed == 1
	})).Return(errors.New("webhook down"))

	im := newTestImporter(jobs, catalog, &recordingSink{}, &fakeToucher{}, WithNotifier(mn))
	require.NoError(t, im.Process(context.Background(), delivery()), "notification failures do not fail the job")
}
