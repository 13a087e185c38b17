package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	"github.com/donaldgifford/ebay-catalog-importer/internal/notify"
	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	"github.com/donaldgifford/ebay-catalog-importer/internal/sink"
	"github.com/donaldgifford/ebay-catalog-importer/pkg/logger"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	tracerName = "github.com/donaldgifford/ebay-catalog-importer/internal/engine"

	defaultMaxJobDuration = 2 * time.Hour
	defaultMaxAttempts    = 5
	defaultLeaseHeartbeat = queue.DefaultVisibility / 3
)

// JobStore is the job persistence the importer needs.
type JobStore interface {
	GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error)
	MarkJobRunning(ctx context.Context, id string) (*domain.ImportJob, error)
	RecordPageProgress(ctx context.Context, id string, p domain.PageProgress) error
	FinishImportJob(ctx context.Context, id string, status domain.JobStatus, errText string) error
}

// PageFetcher fetches one page of a seller's listings. *ebay.Paginator
// implements it.
type PageFetcher interface {
	Page(ctx context.Context, seller string, n, size int) (*ebay.SearchResponse, error)
}

// LeaseToucher extends the lease on a delivery while a job is running.
type LeaseToucher interface {
	Touch(ctx context.Context, d *queue.Delivery) error
}

// Importer processes one import job delivery: it walks the seller's pages
// from the job's resume cursor, forwards every listing as a product, and
// persists progress after each page.
type Importer struct {
	jobs     JobStore
	pages    PageFetcher
	sink     sink.ProductSink
	leases   LeaseToucher
	pacer    *Pacer
	notifier notify.Notifier
	charger  QuotaReserver
	log      *slog.Logger

	itemCost              int
	pageRetry             RetryPolicy
	itemRetry             RetryPolicy
	maxJobDuration        time.Duration
	maxAttempts           int
	leaseHeartbeat        time.Duration
	reportPartialFailures bool
	now                   func() time.Time
}

// ImporterOption configures the Importer.
type ImporterOption func(*Importer)

// WithImporterLogger sets a custom logger.
func WithImporterLogger(l *slog.Logger) ImporterOption {
	return func(im *Importer) {
		im.log = l
	}
}

// WithNotifier sets the notifier told about finished jobs.
func WithNotifier(n notify.Notifier) ImporterOption {
	return func(im *Importer) {
		im.notifier = n
	}
}

// WithPacer shares a pacer between importers.
func WithPacer(p *Pacer) ImporterOption {
	return func(im *Importer) {
		im.pacer = p
	}
}

// WithItemCharge charges cost quota units per forwarded item through r.
// A zero cost disables per-item charging.
func WithItemCharge(r QuotaReserver, cost int) ImporterOption {
	return func(im *Importer) {
		im.charger = r
		im.itemCost = cost
	}
}

// WithRetryPolicies sets the page fetch and product forward retry policies.
func WithRetryPolicies(page, item RetryPolicy) ImporterOption {
	return func(im *Importer) {
		im.pageRetry = page
		im.itemRetry = item
	}
}

// WithMaxJobDuration bounds the wall-clock time of a single job.
func WithMaxJobDuration(d time.Duration) ImporterOption {
	return func(im *Importer) {
		if d > 0 {
			im.maxJobDuration = d
		}
	}
}

// WithMaxAttempts fails a job that has been started this many times
// without finishing. Zero disables the check.
func WithMaxAttempts(n int) ImporterOption {
	return func(im *Importer) {
		im.maxAttempts = n
	}
}

// WithLeaseHeartbeat sets how often the delivery lease is extended while a
// job runs. It must be well below the queue's visibility timeout.
func WithLeaseHeartbeat(d time.Duration) ImporterOption {
	return func(im *Importer) {
		if d > 0 {
			im.leaseHeartbeat = d
		}
	}
}

// WithReportPartialFailures controls whether a job with failed pages ends
// as partially_failed (true) or completed (false).
func WithReportPartialFailures(enabled bool) ImporterOption {
	return func(im *Importer) {
		im.reportPartialFailures = enabled
	}
}

// NewImporter creates an Importer.
func NewImporter(
	jobs JobStore,
	pages PageFetcher,
	s sink.ProductSink,
	leases LeaseToucher,
	opts ...ImporterOption,
) *Importer {
	im := &Importer{
		jobs:                  jobs,
		pages:                 pages,
		sink:                  s,
		leases:                leases,
		log:                   slog.Default(),
		pageRetry:             DefaultPageRetry,
		itemRetry:             DefaultItemRetry,
		maxJobDuration:        defaultMaxJobDuration,
		maxAttempts:           defaultMaxAttempts,
		leaseHeartbeat:        defaultLeaseHeartbeat,
		reportPartialFailures: true,
		now:                   time.Now,
	}
	for _, opt := range opts {
		opt(im)
	}
	if im.pacer == nil {
		im.pacer = NewPacer(defaultPageDelay, defaultMaxPageDelay)
	}
	return im
}

// jobRun accumulates the outcome of one Process call on top of the
// counters the job already had.
type jobRun struct {
	job      *domain.ImportJob
	imported int
	failed   int
	failures []domain.PageFailure
}

func (r *jobRun) record(p domain.PageProgress) {
	r.imported += p.ItemsImported
	r.failed += p.ItemsFailed
	if p.Failure != nil {
		r.failures = append(r.failures, *p.Failure)
	}
}

// errLeaseLost stops a job whose delivery has been taken over.
var errLeaseLost = errors.New("import lease lost")

// Process runs the job behind d. A nil error means the delivery can be
// acked: the job finished, was already terminal, or no longer exists. A
// non-nil error leaves the delivery un-acked so it is redelivered and the
// job resumes from its last recorded page.
func (im *Importer) Process(ctx context.Context, d *queue.Delivery) error {
	id := d.Message.JobID
	ctx = logger.WithAttrs(ctx, "job_id", id, "shop", d.Message.ShopDomain)
	log := im.log.With("job_id", id, "shop", d.Message.ShopDomain, "attempt", d.Attempt)

	job, err := im.jobs.GetImportJob(ctx, id)
	if errors.Is(err, domain.ErrJobNotFound) {
		log.Warn("dropping delivery for unknown job")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading job %s: %w", id, err)
	}

	if job.Status.Terminal() {
		log.Debug("job already finished, acknowledging redelivery", "status", job.Status)
		return nil
	}

	if im.maxAttempts > 0 && job.Attempts >= im.maxAttempts {
		reason := fmt.Sprintf("abandoned after %d attempts", job.Attempts)
		if err := im.jobs.FinishImportJob(ctx, id, domain.JobFailed, reason); err != nil {
			return fmt.Errorf("failing abandoned job %s: %w", id, err)
		}
		metrics.ImportJobsFinishedTotal.WithLabelValues(string(domain.JobFailed)).Inc()
		log.Error("import job abandoned", "attempts", job.Attempts)
		im.notify(ctx, job, domain.JobFailed, reason, 0)
		return nil
	}

	job, err = im.jobs.MarkJobRunning(ctx, id)
	if err != nil {
		return fmt.Errorf("starting job %s: %w", id, err)
	}

	ctx, stop := context.WithCancelCause(ctx)
	leaseDone := im.keepLease(ctx, stop, d, log)
	defer func() {
		stop(nil)
		<-leaseDone
	}()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "import.job")
	defer span.End()
	span.SetAttributes(
		attribute.String("job.id", id),
		attribute.String("shop.domain", job.ShopDomain),
		attribute.Int("job.total_items", job.TotalItems),
		attribute.Int("job.next_page", job.NextPage),
	)

	metrics.ImportJobsActive.Inc()
	defer metrics.ImportJobsActive.Dec()
	start := im.now()

	jobCtx, cancel := context.WithTimeout(ctx, im.maxJobDuration)
	defer cancel()

	run := &jobRun{job: job}
	pages := domain.PageCount(job.TotalItems, job.PageSize)
	log.Info("import job started", "pages", pages, "next_page", job.NextPage)

	for page := job.NextPage; page < pages; page++ {
		if ctx.Err() != nil {
			log.Info("import interrupted, leaving job for redelivery", "page", page, "cause", context.Cause(ctx))
			return context.Cause(ctx)
		}
		if jobCtx.Err() != nil {
			if err := im.failRemaining(ctx, run, page, pages, domain.FailureDeadlineExceeded,
				"job exceeded its time budget"); err != nil {
				return err
			}
			break
		}

		progress, stop := im.processPage(jobCtx, run.job, page)
		if ctx.Err() != nil {
			log.Info("import interrupted mid-page, leaving job for redelivery", "page", page, "cause", context.Cause(ctx))
			return context.Cause(ctx)
		}

		if err := im.jobs.RecordPageProgress(ctx, id, progress); err != nil {
			return fmt.Errorf("recording progress of job %s page %d: %w", id, page, err)
		}
		run.record(progress)

		if err := im.leases.Touch(ctx, d); err != nil {
			if errors.Is(err, queue.ErrLeaseLost) {
				log.Warn("lease lost, another worker owns this job now", "page", page)
				metrics.ImportLeasesLostTotal.Inc()
				return errLeaseLost
			}
			log.Warn("extending lease failed", "page", page, "error", err)
		}

		if stop {
			if err := im.failRemaining(ctx, run, page+1, pages, domain.FailureQuotaExceeded,
				"tenant quota exhausted"); err != nil {
				return err
			}
			break
		}

		if page < pages-1 {
			if err := im.pacer.Wait(jobCtx); err != nil && ctx.Err() != nil {
				return context.Cause(ctx)
			}
		}
	}

	status, errText := im.finalStatus(run)
	if err := im.jobs.FinishImportJob(ctx, id, status, errText); err != nil {
		return fmt.Errorf("finishing job %s: %w", id, err)
	}

	took := im.now().Sub(start)
	metrics.ImportJobsFinishedTotal.WithLabelValues(string(status)).Inc()
	metrics.ImportJobDuration.Observe(took.Seconds())
	if status != domain.JobCompleted {
		span.SetStatus(codes.Error, errText)
	}

	log.Info("import job finished",
		"status", status,
		"imported", run.job.ItemsImported+run.imported,
		"failed", run.job.ItemsFailed+run.failed,
		"failed_pages", len(run.job.PageFailures)+len(run.failures),
		"duration", took,
	)

	im.notify(ctx, run.snapshot(), status, errText, took)
	return nil
}

// keepLease extends the lease on d every heartbeat until ctx ends, so a
// page that takes longer than the visibility timeout is not handed to
// another worker. Losing the lease cancels ctx with errLeaseLost. The
// returned channel is closed once the heartbeat has stopped.
func (im *Importer) keepLease(
	ctx context.Context,
	cancel context.CancelCauseFunc,
	d *queue.Delivery,
	log *slog.Logger,
) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ticker := time.NewTicker(im.leaseHeartbeat)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			err := im.leases.Touch(ctx, d)
			switch {
			case err == nil:
			case errors.Is(err, queue.ErrLeaseLost):
				log.Warn("lease lost mid-page, stopping job")
				metrics.ImportLeasesLostTotal.Inc()
				cancel(errLeaseLost)
				return
			case ctx.Err() == nil:
				log.Warn("extending lease failed", "error", err)
			}
		}
	}()
	return done
}

// processPage fetches one page and forwards its items. stop is true when
// the tenant ran out of quota and no further pages should be attempted.
func (im *Importer) processPage(ctx context.Context, job *domain.ImportJob, page int) (domain.PageProgress, bool) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "import.page")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	offset := page * job.PageSize
	expected := min(job.PageSize, job.TotalItems-offset)
	progress := domain.PageProgress{NextPage: page + 1}
	throttled := false

	var resp *ebay.SearchResponse
	err := retry(ctx, im.pageRetry, func() error {
		var fetchErr error
		resp, fetchErr = im.pages.Page(ctx, job.SellerUsername, page, job.PageSize)
		return fetchErr
	}, func(ra time.Duration) {
		throttled = true
		im.pacer.Throttled(ra)
	})
	if err != nil {
		kind := domain.ClassifyFailure(err)
		progress.ItemsFailed = expected
		progress.Failure = &domain.PageFailure{
			Page:        page,
			Offset:      offset,
			Kind:        kind,
			Reason:      err.Error(),
			ItemsFailed: expected,
		}
		metrics.ImportPagesTotal.WithLabelValues("failed").Inc()
		metrics.ImportPageFailuresTotal.WithLabelValues(string(kind)).Inc()
		span.SetStatus(codes.Error, err.Error())
		im.log.ErrorContext(ctx, "import page failed",
			"page", page,
			"offset", offset,
			"kind", kind,
			"error", err,
		)
		return progress, false
	}

	var (
		itemFailures int
		lastErr      error
		lastKind     domain.FailureKind
		stop         bool
	)

	for i := range resp.Items {
		if ctx.Err() != nil {
			remaining := len(resp.Items) - i
			itemFailures += remaining
			lastErr = ctx.Err()
			lastKind = domain.ClassifyFailure(ctx.Err())
			metrics.ImportItemsTotal.WithLabelValues("failed").Add(float64(remaining))
			break
		}

		item := &resp.Items[i]
		if err := im.forward(ctx, job, item, &throttled); err != nil {
			itemFailures++
			lastErr = err
			lastKind = domain.ClassifyFailure(err)
			if errors.Is(err, domain.ErrQuotaExceeded) {
				remaining := len(resp.Items) - i - 1
				itemFailures += remaining
				metrics.ImportItemsTotal.WithLabelValues("failed").Add(float64(remaining + 1))
				stop = true
				break
			}
			metrics.ImportItemsTotal.WithLabelValues("failed").Inc()
			im.log.WarnContext(ctx, "product forward failed",
				"page", page,
				"item_id", item.ItemID,
				"error", err,
			)
			continue
		}
		progress.ItemsImported++
		metrics.ImportItemsTotal.WithLabelValues("ok").Inc()
	}

	if itemFailures > 0 {
		progress.ItemsFailed = itemFailures
		progress.Failure = &domain.PageFailure{
			Page:        page,
			Offset:      offset,
			Kind:        lastKind,
			Reason:      fmt.Sprintf("%d of %d items failed: %v", itemFailures, len(resp.Items), lastErr),
			ItemsFailed: itemFailures,
		}
		metrics.ImportPagesTotal.WithLabelValues("failed").Inc()
		metrics.ImportPageFailuresTotal.WithLabelValues(string(lastKind)).Inc()
		span.SetStatus(codes.Error, progress.Failure.Reason)
	} else {
		metrics.ImportPagesTotal.WithLabelValues("ok").Inc()
	}

	if !throttled {
		im.pacer.Clean()
	}

	return progress, stop
}

// forward translates one listing and sends it downstream, charging the
// per-item cost first when configured. A failed forward refunds the charge.
func (im *Importer) forward(ctx context.Context, job *domain.ImportJob, item *ebay.ItemSummary, throttled *bool) error {
	product := ebay.ToProduct(item)

	var adm *Admission
	if im.charger != nil && im.itemCost > 0 {
		d, err := im.charger.CheckAndReserve(ctx, job.ShopDomain, im.itemCost)
		if err != nil {
			return fmt.Errorf("charging item %s: %w", item.ItemID, err)
		}
		if !d.Allowed {
			return &domain.QuotaExceededError{Used: d.Used, Limit: d.Limit}
		}
		adm = &Admission{Decision: d}
	}

	err := retry(ctx, im.itemRetry, func() error {
		return im.sink.CreateProduct(ctx, job.ShopDomain, product)
	}, func(ra time.Duration) {
		*throttled = true
		im.pacer.Throttled(ra)
	})
	if err != nil {
		if adm != nil {
			if relErr := im.charger.Release(context.WithoutCancel(ctx), job.ShopDomain, adm.Decision); relErr != nil {
				im.log.WarnContext(ctx, "refunding item charge failed", "error", relErr)
			}
		}
		return fmt.Errorf("forwarding item %s: %w", item.ItemID, err)
	}
	return nil
}

// failRemaining records every page from first up to pages as failed with
// the given kind, in a single progress write.
func (im *Importer) failRemaining(
	ctx context.Context,
	run *jobRun,
	first, pages int,
	kind domain.FailureKind,
	reason string,
) error {
	job := run.job
	for page := first; page < pages; page++ {
		offset := page * job.PageSize
		expected := min(job.PageSize, job.TotalItems-offset)
		progress := domain.PageProgress{
			NextPage:    page + 1,
			ItemsFailed: expected,
			Failure: &domain.PageFailure{
				Page:        page,
				Offset:      offset,
				Kind:        kind,
				Reason:      reason,
				ItemsFailed: expected,
			},
		}
		if err := im.jobs.RecordPageProgress(ctx, job.ID, progress); err != nil {
			return fmt.Errorf("recording skipped page %d of job %s: %w", page, job.ID, err)
		}
		run.record(progress)
		metrics.ImportPagesTotal.WithLabelValues("failed").Inc()
		metrics.ImportPageFailuresTotal.WithLabelValues(string(kind)).Inc()
	}
	if first < pages {
		im.log.WarnContext(ctx, "remaining pages skipped",
			"from_page", first,
			"pages", pages-first,
			"kind", kind,
		)
	}
	return nil
}

// finalStatus decides the terminal status from everything recorded for the
// job, including progress from earlier attempts.
func (im *Importer) finalStatus(run *jobRun) (domain.JobStatus, string) {
	imported := run.job.ItemsImported + run.imported
	failedPages := len(run.job.PageFailures) + len(run.failures)
	pages := domain.PageCount(run.job.TotalItems, run.job.PageSize)

	if failedPages == 0 {
		return domain.JobCompleted, ""
	}

	summary := fmt.Sprintf("%d of %d pages had failures, %d items failed",
		failedPages, pages, run.job.ItemsFailed+run.failed)
	if last := run.lastFailure(); last != nil {
		summary += "; last: " + last.Reason
	}

	switch {
	case !im.reportPartialFailures:
		return domain.JobCompleted, summary
	case imported > 0:
		return domain.JobPartiallyFailed, summary
	default:
		return domain.JobFailed, summary
	}
}

func (r *jobRun) lastFailure() *domain.PageFailure {
	if n := len(r.failures); n > 0 {
		return &r.failures[n-1]
	}
	if n := len(r.job.PageFailures); n > 0 {
		return &r.job.PageFailures[n-1]
	}
	return nil
}

// snapshot returns the job with this run's counters folded in.
func (r *jobRun) snapshot() *domain.ImportJob {
	j := *r.job
	j.ItemsImported += r.imported
	j.ItemsFailed += r.failed
	j.PageFailures = append(append([]domain.PageFailure(nil), r.job.PageFailures...), r.failures...)
	return &j
}

func (im *Importer) notify(ctx context.Context, job *domain.ImportJob, status domain.JobStatus, errText string, took time.Duration) {
	if im.notifier == nil {
		return
	}
	summary := notify.SummaryFromJob(job, status, errText, took)
	if err := im.notifier.JobFinished(ctx, &summary); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		im.log.WarnContext(ctx, "job notification failed", "error", err)
	}
}
