package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	"github.com/donaldgifford/ebay-catalog-importer/internal/queue"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	defaultPageDelay        = 500 * time.Millisecond
	defaultPageCostEstimate = 5 * time.Second
)

// SellerProber learns how many listings a seller has. *ebay.Paginator
// implements it.
type SellerProber interface {
	Probe(ctx context.Context, seller string) (int, error)
	PageSize() int
}

// JobRecorder creates and finalizes job records.
type JobRecorder interface {
	CreateImportJob(ctx context.Context, j *domain.ImportJob) error
	FinishImportJob(ctx context.Context, id string, status domain.JobStatus, errText string) error
}

// IntakeResult is returned to the caller of BeginImport. A zero TotalItems
// means the seller had nothing to import and no job was created.
type IntakeResult struct {
	JobID      string
	TotalItems int
	ETA        time.Time
}

// Intake turns an admitted import request into a durable queued job.
type Intake struct {
	prober    SellerProber
	jobs      JobRecorder
	publisher queue.Publisher
	log       *slog.Logger

	pageDelay        time.Duration
	pageCostEstimate time.Duration
	now              func() time.Time
	newID            func() string
}

// IntakeOption configures Intake.
type IntakeOption func(*Intake)

// WithIntakeLogger sets a custom logger.
func WithIntakeLogger(l *slog.Logger) IntakeOption {
	return func(in *Intake) {
		in.log = l
	}
}

// WithETAEstimate sets the per-page delay and per-page work estimate used
// to compute the ETA.
func WithETAEstimate(pageDelay, pageCost time.Duration) IntakeOption {
	return func(in *Intake) {
		in.pageDelay = pageDelay
		in.pageCostEstimate = pageCost
	}
}

// WithIntakeClock overrides the clock and the job id generator.
func WithIntakeClock(now func() time.Time, newID func() string) IntakeOption {
	return func(in *Intake) {
		if now != nil {
			in.now = now
		}
		if newID != nil {
			in.newID = newID
		}
	}
}

// NewIntake creates an Intake.
func NewIntake(prober SellerProber, jobs JobRecorder, publisher queue.Publisher, opts ...IntakeOption) *Intake {
	in := &Intake{
		prober:           prober,
		jobs:             jobs,
		publisher:        publisher,
		log:              slog.Default(),
		pageDelay:        defaultPageDelay,
		pageCostEstimate: defaultPageCostEstimate,
		now:              time.Now,
		newID:            uuid.NewString,
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// BeginImport probes the seller, records a queued job and publishes it.
// A publish failure marks the job failed and returns domain.ErrQueuePublish.
func (in *Intake) BeginImport(
	ctx context.Context,
	shop, seller string,
	options domain.ImportOptions,
) (*IntakeResult, error) {
	total, err := in.prober.Probe(ctx, seller)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, err)
	}
	if total == 0 {
		in.log.Info("seller has no listings, nothing to import", "shop", shop, "seller", seller)
		return &IntakeResult{TotalItems: 0}, nil
	}

	pageSize := in.prober.PageSize()
	pages := domain.PageCount(total, pageSize)

	job := &domain.ImportJob{
		ID:             in.newID(),
		ShopDomain:     shop,
		SellerUsername: seller,
		TotalItems:     total,
		PageSize:       pageSize,
		Options:        options,
		Status:         domain.JobQueued,
		PagesTotal:     pages,
	}
	if err := in.jobs.CreateImportJob(ctx, job); err != nil {
		return nil, fmt.Errorf("creating import job: %w", err)
	}

	msg := queue.Message{
		JobID:                  job.ID,
		ShopDomain:             shop,
		ExternalSellerIdentity: seller,
		Total:                  total,
		ImportOptions:          options,
	}
	if err := in.publisher.Publish(ctx, msg); err != nil {
		reason := "enqueue failed: " + err.Error()
		if finErr := in.jobs.FinishImportJob(context.WithoutCancel(ctx), job.ID, domain.JobFailed, reason); finErr != nil {
			in.log.Error("marking unpublished job failed", "job_id", job.ID, "error", finErr)
		}
		metrics.ImportJobsFinishedTotal.WithLabelValues(string(domain.JobFailed)).Inc()
		return nil, fmt.Errorf("%w: job %s: %w", domain.ErrQueuePublish, job.ID, err)
	}

	metrics.ImportJobsCreatedTotal.Inc()
	in.log.Info("import job queued",
		"job_id", job.ID,
		"shop", shop,
		"seller", seller,
		"total", total,
		"pages", pages,
	)

	eta := in.now().Add(time.Duration(pages) * (in.pageDelay + in.pageCostEstimate))
	return &IntakeResult{JobID: job.ID, TotalItems: total, ETA: eta}, nil
}
