// Package store defines the datastore abstraction for the catalog importer.
// All business logic depends on the Store interface (or a narrower slice of
// it), never on concrete implementations. This enables mock-based testing
// without a running database.
package store

import (
	"context"
	"errors"
	"time"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// ErrNotHeld is returned when a queue lease is extended by a consumer that
// no longer holds it.
var ErrNotHeld = errors.New("queue row not held by consumer")

// JobQuery defines optional filters for import job listings.
type JobQuery struct {
	ShopDomain string
	Status     *domain.JobStatus
	Limit      int // default 50
	Offset     int
}

// QueuedImport is a claimed row of the Postgres-backed work queue.
type QueuedImport struct {
	JobID    string
	Payload  []byte
	Attempts int
}

// Store defines all data access operations for the catalog importer.
type Store interface {
	// Tenants
	GetTenant(ctx context.Context, shop string) (*domain.Tenant, error)
	SaveTenantSettings(ctx context.Context, shop, sellerUsername string, window time.Duration) (*domain.Tenant, error)
	SetTenantPlan(ctx context.Context, shop string, plan domain.PlanTier) error
	UpdateTenant(ctx context.Context, shop string, fn func(t *domain.Tenant) (bool, error)) error
	ResetExpiredQuotas(ctx context.Context, now time.Time, window time.Duration) (int64, error)

	// Import jobs
	CreateImportJob(ctx context.Context, j *domain.ImportJob) error
	GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error)
	ListImportJobs(ctx context.Context, q *JobQuery) ([]domain.ImportJob, int, error)
	MarkJobRunning(ctx context.Context, id string) (*domain.ImportJob, error)
	RecordPageProgress(ctx context.Context, id string, p domain.PageProgress) error
	FinishImportJob(ctx context.Context, id string, status domain.JobStatus, errText string) error
	ReapStuckJobs(ctx context.Context, olderThan time.Duration) (int, error)

	// Import queue
	EnqueueImport(ctx context.Context, jobID string, payload []byte) (bool, error)
	ClaimImport(ctx context.Context, consumer string, visibility time.Duration) (*QueuedImport, error)
	ExtendImportLease(ctx context.Context, jobID, consumer string, visibility time.Duration) error
	AckImport(ctx context.Context, jobID, consumer string) error
	PurgeAckedImports(ctx context.Context, olderThan time.Duration) (int, error)

	// Scheduler
	InsertJobRun(ctx context.Context, jobName string) (id string, err error)
	CompleteJobRun(ctx context.Context, id string, status string, errText string, rowsAffected int) error
	ListJobRuns(ctx context.Context, jobName string, limit int) ([]domain.JobRun, error)
	ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error)
	RecoverStaleJobRuns(ctx context.Context, olderThan time.Duration) (int, error)
	AcquireSchedulerLock(ctx context.Context, jobName string, holder string, ttl time.Duration) (bool, error)
	ReleaseSchedulerLock(ctx context.Context, jobName string, holder string) error

	// Migrations
	Migrate(ctx context.Context) error

	// Health
	Ping(ctx context.Context) error
}
