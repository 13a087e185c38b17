package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements Store using pgxpool (connection-pooled PostgreSQL).
//
// TODO(test): PostgresStore methods require live Postgres, tested via integration tests.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// PostgresOption configures a PostgresStore.
type PostgresOption func(*pgxpool.Config)

// WithMaxConns overrides the connection pool size.
func WithMaxConns(n int32) PostgresOption {
	return func(cfg *pgxpool.Config) {
		if n > 0 {
			cfg.MaxConns = n
		}
	}
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string, opts ...PostgresOption) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetTenant retrieves a tenant by shop domain.
func (s *PostgresStore) GetTenant(ctx context.Context, shop string) (*domain.Tenant, error) {
	t := &domain.Tenant{}
	err := scanTenant(s.pool.QueryRow(ctx, queryGetTenant, shop), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTenantNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting tenant: %w", err)
	}
	return t, nil
}

// SaveTenantSettings records the tenant's eBay seller, creating the tenant
// on the free plan with a fresh quota window if it does not exist yet.
func (s *PostgresStore) SaveTenantSettings(
	ctx context.Context,
	shop, sellerUsername string,
	window time.Duration,
) (*domain.Tenant, error) {
	args := pgx.NamedArgs{
		"shop_domain": shop,
		"seller":      sellerUsername,
		"reset_at":    time.Now().Add(window),
	}

	t := &domain.Tenant{}
	if err := scanTenant(s.pool.QueryRow(ctx, querySaveTenantSettings, args), t); err != nil {
		return nil, fmt.Errorf("saving tenant settings: %w", err)
	}
	return t, nil
}

// SetTenantPlan changes a tenant's plan tier.
func (s *PostgresStore) SetTenantPlan(ctx context.Context, shop string, plan domain.PlanTier) error {
	tag, err := s.pool.Exec(ctx, querySetTenantPlan, shop, string(plan))
	if err != nil {
		return fmt.Errorf("setting tenant plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// UpdateTenant runs fn against the tenant row while holding SELECT ... FOR
// UPDATE, then writes the quota fields back when fn reports a change.
// Concurrent callers for the same shop are serialized by the row lock.
func (s *PostgresStore) UpdateTenant(
	ctx context.Context,
	shop string,
	fn func(t *domain.Tenant) (bool, error),
) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning tenant transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	t := &domain.Tenant{}
	err = scanTenant(tx.QueryRow(ctx, queryLockTenant, shop), t)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrTenantNotFound
	}
	if err != nil {
		return fmt.Errorf("locking tenant: %w", err)
	}

	changed, err := fn(t)
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if _, err := tx.Exec(ctx, queryUpdateTenantQuota, shop, t.QuotaUsed, t.QuotaResetAt); err != nil {
		return fmt.Errorf("updating tenant quota: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing tenant transaction: %w", err)
	}
	return nil
}

// ResetExpiredQuotas zeroes usage for every tenant whose window has lapsed.
func (s *PostgresStore) ResetExpiredQuotas(
	ctx context.Context,
	now time.Time,
	window time.Duration,
) (int64, error) {
	tag, err := s.pool.Exec(ctx, queryResetExpiredQuotas, pgx.NamedArgs{
		"now":    now,
		"window": window.Seconds(),
	})
	if err != nil {
		return 0, fmt.Errorf("resetting expired quotas: %w", err)
	}
	return tag.RowsAffected(), nil
}

// CreateImportJob inserts a queued import job.
func (s *PostgresStore) CreateImportJob(ctx context.Context, j *domain.ImportJob) error {
	opts := j.Options
	if opts == nil {
		opts = domain.ImportOptions{}
	}

	args := pgx.NamedArgs{
		"id":              j.ID,
		"shop_domain":     j.ShopDomain,
		"seller_username": j.SellerUsername,
		"total_items":     j.TotalItems,
		"page_size":       j.PageSize,
		"options":         opts,
		"pages_total":     j.PagesTotal,
	}

	if err := s.pool.QueryRow(ctx, queryInsertImportJob, args).Scan(&j.CreatedAt, &j.UpdatedAt); err != nil {
		return fmt.Errorf("inserting import job: %w", err)
	}
	j.Status = domain.JobQueued
	return nil
}

// GetImportJob retrieves an import job by ID.
func (s *PostgresStore) GetImportJob(ctx context.Context, id string) (*domain.ImportJob, error) {
	j := &domain.ImportJob{}
	err := scanImportJob(s.pool.QueryRow(ctx, queryGetImportJob, id), j)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting import job: %w", err)
	}
	return j, nil
}

// ListImportJobs returns import jobs matching q, newest first, plus the
// total number of matches.
func (s *PostgresStore) ListImportJobs(ctx context.Context, q *JobQuery) ([]domain.ImportJob, int, error) {
	dataSQL, countSQL, args := q.ToSQL()

	var total int
	if err := s.pool.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting import jobs: %w", err)
	}

	rows, err := s.pool.Query(ctx, dataSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("querying import jobs: %w", err)
	}
	defer rows.Close()

	var jobs []domain.ImportJob
	for rows.Next() {
		var j domain.ImportJob
		if err := scanImportJob(rows, &j); err != nil {
			return nil, 0, fmt.Errorf("scanning import job: %w", err)
		}
		jobs = append(jobs, j)
	}

	return jobs, total, rows.Err()
}

// MarkJobRunning moves a queued or running job to running and bumps its
// attempt counter. Terminal jobs are returned unchanged.
func (s *PostgresStore) MarkJobRunning(ctx context.Context, id string) (*domain.ImportJob, error) {
	if _, err := s.pool.Exec(ctx, queryMarkJobRunning, id); err != nil {
		return nil, fmt.Errorf("marking job running: %w", err)
	}
	return s.GetImportJob(ctx, id)
}

// RecordPageProgress advances the resume cursor and adds the page's
// counters and failure to the job.
func (s *PostgresStore) RecordPageProgress(ctx context.Context, id string, p domain.PageProgress) error {
	failures := []domain.PageFailure{}
	if p.Failure != nil {
		failures = append(failures, *p.Failure)
	}
	raw, err := json.Marshal(failures)
	if err != nil {
		return fmt.Errorf("marshaling page failures: %w", err)
	}

	_, err = s.pool.Exec(ctx, queryRecordPageProgress, pgx.NamedArgs{
		"id":        id,
		"next_page": p.NextPage,
		"imported":  p.ItemsImported,
		"failed":    p.ItemsFailed,
		"failures":  string(raw),
	})
	if err != nil {
		return fmt.Errorf("recording page progress: %w", err)
	}
	return nil
}

// FinishImportJob moves a non-terminal job into a terminal status.
func (s *PostgresStore) FinishImportJob(
	ctx context.Context,
	id string,
	status domain.JobStatus,
	errText string,
) error {
	if !status.Terminal() {
		return fmt.Errorf("finishing import job: %q is not a terminal status", status)
	}
	if _, err := s.pool.Exec(ctx, queryFinishImportJob, id, string(status), errText); err != nil {
		return fmt.Errorf("finishing import job: %w", err)
	}
	return nil
}

// ReapStuckJobs fails running jobs that have not recorded any progress for
// longer than olderThan. Queued jobs are left alone however long they wait.
func (s *PostgresStore) ReapStuckJobs(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryReapStuckJobs, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("reaping stuck jobs: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// EnqueueImport adds a job to the Postgres work queue. It reports false when
// the job was already queued.
func (s *PostgresStore) EnqueueImport(ctx context.Context, jobID string, payload []byte) (bool, error) {
	tag, err := s.pool.Exec(ctx, queryEnqueueImport, jobID, string(payload))
	if err != nil {
		return false, fmt.Errorf("enqueueing import: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClaimImport leases the oldest visible queue row to consumer. It returns
// nil when nothing is ready.
func (s *PostgresStore) ClaimImport(
	ctx context.Context,
	consumer string,
	visibility time.Duration,
) (*QueuedImport, error) {
	q := &QueuedImport{}
	var payload string
	err := s.pool.QueryRow(ctx, queryClaimImport, consumer, visibility.Seconds()).
		Scan(&q.JobID, &payload, &q.Attempts)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("claiming import: %w", err)
	}
	q.Payload = []byte(payload)
	return q, nil
}

// ExtendImportLease pushes the visibility deadline of a claimed row forward.
func (s *PostgresStore) ExtendImportLease(
	ctx context.Context,
	jobID, consumer string,
	visibility time.Duration,
) error {
	tag, err := s.pool.Exec(ctx, queryExtendImportLease, jobID, consumer, visibility.Seconds())
	if err != nil {
		return fmt.Errorf("extending import lease: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("extending import lease on job %s for %s: %w", jobID, consumer, ErrNotHeld)
	}
	return nil
}

// AckImport marks a queue row held by consumer as done. It returns
// ErrNotHeld when the row was claimed by someone else or already acked.
func (s *PostgresStore) AckImport(ctx context.Context, jobID, consumer string) error {
	tag, err := s.pool.Exec(ctx, queryAckImport, jobID, consumer)
	if err != nil {
		return fmt.Errorf("acking import: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("acking import %s for %s: %w", jobID, consumer, ErrNotHeld)
	}
	return nil
}

// PurgeAckedImports deletes acknowledged queue rows older than olderThan.
func (s *PostgresStore) PurgeAckedImports(ctx context.Context, olderThan time.Duration) (int, error) {
	tag, err := s.pool.Exec(ctx, queryPurgeAckedImports, time.Now().Add(-olderThan))
	if err != nil {
		return 0, fmt.Errorf("purging acked imports: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// InsertJobRun records the start of a scheduled job and returns its UUID.
func (s *PostgresStore) InsertJobRun(ctx context.Context, jobName string) (string, error) {
	var id string
	if err := s.pool.QueryRow(ctx, queryInsertJobRun, jobName).Scan(&id); err != nil {
		return "", fmt.Errorf("inserting job run: %w", err)
	}
	return id, nil
}

// CompleteJobRun marks a job run as finished with the given status and metadata.
func (s *PostgresStore) CompleteJobRun(
	ctx context.Context,
	id string,
	status string,
	errText string,
	rowsAffected int,
) error {
	_, err := s.pool.Exec(ctx, queryCompleteJobRun, id, status, errText, rowsAffected)
	if err != nil {
		return fmt.Errorf("completing job run: %w", err)
	}
	return nil
}

// ListJobRuns returns the most recent runs for a specific job, newest first.
func (s *PostgresStore) ListJobRuns(
	ctx context.Context,
	jobName string,
	limit int,
) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListJobRuns, jobName, limit)
	if err != nil {
		return nil, fmt.Errorf("querying job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// ListLatestJobRuns returns the single most recent run for each distinct job name.
func (s *PostgresStore) ListLatestJobRuns(ctx context.Context) ([]domain.JobRun, error) {
	rows, err := s.pool.Query(ctx, queryListLatestJobRuns)
	if err != nil {
		return nil, fmt.Errorf("querying latest job runs: %w", err)
	}
	defer rows.Close()

	return scanJobRuns(rows)
}

// RecoverStaleJobRuns marks any 'running' job rows older than olderThan as 'crashed',
// then deletes all rows older than 30 days. Returns the number of rows marked as crashed.
func (s *PostgresStore) RecoverStaleJobRuns(
	ctx context.Context,
	olderThan time.Duration,
) (int, error) {
	cutoff := time.Now().Add(-olderThan)

	tag, err := s.pool.Exec(ctx, queryMarkStaleJobRunsCrashed, cutoff)
	if err != nil {
		return 0, fmt.Errorf("marking stale job runs crashed: %w", err)
	}
	affected := int(tag.RowsAffected())

	if _, err := s.pool.Exec(ctx, queryDeleteOldJobRuns); err != nil {
		return affected, fmt.Errorf("deleting old job runs: %w", err)
	}

	return affected, nil
}

// AcquireSchedulerLock attempts to acquire a distributed lock for the given job.
// Returns true if the lock was acquired, false if another holder already owns it.
func (s *PostgresStore) AcquireSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
	ttl time.Duration,
) (bool, error) {
	expiresAt := time.Now().Add(ttl)

	var gotName string
	err := s.pool.QueryRow(ctx, queryAcquireSchedulerLock, jobName, holder, expiresAt).Scan(&gotName)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("acquiring scheduler lock: %w", err)
	}

	return true, nil
}

// ReleaseSchedulerLock deletes the lock row for the given job and holder.
func (s *PostgresStore) ReleaseSchedulerLock(
	ctx context.Context,
	jobName string,
	holder string,
) error {
	_, err := s.pool.Exec(ctx, queryReleaseSchedulerLock, jobName, holder)
	if err != nil {
		return fmt.Errorf("releasing scheduler lock: %w", err)
	}
	return nil
}

// scannable abstracts pgx.Row and pgx.Rows for reuse.
type scannable interface {
	Scan(dest ...any) error
}

func scanTenant(row scannable, t *domain.Tenant) error {
	var plan string
	if err := row.Scan(
		&t.ShopDomain, &t.EbaySellerUsername, &plan, &t.QuotaUsed,
		&t.QuotaResetAt, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return err
	}
	t.Plan = domain.PlanTier(plan)
	return nil
}

func scanImportJob(row scannable, j *domain.ImportJob) error {
	var status string
	if err := row.Scan(
		&j.ID, &j.ShopDomain, &j.SellerUsername, &j.TotalItems, &j.PageSize, &j.Options,
		&status, &j.NextPage, &j.PagesTotal, &j.ItemsImported, &j.ItemsFailed, &j.PageFailures,
		&j.Attempts, &j.ErrorText, &j.CreatedAt, &j.StartedAt, &j.CompletedAt, &j.UpdatedAt,
	); err != nil {
		return err
	}
	j.Status = domain.JobStatus(status)
	return nil
}

// scanJobRuns scans rows from a job_runs query into a slice.
func scanJobRuns(rows pgx.Rows) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	for rows.Next() {
		var r domain.JobRun
		if err := rows.Scan(
			&r.ID, &r.JobName, &r.StartedAt, &r.CompletedAt,
			&r.Status, &r.ErrorText, &r.RowsAffected,
		); err != nil {
			return nil, fmt.Errorf("scanning job run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
