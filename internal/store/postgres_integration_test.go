//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/donaldgifford/ebay-catalog-importer/internal/store"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

func setupPostgres(t *testing.T) *store.PostgresStore {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("cimp_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, pgContainer.Terminate(ctx))
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	s, err := store.NewPostgresStore(ctx, connStr)
	require.NoError(t, err)

	t.Cleanup(func() {
		s.Close()
	})

	require.NoError(t, s.Migrate(ctx))
	// A second run is a no-op.
	require.NoError(t, s.Migrate(ctx))

	return s
}

func seedTenant(t *testing.T, s *store.PostgresStore, shop string) *domain.Tenant {
	t.Helper()
	tenant, err := s.SaveTenantSettings(context.Background(), shop, "vintage-finds", 30*24*time.Hour)
	require.NoError(t, err)
	return tenant
}

func newJob(shop string, total int) *domain.ImportJob {
	return &domain.ImportJob{
		ID:             uuid.NewString(),
		ShopDomain:     shop,
		SellerUsername: "vintage-finds",
		TotalItems:     total,
		PageSize:       50,
		PagesTotal:     domain.PageCount(total, 50),
		Options:        domain.ImportOptions{"syncStrategy": "append"},
	}
}

func TestPostgresStore_Ping(t *testing.T) {
	s := setupPostgres(t)
	require.NoError(t, s.Ping(context.Background()))
}

func TestPostgresStore_TenantSettings(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	_, err := s.GetTenant(ctx, "new.myshopify.com")
	require.ErrorIs(t, err, domain.ErrTenantNotFound)

	created := seedTenant(t, s, "new.myshopify.com")
	assert.Equal(t, domain.PlanFree, created.Plan)
	assert.Equal(t, 0, created.QuotaUsed)
	assert.True(t, created.QuotaResetAt.After(time.Now().Add(29*24*time.Hour)))

	// Saving again only replaces the seller.
	require.NoError(t, s.SetTenantPlan(ctx, "new.myshopify.com", domain.PlanPro))
	updated, err := s.SaveTenantSettings(ctx, "new.myshopify.com", "other-seller", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, "other-seller", updated.EbaySellerUsername)
	assert.Equal(t, domain.PlanPro, updated.Plan)
	assert.True(t, updated.QuotaResetAt.Equal(created.QuotaResetAt))

	require.ErrorIs(t, s.SetTenantPlan(ctx, "missing.myshopify.com", domain.PlanPlus), domain.ErrTenantNotFound)
}

func TestPostgresStore_UpdateTenantSerializes(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	seedTenant(t, s, "busy.myshopify.com")

	const workers = 20
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.UpdateTenant(ctx, "busy.myshopify.com", func(tn *domain.Tenant) (bool, error) {
				tn.QuotaUsed++
				return true, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.GetTenant(ctx, "busy.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, workers, got.QuotaUsed)

	err = s.UpdateTenant(ctx, "missing.myshopify.com", func(*domain.Tenant) (bool, error) { return true, nil })
	require.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestPostgresStore_ResetExpiredQuotas(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	seedTenant(t, s, "a.myshopify.com")

	require.NoError(t, s.UpdateTenant(ctx, "a.myshopify.com", func(tn *domain.Tenant) (bool, error) {
		tn.QuotaUsed = 40
		tn.QuotaResetAt = time.Now().Add(-time.Minute)
		return true, nil
	}))

	n, err := s.ResetExpiredQuotas(ctx, time.Now(), time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err := s.GetTenant(ctx, "a.myshopify.com")
	require.NoError(t, err)
	assert.Equal(t, 0, got.QuotaUsed)
	assert.True(t, got.QuotaResetAt.After(time.Now().Add(50*time.Minute)))
}

func TestPostgresStore_ImportJobLifecycle(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	seedTenant(t, s, "shop.myshopify.com")

	job := newJob("shop.myshopify.com", 120)
	require.NoError(t, s.CreateImportJob(ctx, job))
	assert.Equal(t, domain.JobQueued, job.Status)
	assert.False(t, job.CreatedAt.IsZero())

	running, err := s.MarkJobRunning(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobRunning, running.Status)
	assert.Equal(t, 1, running.Attempts)
	require.NotNil(t, running.StartedAt)
	assert.Equal(t, "append", running.Options["syncStrategy"])

	require.NoError(t, s.RecordPageProgress(ctx, job.ID, domain.PageProgress{NextPage: 1, ItemsImported: 50}))
	require.NoError(t, s.RecordPageProgress(ctx, job.ID, domain.PageProgress{
		NextPage: 2,
		Failure: &domain.PageFailure{
			Page: 1, Offset: 50, Kind: domain.FailureUpstreamUnavailable, Reason: "status 503",
		},
	}))
	require.NoError(t, s.RecordPageProgress(ctx, job.ID, domain.PageProgress{NextPage: 3, ItemsImported: 20}))
	require.NoError(t, s.FinishImportJob(ctx, job.ID, domain.JobPartiallyFailed, ""))

	got, err := s.GetImportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPartiallyFailed, got.Status)
	assert.Equal(t, 3, got.NextPage)
	assert.Equal(t, 70, got.ItemsImported)
	require.Len(t, got.PageFailures, 1)
	assert.Equal(t, domain.FailureUpstreamUnavailable, got.PageFailures[0].Kind)
	require.NotNil(t, got.CompletedAt)

	// Terminal jobs stay terminal.
	again, err := s.MarkJobRunning(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPartiallyFailed, again.Status)
	require.NoError(t, s.FinishImportJob(ctx, job.ID, domain.JobFailed, "late"))
	got, err = s.GetImportJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobPartiallyFailed, got.Status)

	_, err = s.GetImportJob(ctx, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrJobNotFound)
}

func TestPostgresStore_ListImportJobs(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	seedTenant(t, s, "a.myshopify.com")
	seedTenant(t, s, "b.myshopify.com")

	for range 3 {
		require.NoError(t, s.CreateImportJob(ctx, newJob("a.myshopify.com", 10)))
	}
	require.NoError(t, s.CreateImportJob(ctx, newJob("b.myshopify.com", 10)))

	jobs, total, err := s.ListImportJobs(ctx, &store.JobQuery{ShopDomain: "a.myshopify.com", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, jobs, 2)

	queued := domain.JobQueued
	_, total, err = s.ListImportJobs(ctx, &store.JobQuery{Status: &queued})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
}

func TestPostgresStore_ReapStuckJobs(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()
	seedTenant(t, s, "shop.myshopify.com")

	waiting := newJob("shop.myshopify.com", 10)
	require.NoError(t, s.CreateImportJob(ctx, waiting))
	running := newJob("shop.myshopify.com", 10)
	require.NoError(t, s.CreateImportJob(ctx, running))
	_, err := s.MarkJobRunning(ctx, running.ID)
	require.NoError(t, err)

	n, err := s.ReapStuckJobs(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Only the running job is reaped; a job still waiting in the queue is not.
	n, err = s.ReapStuckJobs(ctx, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := s.GetImportJob(ctx, running.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobFailed, got.Status)
	assert.Contains(t, got.ErrorText, "stalled")

	got, err = s.GetImportJob(ctx, waiting.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.JobQueued, got.Status)
}

func TestPostgresStore_ImportQueue(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	jobID := uuid.NewString()
	inserted, err := s.EnqueueImport(ctx, jobID, []byte(`{"jobId":"`+jobID+`"}`))
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.EnqueueImport(ctx, jobID, []byte(`{}`))
	require.NoError(t, err)
	assert.False(t, inserted, "publishing the same job twice is a no-op")

	claimed, err := s.ClaimImport(ctx, "worker-a", time.Minute)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	assert.Equal(t, jobID, claimed.JobID)
	assert.Equal(t, 1, claimed.Attempts)

	// Leased rows are invisible to other consumers.
	other, err := s.ClaimImport(ctx, "worker-b", time.Minute)
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, s.ExtendImportLease(ctx, jobID, "worker-a", time.Minute))
	require.Error(t, s.ExtendImportLease(ctx, jobID, "worker-b", time.Minute))

	require.ErrorIs(t, s.AckImport(ctx, jobID, "worker-b"), store.ErrNotHeld)
	require.NoError(t, s.AckImport(ctx, jobID, "worker-a"))
	require.ErrorIs(t, s.AckImport(ctx, jobID, "worker-a"), store.ErrNotHeld, "already acked")
	n, err := s.PurgeAckedImports(ctx, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestPostgresStore_ImportQueueRedelivery(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	jobID := uuid.NewString()
	_, err := s.EnqueueImport(ctx, jobID, []byte(`{}`))
	require.NoError(t, err)

	first, err := s.ClaimImport(ctx, "crashed-worker", 500*time.Millisecond)
	require.NoError(t, err)
	require.NotNil(t, first)

	require.Eventually(t, func() bool {
		again, err := s.ClaimImport(ctx, "worker-b", time.Minute)
		return err == nil && again != nil && again.JobID == jobID && again.Attempts == 2
	}, 5*time.Second, 100*time.Millisecond)

	// The worker that lost the lease can no longer ack the row.
	require.ErrorIs(t, s.AckImport(ctx, jobID, "crashed-worker"), store.ErrNotHeld)
	require.NoError(t, s.AckImport(ctx, jobID, "worker-b"))
}

func TestPostgresStore_SchedulerLock(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	ok, err := s.AcquireSchedulerLock(ctx, "quota_sweep", "host-a", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.AcquireSchedulerLock(ctx, "quota_sweep", "host-b", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.ReleaseSchedulerLock(ctx, "quota_sweep", "host-a"))

	ok, err = s.AcquireSchedulerLock(ctx, "quota_sweep", "host-b", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPostgresStore_JobRuns(t *testing.T) {
	s := setupPostgres(t)
	ctx := context.Background()

	id, err := s.InsertJobRun(ctx, "quota_sweep")
	require.NoError(t, err)
	require.NoError(t, s.CompleteJobRun(ctx, id, "succeeded", "", 4))

	runs, err := s.ListJobRuns(ctx, "quota_sweep", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "succeeded", runs[0].Status)
	require.NotNil(t, runs[0].RowsAffected)
	assert.Equal(t, 4, *runs[0].RowsAffected)

	_, err = s.InsertJobRun(ctx, "stuck_job_reaper")
	require.NoError(t, err)

	latest, err := s.ListLatestJobRuns(ctx)
	require.NoError(t, err)
	assert.Len(t, latest, 2)

	n, err := s.RecoverStaleJobRuns(ctx, -time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
