package store

// SQL query constants organized by entity.
// All SQL lives here; PostgresStore methods reference these constants.

// Tenant queries.
const (
	tenantColumns = `shop_domain, ebay_seller_username, plan_tier, quota_used,
		quota_reset_at, created_at, updated_at`

	queryGetTenant = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE shop_domain = $1`

	queryLockTenant = `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE shop_domain = $1
		FOR UPDATE`

	querySaveTenantSettings = `
		INSERT INTO tenants (shop_domain, ebay_seller_username, plan_tier, quota_used, quota_reset_at)
		VALUES (@shop_domain, @seller, 'free', 0, @reset_at)
		ON CONFLICT (shop_domain) DO UPDATE SET
			ebay_seller_username = EXCLUDED.ebay_seller_username,
			updated_at = now()
		RETURNING ` + tenantColumns

	querySetTenantPlan = `
		UPDATE tenants SET plan_tier = $2, updated_at = now()
		WHERE shop_domain = $1`

	queryUpdateTenantQuota = `
		UPDATE tenants SET
			quota_used     = $2,
			quota_reset_at = $3,
			updated_at     = now()
		WHERE shop_domain = $1`

	queryResetExpiredQuotas = `
		UPDATE tenants SET
			quota_used     = 0,
			quota_reset_at = @now::timestamptz + @window::float8 * interval '1 second',
			updated_at     = now()
		WHERE quota_reset_at < @now::timestamptz`
)

// Import job queries.
const (
	importJobColumns = `id, shop_domain, seller_username, total_items, page_size, options,
		status, next_page, pages_total, items_imported, items_failed, page_failures,
		attempts, error_text, created_at, started_at, completed_at, updated_at`

	queryInsertImportJob = `
		INSERT INTO import_jobs (
			id, shop_domain, seller_username, total_items, page_size, options,
			status, pages_total
		) VALUES (
			@id, @shop_domain, @seller_username, @total_items, @page_size, @options,
			'queued', @pages_total
		)
		RETURNING created_at, updated_at`

	queryGetImportJob = `
		SELECT ` + importJobColumns + `
		FROM import_jobs
		WHERE id = $1`

	queryMarkJobRunning = `
		UPDATE import_jobs SET
			status     = 'running',
			attempts   = attempts + 1,
			started_at = COALESCE(started_at, now()),
			updated_at = now()
		WHERE id = $1 AND status IN ('queued', 'running')`

	queryRecordPageProgress = `
		UPDATE import_jobs SET
			next_page      = GREATEST(next_page, @next_page),
			items_imported = items_imported + @imported,
			items_failed   = items_failed + @failed,
			page_failures  = page_failures || @failures::jsonb,
			updated_at     = now()
		WHERE id = @id AND status = 'running'`

	queryFinishImportJob = `
		UPDATE import_jobs SET
			status       = $2,
			error_text   = $3,
			completed_at = now(),
			updated_at   = now()
		WHERE id = $1 AND status IN ('queued', 'running')`

	queryReapStuckJobs = `
		UPDATE import_jobs SET
			status       = 'failed',
			error_text   = 'stalled: no progress recorded before the reaper deadline',
			completed_at = now(),
			updated_at   = now()
		WHERE status = 'running' AND updated_at < $1`
)

// Import queue queries.
const (
	queryEnqueueImport = `
		INSERT INTO import_queue (job_id, payload)
		VALUES ($1, $2)
		ON CONFLICT (job_id) DO NOTHING`

	queryClaimImport = `
		WITH next AS (
			SELECT job_id FROM import_queue
			WHERE acked_at IS NULL AND visible_at <= now()
			ORDER BY enqueued_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		UPDATE import_queue q SET
			visible_at = now() + $2::float8 * interval '1 second',
			claimed_by = $1,
			attempts   = q.attempts + 1
		FROM next
		WHERE q.job_id = next.job_id
		RETURNING q.job_id, q.payload, q.attempts`

	queryExtendImportLease = `
		UPDATE import_queue SET visible_at = now() + $3::float8 * interval '1 second'
		WHERE job_id = $1 AND claimed_by = $2 AND acked_at IS NULL`

	queryAckImport = `
		UPDATE import_queue SET acked_at = now()
		WHERE job_id = $1 AND claimed_by = $2 AND acked_at IS NULL`

	queryPurgeAckedImports = `
		DELETE FROM import_queue WHERE acked_at IS NOT NULL AND acked_at < $1`
)

// Scheduler queries.
const (
	queryInsertJobRun = `
		INSERT INTO job_runs (job_name)
		VALUES ($1)
		RETURNING id`

	queryCompleteJobRun = `
		UPDATE job_runs SET
			completed_at  = now(),
			status        = $2,
			error_text    = $3,
			rows_affected = $4
		WHERE id = $1`

	queryListJobRuns = `
		SELECT id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		WHERE job_name = $1
		ORDER BY started_at DESC
		LIMIT $2`

	queryListLatestJobRuns = `
		SELECT DISTINCT ON (job_name)
			id, job_name, started_at, completed_at, status,
			COALESCE(error_text, ''), rows_affected
		FROM job_runs
		ORDER BY job_name, started_at DESC`

	queryMarkStaleJobRunsCrashed = `
		UPDATE job_runs SET
			status       = 'crashed',
			completed_at = now()
		WHERE status = 'running' AND started_at < $1`

	queryDeleteOldJobRuns = `
		DELETE FROM job_runs WHERE started_at < now() - interval '30 days'`

	queryAcquireSchedulerLock = `
		INSERT INTO scheduler_locks (job_name, lock_holder, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (job_name) DO UPDATE
			SET locked_at   = now(),
				lock_holder = EXCLUDED.lock_holder,
				expires_at  = EXCLUDED.expires_at
			WHERE scheduler_locks.expires_at < now()
		RETURNING job_name`

	queryReleaseSchedulerLock = `
		DELETE FROM scheduler_locks WHERE job_name = $1 AND lock_holder = $2`
)
