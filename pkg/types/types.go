// Package domain defines the core business types for the eBay catalog importer.
package domain

import (
	"time"
)

// PlanTier identifies a tenant's subscription plan.
type PlanTier string

// Plan tier constants.
const (
	PlanFree PlanTier = "free"
	PlanPlus PlanTier = "plus"
	PlanPro  PlanTier = "pro"
)

// Valid reports whether p is a known plan tier.
func (p PlanTier) Valid() bool {
	switch p {
	case PlanFree, PlanPlus, PlanPro:
		return true
	default:
		return false
	}
}

// Tenant is a storefront using the importer, keyed by its shop domain.
type Tenant struct {
	ShopDomain         string    `json:"shopDomain"         db:"shop_domain"`
	EbaySellerUsername string    `json:"ebaySellerUsername" db:"ebay_seller_username"`
	Plan               PlanTier  `json:"plan"               db:"plan_tier"`
	QuotaUsed          int       `json:"quotaUsed"          db:"quota_used"`
	QuotaResetAt       time.Time `json:"quotaResetAt"       db:"quota_reset_at"`
	CreatedAt          time.Time `json:"createdAt"          db:"created_at"`
	UpdatedAt          time.Time `json:"updatedAt"          db:"updated_at"`
}

// Configured reports whether the tenant has an eBay seller to import from.
func (t *Tenant) Configured() bool {
	return t != nil && t.EbaySellerUsername != ""
}

// JobStatus is the lifecycle state of an ImportJob.
type JobStatus string

// Job status constants.
const (
	JobQueued          JobStatus = "queued"
	JobRunning         JobStatus = "running"
	JobCompleted       JobStatus = "completed"
	JobPartiallyFailed JobStatus = "partially_failed"
	JobFailed          JobStatus = "failed"
)

// Terminal reports whether no further transitions are allowed from s.
func (s JobStatus) Terminal() bool {
	return s == JobCompleted || s == JobPartiallyFailed || s == JobFailed
}

// ImportOptions is tenant-supplied import configuration (sync strategy,
// ordering, ...). The importer passes it through without interpreting it.
type ImportOptions map[string]any

// FailureKind classifies why a page of an import did not make it downstream.
type FailureKind string

// Failure kind constants.
const (
	FailureUpstreamUnavailable FailureKind = "upstream_unavailable"
	FailureUpstreamAuth        FailureKind = "upstream_auth"
	FailureCredentials         FailureKind = "credentials"
	FailureQuotaExceeded       FailureKind = "quota_exceeded"
	FailureDeadlineExceeded    FailureKind = "deadline_exceeded"
	FailureDownstream          FailureKind = "downstream"
	FailureUnknown             FailureKind = "unknown"
)

// PageFailure records a page that was not fully imported.
type PageFailure struct {
	Page        int         `json:"page"`
	Offset      int         `json:"offset"`
	Kind        FailureKind `json:"kind"`
	Reason      string      `json:"reason"`
	ItemsFailed int         `json:"itemsFailed,omitempty"`
}

// ImportJob is one bulk import request, processed page by page.
type ImportJob struct {
	ID             string        `json:"jobId"                 db:"id"`
	ShopDomain     string        `json:"shopDomain"            db:"shop_domain"`
	SellerUsername string        `json:"sellerUsername"        db:"seller_username"`
	TotalItems     int           `json:"totalItems"            db:"total_items"`
	PageSize       int           `json:"pageSize"              db:"page_size"`
	Options        ImportOptions `json:"importOptions"         db:"options"`
	Status         JobStatus     `json:"status"                db:"status"`
	NextPage       int           `json:"nextPage"              db:"next_page"`
	PagesTotal     int           `json:"pagesTotal"            db:"pages_total"`
	ItemsImported  int           `json:"itemsImported"         db:"items_imported"`
	ItemsFailed    int           `json:"itemsFailed"           db:"items_failed"`
	PageFailures   []PageFailure `json:"pageFailures"          db:"page_failures"`
	Attempts       int           `json:"attempts"              db:"attempts"`
	ErrorText      string        `json:"error,omitempty"       db:"error_text"`
	CreatedAt      time.Time     `json:"createdAt"             db:"created_at"`
	StartedAt      *time.Time    `json:"startedAt,omitempty"   db:"started_at"`
	CompletedAt    *time.Time    `json:"completedAt,omitempty" db:"completed_at"`
	UpdatedAt      time.Time     `json:"updatedAt"             db:"updated_at"`
}

// PageCount returns the number of pages needed to cover total items.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// PageProgress is the outcome of one processed page, persisted before the
// worker moves on so a redelivered job resumes after it.
type PageProgress struct {
	NextPage      int
	ItemsImported int
	ItemsFailed   int
	Failure       *PageFailure
}

// JobRun records a single execution of a scheduled task.
type JobRun struct {
	ID           string     `json:"id"                     db:"id"`
	JobName      string     `json:"jobName"                db:"job_name"`
	StartedAt    time.Time  `json:"startedAt"              db:"started_at"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"  db:"completed_at"`
	Status       string     `json:"status"                 db:"status"`
	ErrorText    string     `json:"error,omitempty"        db:"error_text"`
	RowsAffected *int       `json:"rowsAffected,omitempty" db:"rows_affected"`
}
