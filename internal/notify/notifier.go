// Package notify defines the notification interface and implementations
// for import job completion reports.
package notify

import (
	"context"
	"time"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// JobSummary contains the data needed to report a finished import job.
type JobSummary struct {
	JobID          string
	ShopDomain     string
	SellerUsername string
	Status         domain.JobStatus
	TotalItems     int
	ItemsImported  int
	ItemsFailed    int
	PagesFailed    int
	Duration       time.Duration
	Error          string
}

// SummaryFromJob builds a JobSummary from a finalized job.
func SummaryFromJob(j *domain.ImportJob, status domain.JobStatus, errText string, took time.Duration) JobSummary {
	return JobSummary{
		JobID:          j.ID,
		ShopDomain:     j.ShopDomain,
		SellerUsername: j.SellerUsername,
		Status:         status,
		TotalItems:     j.TotalItems,
		ItemsImported:  j.ItemsImported,
		ItemsFailed:    j.ItemsFailed,
		PagesFailed:    len(j.PageFailures),
		Duration:       took,
		Error:          errText,
	}
}

// Notifier defines the interface for reporting finished import jobs.
type Notifier interface {
	JobFinished(ctx context.Context, summary *JobSummary) error
}
