package client

import (
	"context"
	"net/url"
	"time"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// Quota is the shop's plan usage in the current window.
type Quota struct {
	Plan      domain.PlanTier `json:"plan"`
	Used      int             `json:"used"`
	Limit     int             `json:"limit"`
	Remaining int             `json:"remaining"`
	ResetAt   time.Time       `json:"resetAt"`
}

// GetQuota returns the calling shop's quota.
func (c *Client) GetQuota(ctx context.Context) (*Quota, error) {
	var q Quota
	if err := c.get(ctx, "/api/v1/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// EbayQuota is the application-wide eBay call budget.
type EbayQuota struct {
	Local struct {
		DailyLimit int64     `json:"dailyLimit"`
		DailyUsed  int64     `json:"dailyUsed"`
		Remaining  int64     `json:"remaining"`
		ResetAt    time.Time `json:"resetAt"`
	} `json:"local"`
	Browse *struct {
		Count             int64     `json:"count"`
		Limit             int64     `json:"limit"`
		Remaining         int64     `json:"remaining"`
		ResetAt           time.Time `json:"resetAt"`
		TimeWindowSeconds int64     `json:"timeWindowSeconds"`
	} `json:"browse,omitempty"`
	BrowseError string `json:"browseError,omitempty"`
}

// GetEbayQuota returns the local and eBay-reported Browse API budget.
func (c *Client) GetEbayQuota(ctx context.Context) (*EbayQuota, error) {
	var q EbayQuota
	if err := c.get(ctx, "/ops/v1/ebay/quota", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ListSchedulerRuns returns the latest run of each scheduled task.
func (c *Client) ListSchedulerRuns(ctx context.Context) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	if err := c.get(ctx, "/ops/v1/scheduler/runs", &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetSchedulerHistory returns recent runs of one task.
func (c *Client) GetSchedulerHistory(ctx context.Context, task string) ([]domain.JobRun, error) {
	var runs []domain.JobRun
	if err := c.get(ctx, "/ops/v1/scheduler/runs/"+url.PathEscape(task), &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// RunSchedulerTask runs a maintenance task on the server and waits for it.
func (c *Client) RunSchedulerTask(ctx context.Context, task string) error {
	return c.post(ctx, "/ops/v1/scheduler/runs/"+url.PathEscape(task), nil, nil)
}
