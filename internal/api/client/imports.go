package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// Settings is the tenant's importer configuration.
type Settings struct {
	EbaySellerUsername string          `json:"ebaySellerUsername"`
	Plan               domain.PlanTier `json:"plan"`
	Configured         bool            `json:"configured"`
}

// GetSettings returns the calling shop's settings.
func (c *Client) GetSettings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.get(ctx, "/api/v1/settings", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings stores the eBay seller the shop imports from.
func (c *Client) SaveSettings(ctx context.Context, seller string) error {
	body := map[string]string{"ebaySellerUsername": seller}
	return c.post(ctx, "/api/v1/settings", body, nil)
}

// QuotaSnapshot is the tenant quota after a billable request.
type QuotaSnapshot struct {
	Used    int       `json:"used"`
	Limit   int       `json:"limit"`
	ResetAt time.Time `json:"resetAt"`
}

// LookupResponse is one page of the seller's listings.
type LookupResponse struct {
	Items   []ebay.ItemSummary `json:"items"`
	Total   int                `json:"total"`
	Offset  int                `json:"offset"`
	Limit   int                `json:"limit"`
	HasMore bool               `json:"hasMore"`
	Quota   QuotaSnapshot      `json:"quota"`
}

// Lookup fetches a page of the configured seller's listings. It costs quota.
func (c *Client) Lookup(ctx context.Context, limit, offset int) (*LookupResponse, error) {
	body := map[string]int{"limit": limit, "offset": offset}
	var resp LookupResponse
	if err := c.post(ctx, "/api/v1/lookup", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// StartImportResponse describes a queued import. JobID is empty when the
// seller had nothing to import.
type StartImportResponse struct {
	JobID      string     `json:"jobId"`
	TotalItems int        `json:"totalItems"`
	ETA        *time.Time `json:"eta"`
	Message    string     `json:"message"`
}

// StartImport queues an import of every listing of the configured seller.
func (c *Client) StartImport(ctx context.Context, opts domain.ImportOptions) (*StartImportResponse, error) {
	body := map[string]any{}
	if len(opts) > 0 {
		body["importOptions"] = opts
	}
	var resp StartImportResponse
	if err := c.post(ctx, "/api/v1/imports", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListImportsParams filters ListImports.
type ListImportsParams struct {
	Status string
	Limit  int
	Offset int
}

// ImportsResponse is a page of import jobs.
type ImportsResponse struct {
	Jobs  []domain.ImportJob `json:"jobs"`
	Total int                `json:"total"`
}

// ListImports returns the shop's import jobs, newest first.
func (c *Client) ListImports(ctx context.Context, p *ListImportsParams) (*ImportsResponse, error) {
	q := url.Values{}
	if p != nil {
		if p.Status != "" {
			q.Set("status", p.Status)
		}
		if p.Limit > 0 {
			q.Set("limit", strconv.Itoa(p.Limit))
		}
		if p.Offset > 0 {
			q.Set("offset", strconv.Itoa(p.Offset))
		}
	}

	path := "/api/v1/imports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ImportsResponse
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetImport returns one import job with its progress.
func (c *Client) GetImport(ctx context.Context, id string) (*domain.ImportJob, error) {
	var job domain.ImportJob
	if err := c.get(ctx, fmt.Sprintf("/api/v1/imports/%s", url.PathEscape(id)), &job); err != nil {
		return nil, err
	}
	return &job, nil
}
