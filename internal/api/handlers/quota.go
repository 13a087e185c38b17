package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// UsageReader reports a tenant's quota window. *quota.Ledger implements it.
type UsageReader interface {
	Usage(ctx context.Context, shop string) (*quota.Usage, error)
}

// QuotaHandler provides the tenant quota and the application-wide eBay
// budget endpoints.
type QuotaHandler struct {
	usage     UsageReader
	rl        *ebay.RateLimiter
	analytics ebay.BrowseBudgetReader
}

// NewQuotaHandler creates a new QuotaHandler. rl and analytics may be nil.
func NewQuotaHandler(usage UsageReader, rl *ebay.RateLimiter, analytics ebay.BrowseBudgetReader) *QuotaHandler {
	return &QuotaHandler{usage: usage, rl: rl, analytics: analytics}
}

// TenantQuotaOutput is the response body for the tenant quota endpoint.
type TenantQuotaOutput struct {
	Body struct {
		Plan      domain.PlanTier `json:"plan"      example:"free"`
		Used      int             `json:"used"      example:"12"                   doc:"Units used in the current window"`
		Limit     int             `json:"limit"     example:"250"                  doc:"Units allowed per window"`
		Remaining int             `json:"remaining" example:"238"`
		ResetAt   time.Time       `json:"resetAt"   example:"2026-11-16T00:00:00Z" doc:"When the current window ends"`
	}
}

// GetTenantQuota returns the calling tenant's quota usage.
func (h *QuotaHandler) GetTenantQuota(ctx context.Context, _ *struct{}) (*TenantQuotaOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	u, err := h.usage.Usage(ctx, shop)
	if errors.Is(err, domain.ErrTenantNotFound) {
		return nil, huma.Error400BadRequest("eBay seller username not configured")
	}
	if err != nil {
		return nil, huma.Error500InternalServerError("reading quota failed: " + err.Error())
	}

	resp := &TenantQuotaOutput{}
	resp.Body.Plan = u.Plan
	resp.Body.Used = u.Used
	resp.Body.Limit = u.Limit
	resp.Body.Remaining = u.Remaining
	resp.Body.ResetAt = u.ResetAt
	return resp, nil
}

// LocalBudget is the process's own count of eBay calls.
type LocalBudget struct {
	DailyLimit int64     `json:"dailyLimit" example:"5000" doc:"Configured daily API call limit"`
	DailyUsed  int64     `json:"dailyUsed"  example:"142"  doc:"API calls made in the current 24-hour window"`
	Remaining  int64     `json:"remaining"  example:"4858"`
	ResetAt    time.Time `json:"resetAt"    example:"2026-10-18T14:30:00Z"`
}

// BrowseBudget is eBay's own view of the Browse API budget.
type BrowseBudget struct {
	Resource   string    `json:"resource"          example:"buy.browse" doc:"Browse resource with the fewest calls left"`
	Exhausted  bool      `json:"exhausted"         doc:"eBay refuses Browse calls until resetAt"`
	Count      int64     `json:"count"             example:"142"`
	Limit      int64     `json:"limit"             example:"5000"`
	Remaining  int64     `json:"remaining"         example:"4858"`
	ResetAt    time.Time `json:"resetAt"           example:"2026-10-18T00:00:00Z"`
	WindowSecs int64     `json:"timeWindowSeconds" example:"86400"`
}

// EbayQuotaOutput is the response body for the eBay quota endpoint.
type EbayQuotaOutput struct {
	Body struct {
		Local       LocalBudget   `json:"local"`
		Browse      *BrowseBudget `json:"browse,omitempty"`
		BrowseError string        `json:"browseError,omitempty" doc:"Why the Analytics API could not be read"`
	}
}

// GetEbayQuota returns the application-wide eBay call budget every
// tenant's imports draw from.
func (h *QuotaHandler) GetEbayQuota(ctx context.Context, _ *struct{}) (*EbayQuotaOutput, error) {
	resp := &EbayQuotaOutput{}

	if h.rl != nil {
		snap := h.rl.Snapshot()
		resp.Body.Local = LocalBudget{
			DailyLimit: snap.MaxDaily,
			DailyUsed:  snap.DailyCount,
			Remaining:  snap.Remaining,
			ResetAt:    snap.ResetAt,
		}
	}

	if h.analytics != nil {
		budget, err := h.analytics.BrowseBudget(ctx)
		if err != nil {
			resp.Body.BrowseError = err.Error()
		} else {
			resp.Body.Browse = &BrowseBudget{
				Resource:   budget.Resource,
				Exhausted:  budget.Exhausted(time.Now()),
				Count:      budget.Count,
				Limit:      budget.Limit,
				Remaining:  budget.Remaining,
				ResetAt:    budget.ResetAt,
				WindowSecs: int64(budget.Window / time.Second),
			}
		}
	}

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoints with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get tenant quota",
		Description: "Returns the calling shop's plan, usage and window reset time.",
		Tags:        []string{"quota"},
		Errors:      []int{http.StatusBadRequest, http.StatusUnauthorized, http.StatusInternalServerError},
	}, h.GetTenantQuota)

	huma.Register(api, huma.Operation{
		OperationID: "get-ebay-quota",
		Method:      http.MethodGet,
		Path:        "/ops/v1/ebay/quota",
		Summary:     "Get eBay API quota status",
		Description: "Returns the app-wide local daily call count and, when available, eBay's Analytics API view of the Browse budget. Operator only.",
		Tags:        []string{"ebay"},
		Security:    operatorSecurity,
	}, h.GetEbayQuota)
}
