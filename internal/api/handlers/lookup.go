package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
)

// Lookuper runs a quota-charged listing lookup. *engine.Service implements it.
type Lookuper interface {
	Lookup(ctx context.Context, shop string, limit, offset int) (*engine.LookupResult, error)
}

// LookupHandler handles seller listing lookups.
type LookupHandler struct {
	svc Lookuper
}

// NewLookupHandler creates a new LookupHandler.
func NewLookupHandler(svc Lookuper) *LookupHandler {
	return &LookupHandler{svc: svc}
}

// LookupInput is the request body for a lookup.
type LookupInput struct {
	Body struct {
		Limit  int `json:"limit,omitempty"  minimum:"1" maximum:"200" default:"50" doc:"Listings per page"`
		Offset int `json:"offset,omitempty" minimum:"0"                            doc:"Listings to skip"`
	}
}

// QuotaSnapshot is the tenant's usage after a charged request.
type QuotaSnapshot struct {
	Used    int       `json:"used"    example:"12"`
	Limit   int       `json:"limit"   example:"250"`
	ResetAt time.Time `json:"resetAt" example:"2026-11-16T00:00:00Z"`
}

// LookupOutput is the response body for a lookup.
type LookupOutput struct {
	Body struct {
		Items   []ebay.ItemSummary `json:"items"`
		Total   int                `json:"total"   example:"120"`
		Offset  int                `json:"offset"  example:"0"`
		Limit   int                `json:"limit"   example:"50"`
		HasMore bool               `json:"hasMore" example:"true"`
		Quota   QuotaSnapshot      `json:"quota"`
	}
}

// Lookup returns one window of the tenant's seller listings.
func (h *LookupHandler) Lookup(ctx context.Context, input *LookupInput) (*LookupOutput, error) {
	shop, err := shopFrom(ctx)
	if err != nil {
		return nil, err
	}

	limit := input.Body.Limit
	if limit <= 0 {
		limit = 50
	}

	res, err := h.svc.Lookup(ctx, shop, limit, input.Body.Offset)
	if err != nil {
		return nil, statusError("eBay lookup", err)
	}

	resp := &LookupOutput{}
	resp.Body.Items = res.Listings.Items
	if resp.Body.Items == nil {
		resp.Body.Items = []ebay.ItemSummary{}
	}
	resp.Body.Total = res.Listings.Total
	resp.Body.Offset = res.Listings.Offset
	resp.Body.Limit = res.Listings.Limit
	resp.Body.HasMore = res.Listings.HasMore
	resp.Body.Quota = QuotaSnapshot{
		Used:    res.Quota.Used,
		Limit:   res.Quota.Limit,
		ResetAt: res.Quota.ResetAt,
	}
	return resp, nil
}

// RegisterLookupRoutes registers the lookup endpoint with the Huma API.
func RegisterLookupRoutes(api huma.API, h *LookupHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "lookup-listings",
		Method:      http.MethodPost,
		Path:        "/api/v1/lookup",
		Summary:     "Look up seller listings",
		Description: "Returns a page of the configured eBay seller's listings. Charged against the tenant quota.",
		Tags:        []string{"ebay"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusUnauthorized,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
		},
	}, h.Lookup)
}
