package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-catalog-importer/internal/api/handlers"
	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	"github.com/donaldgifford/ebay-catalog-importer/internal/engine"
	"github.com/donaldgifford/ebay-catalog-importer/internal/quota"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

type stubLookuper struct {
	res *engine.LookupResult
	err error

	gotShop   string
	gotLimit  int
	gotOffset int
}

func (s *stubLookuper) Lookup(_ context.Context, shop string, limit, offset int) (*engine.LookupResult, error) {
	s.gotShop, s.gotLimit, s.gotOffset = shop, limit, offset
	return s.res, s.err
}

func TestLookup(t *testing.T) {
	t.Parallel()

	resetAt := time.Date(2026, 11, 16, 0, 0, 0, 0, time.UTC)
	ok := &engine.LookupResult{
		Listings: &ebay.SearchResponse{
			Items: []ebay.ItemSummary{
				{ItemID: "v1|1|0", Title: "Dell R740", Price: &ebay.ItemPrice{Value: "899.00", Currency: "USD"}},
			},
			Total:   120,
			Offset:  50,
			Limit:   50,
			HasMore: true,
		},
		Quota: quota.Decision{Allowed: true, Used: 13, Limit: 250, Cost: 1, ResetAt: resetAt},
	}

	tests := []struct {
		name       string
		body       map[string]any
		svc        *stubLookuper
		wantStatus int
		wantLimit  int
		wantBody   []string
	}{
		{
			name:       "returns listings and usage",
			body:       map[string]any{"limit": 50, "offset": 50},
			svc:        &stubLookuper{res: ok},
			wantStatus: http.StatusOK,
			wantLimit:  50,
			wantBody: []string{
				`"itemId":"v1|1|0"`,
				`"total":120`,
				`"hasMore":true`,
				`"used":13`,
				`"limit":250`,
			},
		},
		{
			name:       "defaults the page size",
			body:       map[string]any{},
			svc:        &stubLookuper{res: ok},
			wantStatus: http.StatusOK,
			wantLimit:  50,
		},
		{
			name:       "quota exhausted",
			body:       map[string]any{"limit": 10},
			svc:        &stubLookuper{err: &domain.QuotaExceededError{Used: 250, Limit: 250}},
			wantStatus: http.StatusTooManyRequests,
			wantLimit:  10,
			wantBody:   []string{`"used":250`, `"limit":250`, `"error"`},
		},
		{
			name:       "not configured",
			body:       map[string]any{},
			svc:        &stubLookuper{err: domain.ErrNotConfigured},
			wantStatus: http.StatusBadRequest,
			wantLimit:  50,
			wantBody:   []string{"not configured"},
		},
		{
			name:       "upstream failure",
			body:       map[string]any{},
			svc:        &stubLookuper{err: fmt.Errorf("%w: %w", domain.ErrUpstreamUnavailable, errors.New("timeout"))},
			wantStatus: http.StatusInternalServerError,
			wantLimit:  50,
			wantBody:   []string{"eBay lookup failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			api := newTenantAPI(t, testShop)
			handlers.RegisterLookupRoutes(api, handlers.NewLookupHandler(tt.svc))

			resp := api.Post("/api/v1/lookup", tt.body)
			require.Equal(t, tt.wantStatus, resp.Code, resp.Body.String())
			assert.Equal(t, testShop, tt.svc.gotShop)
			assert.Equal(t, tt.wantLimit, tt.svc.gotLimit)
			for _, want := range tt.wantBody {
				assert.Contains(t, resp.Body.String(), want)
			}
		})
	}
}

func TestLookup_RejectsOversizedPage(t *testing.T) {
	t.Parallel()

	svc := &stubLookuper{}
	api := newTenantAPI(t, testShop)
	handlers.RegisterLookupRoutes(api, handlers.NewLookupHandler(svc))

	resp := api.Post("/api/v1/lookup", map[string]any{"limit": 500})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Empty(t, svc.gotShop)
}
