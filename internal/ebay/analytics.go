package ebay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	defaultAnalyticsURL   = "https://api.ebay.com/developer/analytics/v1_beta/rate_limit/"
	defaultBudgetCacheTTL = time.Minute

	// browseResourcePrefix covers the seller search and the single listing
	// lookup, the two Browse resources the importer spends calls on.
	browseResourcePrefix = "buy.browse"
)

// ErrNoBrowseBudget means the Analytics API reported no rates for any
// Browse resource.
var ErrNoBrowseBudget = errors.New("no Browse API rates in analytics response")

type analyticsResponse struct {
	RateLimits []analyticsAPI `json:"rateLimits"`
}

type analyticsAPI struct {
	APIContext string              `json:"apiContext"`
	APIName    string              `json:"apiName"`
	Resources  []analyticsResource `json:"resources"`
}

type analyticsResource struct {
	Name  string          `json:"name"`
	Rates []analyticsRate `json:"rates"`
}

type analyticsRate struct {
	Count      int64  `json:"count"`
	Limit      int64  `json:"limit"`
	Remaining  int64  `json:"remaining"`
	Reset      string `json:"reset"`
	TimeWindow int64  `json:"timeWindow"`
}

// BrowseBudget is eBay's account of the application-wide Browse allowance
// every tenant's imports and lookups draw from. When more than one Browse
// resource is limited it describes the one with the fewest calls left.
type BrowseBudget struct {
	Resource  string
	Count     int64
	Limit     int64
	Remaining int64
	ResetAt   time.Time
	Window    time.Duration
}

// Exhausted reports whether eBay will refuse Browse calls until ResetAt.
func (b *BrowseBudget) Exhausted(now time.Time) bool {
	return b.Remaining <= 0 && now.Before(b.ResetAt)
}

// BrowseBudgetReader reports the application's Browse API budget.
type BrowseBudgetReader interface {
	BrowseBudget(ctx context.Context) (*BrowseBudget, error)
}

// AnalyticsClient reads the Browse budget from the eBay Developer Analytics
// API. Results are cached for a short TTL so operator dashboards polling the
// budget do not spend Analytics calls of their own.
type AnalyticsClient struct {
	tokens       TokenProvider
	analyticsURL string
	client       *http.Client
	ttl          time.Duration
	now          func() time.Time
	observe      func(*BrowseBudget)

	mu        sync.Mutex
	cached    *BrowseBudget
	fetchedAt time.Time
}

// AnalyticsOption configures the AnalyticsClient.
type AnalyticsOption func(*AnalyticsClient)

// WithAnalyticsURL overrides the default Analytics API endpoint.
func WithAnalyticsURL(u string) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.analyticsURL = u
	}
}

// WithAnalyticsHTTPClient overrides the default HTTP client.
func WithAnalyticsHTTPClient(hc *http.Client) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.client = hc
	}
}

// WithBudgetCacheTTL sets how long a fetched budget is reused. Zero
// disables caching.
func WithBudgetCacheTTL(d time.Duration) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.ttl = d
	}
}

// WithAnalyticsNowFunc overrides the clock, for tests.
func WithAnalyticsNowFunc(f func() time.Time) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.now = f
	}
}

// WithBudgetObserver registers f to be called with every freshly fetched
// budget, typically RateLimiter.Sync.
func WithBudgetObserver(f func(*BrowseBudget)) AnalyticsOption {
	return func(c *AnalyticsClient) {
		c.observe = f
	}
}

// NewAnalyticsClient creates a new eBay Analytics API client.
func NewAnalyticsClient(tokens TokenProvider, opts ...AnalyticsOption) *AnalyticsClient {
	c := &AnalyticsClient{
		tokens:       tokens,
		analyticsURL: defaultAnalyticsURL,
		client:       &http.Client{Timeout: 10 * time.Second},
		ttl:          defaultBudgetCacheTTL,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BrowseBudget returns the tightest Browse API budget eBay reports for the
// application, from cache when it is fresh.
func (c *AnalyticsClient) BrowseBudget(ctx context.Context) (*BrowseBudget, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		b := *c.cached
		return &b, nil
	}

	b, err := c.fetch(ctx)

	var statusErr *domain.HTTPStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		if inv, ok := c.tokens.(TokenInvalidator); ok {
			inv.Invalidate()
			b, err = c.fetch(ctx)
		}
	}
	if err != nil {
		return nil, err
	}

	c.cached, c.fetchedAt = b, c.now()
	if c.observe != nil {
		seen := *b
		c.observe(&seen)
	}
	out := *b
	return &out, nil
}

func (c *AnalyticsClient) fetch(ctx context.Context) (*BrowseBudget, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting auth token: %w", err)
	}

	u, err := url.Parse(c.analyticsURL)
	if err != nil {
		return nil, fmt.Errorf("parsing analytics URL: %w", err)
	}
	q := u.Query()
	q.Set("api_context", "buy")
	q.Set("api_name", "browse")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating analytics request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing analytics request: %w: %w", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading analytics response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &domain.HTTPStatusError{
			Service:    "eBay analytics API",
			StatusCode: resp.StatusCode,
			Body:       truncate(string(body), maxErrorBody),
			Kind:       domain.ErrUpstreamUnavailable,
		}
	}

	var parsed analyticsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing analytics response: %w", err)
	}

	return tightestBrowseBudget(parsed)
}

// tightestBrowseBudget picks the Browse resource rate with the fewest calls
// remaining. Resources outside the buy/browse API, or without rates, are
// ignored.
func tightestBrowseBudget(resp analyticsResponse) (*BrowseBudget, error) {
	var best *BrowseBudget
	for _, api := range resp.RateLimits {
		if !strings.EqualFold(api.APIContext, "buy") || !strings.EqualFold(api.APIName, "browse") {
			continue
		}
		for _, res := range api.Resources {
			if !strings.HasPrefix(res.Name, browseResourcePrefix) {
				continue
			}
			for _, r := range res.Rates {
				resetAt, err := time.Parse(time.RFC3339, r.Reset)
				if err != nil {
					return nil, fmt.Errorf("parsing reset time %q of %s: %w", r.Reset, res.Name, err)
				}
				if best != nil && r.Remaining >= best.Remaining {
					continue
				}
				best = &BrowseBudget{
					Resource:  res.Name,
					Count:     r.Count,
					Limit:     r.Limit,
					Remaining: r.Remaining,
					ResetAt:   resetAt,
					Window:    time.Duration(r.TimeWindow) * time.Second,
				}
			}
		}
	}

	if best == nil {
		return nil, ErrNoBrowseBudget
	}
	return best, nil
}
