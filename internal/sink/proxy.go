package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-catalog-importer/internal/metrics"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

const (
	createProductPath = "/api/proxy/create-product"
	maxErrorBody      = 2048
)

// ErrProxyNotConfigured is returned when the proxy URL or secret is empty.
var ErrProxyNotConfigured = errors.New("product proxy not configured")

// ProxySink posts products to the storefront app's internal proxy, which
// holds the tenant's Shopify session and calls the Admin API.
type ProxySink struct {
	baseURL string
	secret  string
	client  *http.Client
	now     func() time.Time
}

// ProxyOption configures a ProxySink.
type ProxyOption func(*ProxySink)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) ProxyOption {
	return func(p *ProxySink) {
		p.client = c
	}
}

// WithNowFunc overrides the clock used to resolve Retry-After dates.
func WithNowFunc(fn func() time.Time) ProxyOption {
	return func(p *ProxySink) {
		p.now = fn
	}
}

// NewProxySink creates a ProxySink for the app at baseURL.
func NewProxySink(baseURL, secret string, opts ...ProxyOption) *ProxySink {
	p := &ProxySink{
		baseURL: strings.TrimRight(baseURL, "/"),
		secret:  secret,
		client:  &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type createProductRequest struct {
	ShopDomain string         `json:"shopDomain"`
	Product    domain.Product `json:"product"`
}

// CreateProduct forwards one product. Non-2xx responses come back as
// *domain.HTTPStatusError wrapping domain.ErrDownstreamForward.
func (p *ProxySink) CreateProduct(ctx context.Context, shopDomain string, product domain.Product) error {
	if p.baseURL == "" || p.secret == "" {
		return fmt.Errorf("%w: %w", domain.ErrDownstreamForward, ErrProxyNotConfigured)
	}

	body, err := json.Marshal(createProductRequest{ShopDomain: shopDomain, Product: product})
	if err != nil {
		return fmt.Errorf("marshaling product: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.baseURL+createProductPath,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating proxy request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.secret)

	start := time.Now()
	resp, err := p.client.Do(req)
	metrics.ProxyRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.ProxyRequestsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: sending proxy request: %w", domain.ErrDownstreamForward, err)
	}
	defer resp.Body.Close()

	metrics.ProxyRequestsTotal.WithLabelValues(strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &domain.HTTPStatusError{
			Service:    "product proxy",
			StatusCode: resp.StatusCode,
			RetryAfter: domain.ParseRetryAfter(resp.Header.Get("Retry-After"), p.now()),
			Body:       strings.TrimSpace(string(respBody)),
			Kind:       domain.ErrDownstreamForward,
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
