package ebay

import (
	"context"
	"fmt"
	"log/slog"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
	// The Browse API requires a keyword or category; a single letter
	// matches effectively every listing once the seller filter applies.
	defaultSellerQuery = "a"
)

// Paginator walks a seller's listings in fixed-size pages. Page n covers
// offset n*pageSize, so the page index is a stable resume cursor.
type Paginator struct {
	client   EbayClient
	logger   *slog.Logger
	pageSize int
	query    string
}

// PaginatorOption configures the Paginator.
type PaginatorOption func(*Paginator)

// WithPageSize overrides the default page size. Values outside 1..200 are
// ignored.
func WithPageSize(size int) PaginatorOption {
	return func(p *Paginator) {
		if size > 0 && size <= maxPageSize {
			p.pageSize = size
		}
	}
}

// WithQuery overrides the keyword sent alongside the seller filter.
func WithQuery(q string) PaginatorOption {
	return func(p *Paginator) {
		if q != "" {
			p.query = q
		}
	}
}

// WithPaginatorLogger sets the logger.
func WithPaginatorLogger(l *slog.Logger) PaginatorOption {
	return func(p *Paginator) {
		p.logger = l
	}
}

// NewPaginator creates a new Paginator.
func NewPaginator(client EbayClient, opts ...PaginatorOption) *Paginator {
	p := &Paginator{
		client:   client,
		logger:   slog.Default(),
		pageSize: defaultPageSize,
		query:    defaultSellerQuery,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PageSize returns the number of items requested per page.
func (p *Paginator) PageSize() int {
	return p.pageSize
}

// Probe asks eBay for a single listing to learn how many the seller has.
func (p *Paginator) Probe(ctx context.Context, seller string) (int, error) {
	resp, err := p.client.Search(ctx, p.request(seller, 1, 0))
	if err != nil {
		return 0, fmt.Errorf("probing seller %q: %w", seller, err)
	}
	p.logger.DebugContext(ctx, "seller probe", "seller", seller, "total", resp.Total)
	return resp.Total, nil
}

// Page fetches page n (zero-based) of the seller's listings using pages of
// size items. A non-positive size uses the paginator's page size, so a job
// keeps the page size it was created with across restarts.
func (p *Paginator) Page(ctx context.Context, seller string, n, size int) (*SearchResponse, error) {
	if size <= 0 || size > maxPageSize {
		size = p.pageSize
	}
	resp, err := p.client.Search(ctx, p.request(seller, size, n*size))
	if err != nil {
		return nil, fmt.Errorf("fetching page %d: %w", n, err)
	}
	p.logger.DebugContext(ctx, "page fetched", "page", n, "size", size, "items", len(resp.Items))
	return resp, nil
}

// Lookup fetches an arbitrary window of the seller's listings.
func (p *Paginator) Lookup(ctx context.Context, seller string, limit, offset int) (*SearchResponse, error) {
	if limit <= 0 {
		limit = p.pageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	resp, err := p.client.Search(ctx, p.request(seller, limit, offset))
	if err != nil {
		return nil, fmt.Errorf("looking up seller %q: %w", seller, err)
	}
	return resp, nil
}

func (p *Paginator) request(seller string, limit, offset int) SearchRequest {
	return SearchRequest{
		Query:  p.query,
		Seller: seller,
		Limit:  limit,
		Offset: offset,
	}
}
