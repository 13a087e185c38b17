// Package ebay provides an eBay Browse API client abstracted behind interfaces
// for testability, plus the mapping of eBay listings onto storefront products.
package ebay

import (
	"context"
)

// SearchRequest defines the parameters for an eBay search.
type SearchRequest struct {
	Query   string
	Seller  string
	Limit   int
	Offset  int
	Sort    string
	Filters map[string]string
}

// SearchResponse holds the results of an eBay search.
type SearchResponse struct {
	Items   []ItemSummary
	Total   int
	Offset  int
	Limit   int
	HasMore bool
}

// EbayClient defines the interface for interacting with the eBay API.
type EbayClient interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// TokenProvider defines the interface for obtaining OAuth2 tokens.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenInvalidator is implemented by token providers that can drop a token
// eBay has rejected before its advertised expiry.
type TokenInvalidator interface {
	Invalidate()
}
