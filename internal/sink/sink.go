// Package sink forwards translated products to the storefront.
package sink

import (
	"context"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// ProductSink creates one product in the tenant's store.
type ProductSink interface {
	CreateProduct(ctx context.Context, shopDomain string, product domain.Product) error
}
