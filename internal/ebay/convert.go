package ebay

import (
	"strings"

	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

// Fixed attributes of every imported product.
const (
	ProductVendor      = "Ebayify"
	ProductType        = "Imported"
	ProductStatus      = "draft"
	DefaultDescription = "Imported from eBay."
	DefaultPrice       = "0.00"
)

// ToProduct maps a single eBay listing onto a draft storefront product.
// It never fails: missing fields get fixed fallbacks.
func ToProduct(item *ItemSummary) domain.Product {
	title := strings.TrimSpace(item.Title)
	if title == "" {
		title = "eBay item " + item.ItemID
	}

	body := item.ShortDescription
	if strings.TrimSpace(body) == "" {
		body = DefaultDescription
	}

	price := DefaultPrice
	if item.Price != nil && strings.TrimSpace(item.Price.Value) != "" {
		price = item.Price.Value
	}

	images := []domain.ProductImage{}
	if item.Image != nil && item.Image.ImageURL != "" {
		images = append(images, domain.ProductImage{Src: item.Image.ImageURL})
	}

	return domain.Product{
		Title:       title,
		BodyHTML:    body,
		Vendor:      ProductVendor,
		ProductType: ProductType,
		Status:      ProductStatus,
		Variants: []domain.ProductVariant{
			{Price: price, SKU: item.ItemID},
		},
		Images: images,
	}
}
