package ebay_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/ebay-catalog-importer/internal/ebay"
	domain "github.com/donaldgifford/ebay-catalog-importer/pkg/types"
)

func TestToProduct(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item ebay.ItemSummary
		want domain.Product
	}{
		{
			name: "full listing",
			item: ebay.ItemSummary{
				ItemID:           "v1|110|0",
				Title:            "Mid-century brass lamp",
				ShortDescription: "<p>Working condition</p>",
				Price:            &ebay.ItemPrice{Value: "45.50", Currency: "USD"},
				Image:            &ebay.ItemImage{ImageURL: "https://i.ebayimg.com/lamp.jpg"},
			},
			want: domain.Product{
				Title:       "Mid-century brass lamp",
				BodyHTML:    "<p>Working condition</p>",
				Vendor:      "Ebayify",
				ProductType: "Imported",
				Status:      "draft",
				Variants:    []domain.ProductVariant{{Price: "45.50", SKU: "v1|110|0"}},
				Images:      []domain.ProductImage{{Src: "https://i.ebayimg.com/lamp.jpg"}},
			},
		},
		{
			name: "missing image yields no images",
			item: ebay.ItemSummary{
				ItemID: "v1|111|0",
				Title:  "Oak chair",
				Price:  &ebay.ItemPrice{Value: "120.00"},
			},
			want: domain.Product{
				Title:       "Oak chair",
				BodyHTML:    "Imported from eBay.",
				Vendor:      "Ebayify",
				ProductType: "Imported",
				Status:      "draft",
				Variants:    []domain.ProductVariant{{Price: "120.00", SKU: "v1|111|0"}},
				Images:      []domain.ProductImage{},
			},
		},
		{
			name: "empty image url yields no images",
			item: ebay.ItemSummary{
				ItemID: "v1|112|0",
				Title:  "Vase",
				Image:  &ebay.ItemImage{},
			},
			want: domain.Product{
				Title:       "Vase",
				BodyHTML:    "Imported from eBay.",
				Vendor:      "Ebayify",
				ProductType: "Imported",
				Status:      "draft",
				Variants:    []domain.ProductVariant{{Price: "0.00", SKU: "v1|112|0"}},
				Images:      []domain.ProductImage{},
			},
		},
		{
			name: "missing title and price fall back",
			item: ebay.ItemSummary{ItemID: "v1|113|0", Title: "   "},
			want: domain.Product{
				Title:       "eBay item v1|113|0",
				BodyHTML:    "Imported from eBay.",
				Vendor:      "Ebayify",
				ProductType: "Imported",
				Status:      "draft",
				Variants:    []domain.ProductVariant{{Price: "0.00", SKU: "v1|113|0"}},
				Images:      []domain.ProductImage{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ebay.ToProduct(&tt.item))
		})
	}
}

func TestToProduct_Deterministic(t *testing.T) {
	t.Parallel()

	item := ebay.ItemSummary{
		ItemID: "v1|200|0",
		Title:  "Record player",
		Price:  &ebay.ItemPrice{Value: "99.99"},
		Image:  &ebay.ItemImage{ImageURL: "https://i.ebayimg.com/rp.jpg"},
	}

	first := ebay.ToProduct(&item)
	for range 10 {
		assert.Equal(t, first, ebay.ToProduct(&item))
	}
}
