package domain

// Product is the destination storefront's product payload (Shopify REST
// product shape), as forwarded to the product proxy.
type Product struct {
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Status      string           `json:"status"`
	Variants    []ProductVariant `json:"variants"`
	Images      []ProductImage   `json:"images"`
}

// ProductVariant is a single purchasable variant of a Product.
type ProductVariant struct {
	Price string `json:"price"`
	SKU   string `json:"sku"`
}

// ProductImage references an image by URL.
type ProductImage struct {
	Src string `json:"src"`
}
