package domain

// Product is the canonical, request-scoped product record produced at the
// upstream client boundary. Downstream components never see the raw
// connection/edge shapes.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle"`
	Description string    `json:"description"`
	Vendor      string    `json:"vendor"`
	ProductType string    `json:"productType"`
	Status      string    `json:"status"`
	Tags        []string  `json:"tags"`
	CreatedAt   string    `json:"createdAt"`
	UpdatedAt   string    `json:"updatedAt"`
	PublishedAt string    `json:"publishedAt"`
	Options     []Option  `json:"options"`
	Images      []Image   `json:"images"`
	Variants    []Variant `json:"variants"`
}

// PrimaryImage returns the first image, if any.
func (p *Product) PrimaryImage() *Image {
	if len(p.Images) == 0 {
		return nil
	}
	return &p.Images[0]
}

// Variant is a canonical product variant. Price is a decimal string as
// reported by the upstream platform.
type Variant struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	SKU               string           `json:"sku"`
	Price             string           `json:"price"`
	Currency          string           `json:"currency"`
	InventoryQuantity int              `json:"inventoryQuantity"`
	SelectedOptions   []SelectedOption `json:"selectedOptions"`
}

// InStock reports whether the variant has positive inventory.
func (v *Variant) InStock() bool {
	return v.InventoryQuantity > 0
}

// Option is a product-level option definition (e.g. Color with values
// [Red, Blue]).
type Option struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// SelectedOption is a variant's concrete option assignment.
type SelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Image is a canonical product image.
type Image struct {
	URL      string `json:"url"`
	Alt      string `json:"alt"`
	Position int    `json:"position"`
}

// PageInfo carries the upstream pagination cursors for one fetched page.
type PageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}
