package shopify

import "storefront-gateway/internal/domain"

// flattenPage unwraps a product connection into canonical records,
// preserving upstream order.
func flattenPage(edges []productEdge) []domain.Product {
	products := make([]domain.Product, 0, len(edges))
	for _, edge := range edges {
		products = append(products, flattenProduct(&edge.Node))
	}
	return products
}

// flattenProduct converts one raw product node to its canonical record.
// Image and variant connections are unwrapped in order; an empty image list
// falls back to the separately-reported featured image.
func flattenProduct(node *rawProduct) domain.Product {
	p := domain.Product{
		ID:          node.ID,
		Title:       node.Title,
		Handle:      node.Handle,
		Description: node.DescriptionHTML,
		Vendor:      node.Vendor,
		ProductType: node.ProductType,
		Status:      node.Status,
		Tags:        node.Tags,
		CreatedAt:   node.CreatedAt,
		UpdatedAt:   node.UpdatedAt,
		PublishedAt: node.PublishedAt,
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}

	for _, opt := range node.Options {
		p.Options = append(p.Options, domain.Option{
			Name:     opt.Name,
			Position: opt.Position,
			Values:   opt.Values,
		})
	}

	p.Images = []domain.Image{}
	if node.Images != nil {
		for i, edge := range node.Images.Edges {
			p.Images = append(p.Images, domain.Image{
				URL:      edge.Node.URL,
				Alt:      edge.Node.AltText,
				Position: i + 1,
			})
		}
	}
	if len(p.Images) == 0 && node.FeaturedImage != nil {
		p.Images = append(p.Images, domain.Image{
			URL:      node.FeaturedImage.URL,
			Alt:      node.FeaturedImage.AltText,
			Position: 1,
		})
	}

	p.Variants = []domain.Variant{}
	if node.Variants != nil {
		for _, edge := range node.Variants.Edges {
			p.Variants = append(p.Variants, flattenVariant(&edge.Node))
		}
	}

	return p
}

// flattenVariant picks the canonical price: the structured amount wins over
// the legacy flat field when both are present.
func flattenVariant(node *rawVariant) domain.Variant {
	v := domain.Variant{
		ID:                node.ID,
		Title:             node.Title,
		SKU:               node.SKU,
		Price:             node.Price.Amount,
		InventoryQuantity: node.InventoryQuantity,
	}
	if node.PriceV2 != nil && node.PriceV2.Amount != "" {
		v.Price = node.PriceV2.Amount
		v.Currency = node.PriceV2.CurrencyCode
	}
	for _, so := range node.SelectedOptions {
		v.SelectedOptions = append(v.SelectedOptions, domain.SelectedOption{
			Name:  so.Name,
			Value: so.Value,
		})
	}
	return v
}
