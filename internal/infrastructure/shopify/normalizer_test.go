package shopify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenProductUnwrapsConnections(t *testing.T) {
	node := rawProduct{
		ID:              "gid://shopify/Product/1",
		Title:           "Red Boots",
		Handle:          "red-boots",
		DescriptionHTML: "<p>Sturdy.</p>",
		Vendor:          "Acme",
		ProductType:     "Shoes",
		Status:          "ACTIVE",
		Tags:            []string{"sale", "boots"},
		Options: []rawOption{
			{Name: "Color", Position: 1, Values: []string{"Red", "Blue"}},
		},
		Images: &imageConnection{Edges: []imageEdge{
			{Node: rawImage{URL: "https://cdn/1.png", AltText: "front"}},
			{Node: rawImage{URL: "https://cdn/2.png"}},
		}},
		Variants: &variantConnection{Edges: []variantEdge{
			{Node: rawVariant{
				ID:                "gid://shopify/ProductVariant/11",
				Title:             "Red / M",
				SKU:               "RB-M",
				PriceV2:           &rawMoney{Amount: "49.99", CurrencyCode: "USD"},
				InventoryQuantity: 3,
				SelectedOptions:   []rawSelectedOption{{Name: "Color", Value: "Red"}},
			}},
		}},
	}

	p := flattenProduct(&node)

	require.Equal(t, "gid://shopify/Product/1", p.ID)
	require.Equal(t, "<p>Sturdy.</p>", p.Description)

	require.Len(t, p.Images, 2)
	require.Equal(t, "https://cdn/1.png", p.Images[0].URL)
	require.Equal(t, 1, p.Images[0].Position)
	require.Equal(t, 2, p.Images[1].Position)

	require.Len(t, p.Variants, 1)
	v := p.Variants[0]
	require.Equal(t, "49.99", v.Price)
	require.Equal(t, "USD", v.Currency)
	require.Equal(t, 3, v.InventoryQuantity)
	require.Equal(t, "Red", v.SelectedOptions[0].Value)

	require.Len(t, p.Options, 1)
	require.Equal(t, []string{"Red", "Blue"}, p.Options[0].Values)
}

func TestFlattenProductEmptyDefaults(t *testing.T) {
	p := flattenProduct(&rawProduct{ID: "gid://shopify/Product/9"})

	require.NotNil(t, p.Tags)
	require.Empty(t, p.Tags)
	require.NotNil(t, p.Images)
	require.Empty(t, p.Images)
	require.NotNil(t, p.Variants)
	require.Empty(t, p.Variants)
}

func TestFlattenProductFeaturedImageFallback(t *testing.T) {
	node := rawProduct{
		ID:            "gid://shopify/Product/2",
		FeaturedImage: &rawImage{URL: "https://cdn/featured.png", AltText: "hero"},
	}

	p := flattenProduct(&node)
	require.Len(t, p.Images, 1)
	require.Equal(t, "https://cdn/featured.png", p.Images[0].URL)
	require.Equal(t, 1, p.Images[0].Position)

	// An explicit image list wins over the featured image.
	node.Images = &imageConnection{Edges: []imageEdge{
		{Node: rawImage{URL: "https://cdn/listed.png"}},
	}}
	p = flattenProduct(&node)
	require.Len(t, p.Images, 1)
	require.Equal(t, "https://cdn/listed.png", p.Images[0].URL)
}

func TestFlattenVariantPricePriority(t *testing.T) {
	// Structured price wins when both shapes are present.
	v := flattenVariant(&rawVariant{
		PriceV2: &rawMoney{Amount: "12.50", CurrencyCode: "EUR"},
		Price:   legacyPrice{Amount: "99.99"},
	})
	require.Equal(t, "12.50", v.Price)
	require.Equal(t, "EUR", v.Currency)

	// Legacy flat price is the fallback.
	v = flattenVariant(&rawVariant{Price: legacyPrice{Amount: "99.99"}})
	require.Equal(t, "99.99", v.Price)
	require.Empty(t, v.Currency)
}

func TestFlattenPagePreservesOrder(t *testing.T) {
	edges := []productEdge{
		{Node: rawProduct{ID: "gid://shopify/Product/1"}},
		{Node: rawProduct{ID: "gid://shopify/Product/2"}},
		{Node: rawProduct{ID: "gid://shopify/Product/3"}},
	}

	products := flattenPage(edges)
	require.Len(t, products, 3)
	for i, p := range products {
		require.Equal(t, edges[i].Node.ID, p.ID)
	}
}

func TestLegacyPriceAcceptsBothShapes(t *testing.T) {
	var flat legacyPrice
	require.NoError(t, json.Unmarshal([]byte(`"19.99"`), &flat))
	require.Equal(t, "19.99", flat.Amount)

	var object legacyPrice
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"19.99"}`), &object))
	require.Equal(t, "19.99", object.Amount)

	var null legacyPrice
	require.NoError(t, json.Unmarshal([]byte(`null`), &null))
	require.Empty(t, null.Amount)
}
