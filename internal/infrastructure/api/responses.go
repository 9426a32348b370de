package api

import (
	"fmt"

	"storefront-gateway/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	availabilityInStock    = "https://schema.org/InStock"
	availabilityOutOfStock = "https://schema.org/OutOfStock"
	defaultCurrency        = "USD"
)

// ProductDetail is the schema.org-flavored detail projection.
type ProductDetail struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	URL         string         `json:"url"`
	Handle      string         `json:"handle"`
	Brand       Brand          `json:"brand"`
	ProductType string         `json:"productType"`
	Tags        []string       `json:"tags"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	PublishedAt string         `json:"publishedAt"`
	Images      []ImageObject  `json:"images"`
	Offers      AggregateOffer `json:"offers"`
}

type Brand struct {
	Type string `json:"@type"`
	Name string `json:"name"`
}

type ImageObject struct {
	Type          string `json:"@type"`
	URL           string `json:"url"`
	AlternateName string `json:"alternateName"`
	Position      int    `json:"position"`
}

type AggregateOffer struct {
	Type          string  `json:"@type"`
	LowPrice      string  `json:"lowPrice"`
	HighPrice     string  `json:"highPrice"`
	PriceCurrency string  `json:"priceCurrency"`
	OfferCount    int     `json:"offerCount"`
	Offers        []Offer `json:"offers"`
}

type Offer struct {
	Type           string          `json:"@type"`
	ID             string          `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Price          string          `json:"price"`
	PriceCurrency  string          `json:"priceCurrency"`
	Availability   string          `json:"availability"`
	InventoryLevel QuantitativeVal `json:"inventoryLevel"`
	ItemCondition  string          `json:"itemCondition"`
	Attributes     []Attribute     `json:"attributes"`
	URL            string          `json:"url"`
}

type QuantitativeVal struct {
	Type  string `json:"@type"`
	Value int    `json:"value"`
}

type Attribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// newProductDetail projects a canonical product onto the detail contract.
// shopDomain is the canonical tenant domain used to build product URLs.
func newProductDetail(p *domain.Product, shopDomain string) ProductDetail {
	status := p.Status
	if status == "" {
		status = "active"
	}

	detail := ProductDetail{
		ID:          p.ID,
		Name:        p.Title,
		Description: p.Description,
		URL:         fmt.Sprintf("https://%s/products/%s", shopDomain, p.Handle),
		Handle:      p.Handle,
		Brand:       Brand{Type: "Brand", Name: p.Vendor},
		ProductType: p.ProductType,
		Tags:        p.Tags,
		Status:      status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		PublishedAt: p.PublishedAt,
	}

	detail.Images = make([]ImageObject, 0, len(p.Images))
	for i, img := range p.Images {
		alt := img.Alt
		if alt == "" {
			alt = p.Title
		}
		detail.Images = append(detail.Images, ImageObject{
			Type:          "ImageObject",
			URL:           img.URL,
			AlternateName: alt,
			Position:      i + 1,
		})
	}

	detail.Offers = newAggregateOffer(p, shopDomain)
	return detail
}

func newAggregateOffer(p *domain.Product, shopDomain string) AggregateOffer {
	agg := AggregateOffer{
		Type:          "AggregateOffer",
		PriceCurrency: defaultCurrency,
		OfferCount:    len(p.Variants),
		Offers:        make([]Offer, 0, len(p.Variants)),
	}

	var low, high decimal.Decimal
	havePrice := false
	for _, v := range p.Variants {
		price, err := decimal.NewFromString(v.Price)
		if err == nil {
			if !havePrice {
				low, high = price, price
				havePrice = true
			} else {
				if price.LessThan(low) {
					low = price
				}
				if price.GreaterThan(high) {
					high = price
				}
			}
		}

		currency := v.Currency
		if currency == "" {
			currency = defaultCurrency
		}
		availability := availabilityOutOfStock
		if v.InStock() {
			availability = availabilityInStock
		}

		attrs := make([]Attribute, 0, len(v.SelectedOptions))
		for _, so := range v.SelectedOptions {
			attrs = append(attrs, Attribute{Name: so.Name, Value: so.Value})
		}

		agg.Offers = append(agg.Offers, Offer{
			Type:           "Offer",
			ID:             v.ID,
			SKU:            v.SKU,
			Name:           v.Title,
			Price:          v.Price,
			PriceCurrency:  currency,
			Availability:   availability,
			InventoryLevel: QuantitativeVal{Type: "QuantitativeValue", Value: v.InventoryQuantity},
			ItemCondition:  "https://schema.org/NewCondition",
			Attributes:     attrs,
			URL:            fmt.Sprintf("https://%s/products/%s?variant=%s", shopDomain, p.Handle, v.ID),
		})
	}

	if havePrice {
		agg.LowPrice = low.String()
		agg.HighPrice = high.String()
	}
	if len(p.Variants) > 0 && p.Variants[0].Currency != "" {
		agg.PriceCurrency = p.Variants[0].Currency
	}

	return agg
}
