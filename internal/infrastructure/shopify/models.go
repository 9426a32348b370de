package shopify

import "encoding/json"

// Raw wire shapes of the upstream Admin GraphQL API. These never leave this
// package; the normalizer converts them to canonical domain records at the
// client boundary.

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type productsResponse struct {
	Data struct {
		Products productsConnection `json:"products"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type productResponse struct {
	Data struct {
		Product *rawProduct `json:"product"`
	} `json:"data"`
	Errors []graphqlError `json:"errors"`
}

type productsConnection struct {
	Edges    []productEdge `json:"edges"`
	PageInfo rawPageInfo   `json:"pageInfo"`
}

type productEdge struct {
	Node rawProduct `json:"node"`
}

type rawPageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	StartCursor     string `json:"startCursor"`
	EndCursor       string `json:"endCursor"`
}

type rawProduct struct {
	ID              string             `json:"id"`
	Title           string             `json:"title"`
	Handle          string             `json:"handle"`
	DescriptionHTML string             `json:"descriptionHtml"`
	Vendor          string             `json:"vendor"`
	ProductType     string             `json:"productType"`
	Status          string             `json:"status"`
	Tags            []string           `json:"tags"`
	CreatedAt       string             `json:"createdAt"`
	UpdatedAt       string             `json:"updatedAt"`
	PublishedAt     string             `json:"publishedAt"`
	Options         []rawOption        `json:"options"`
	FeaturedImage   *rawImage          `json:"featuredImage"`
	Images          *imageConnection   `json:"images"`
	Variants        *variantConnection `json:"variants"`
}

type rawOption struct {
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

type imageConnection struct {
	Edges []imageEdge `json:"edges"`
}

type imageEdge struct {
	Node rawImage `json:"node"`
}

type rawImage struct {
	URL     string `json:"url"`
	AltText string `json:"altText"`
}

type variantConnection struct {
	Edges []variantEdge `json:"edges"`
}

type variantEdge struct {
	Node rawVariant `json:"node"`
}

type rawVariant struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	SKU               string              `json:"sku"`
	PriceV2           *rawMoney           `json:"priceV2"`
	Price             legacyPrice         `json:"price"`
	InventoryQuantity int                 `json:"inventoryQuantity"`
	SelectedOptions   []rawSelectedOption `json:"selectedOptions"`
}

type rawMoney struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type rawSelectedOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// legacyPrice tolerates both shapes the upstream has used for a variant
// price: a flat decimal string and an {amount} object.
type legacyPrice struct {
	Amount string
}

func (p *legacyPrice) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	if b[0] == '"' {
		return json.Unmarshal(b, &p.Amount)
	}
	var obj struct {
		Amount string `json:"amount"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	p.Amount = obj.Amount
	return nil
}
