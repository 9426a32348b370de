package domain

import "github.com/shopspring/decimal"

// ProductFilter is the generic search filter. Nil/empty fields contribute
// nothing to the translated query. Color and Size are never pushed into the
// native query; they are reconciled after normalization.
type ProductFilter struct {
	Keyword     string
	Handle      string
	ProductType string
	Vendor      string
	PriceMin    *decimal.Decimal
	PriceMax    *decimal.Decimal
	TagsAny     []string
	TagsAll     []string
	InStock     *bool
	Color       string
	Size        string
}

// SortKey is an upstream-native sort key.
type SortKey string

const (
	SortKeyRelevance   SortKey = "RELEVANCE"
	SortKeyPrice       SortKey = "PRICE"
	SortKeyPublishedAt SortKey = "PUBLISHED_AT"
	SortKeyCreatedAt   SortKey = "CREATED_AT"
)

// Sort is a resolved (key, direction) pair ready for the upstream call.
type Sort struct {
	Key     SortKey
	Reverse bool
}

// Page bounds one paginated request. After is the opaque upstream cursor.
type Page struct {
	First int
	After string
}

// DefaultPageSize applies when the caller does not bound the page.
const DefaultPageSize = 20

// MaxPageSize is the upstream hard limit per page.
const MaxPageSize = 250

// Clamp normalizes the page size into [1, MaxPageSize], defaulting when unset.
func (p Page) Clamp() Page {
	if p.First <= 0 {
		p.First = DefaultPageSize
	}
	if p.First > MaxPageSize {
		p.First = MaxPageSize
	}
	return p
}
