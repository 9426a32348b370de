package ports

import (
	"context"

	"storefront-gateway/internal/domain"
)

// CatalogQuery is one translated, paginated catalog request. Query is the
// upstream platform's native filter expression; empty means unfiltered.
type CatalogQuery struct {
	Query   string
	SortKey domain.SortKey
	Reverse bool
	First   int
	After   string
}

// CatalogClient executes translated queries against the upstream catalog API.
// One call issues exactly one upstream request; the caller decides whether to
// page further using the returned cursors.
type CatalogClient interface {
	// FetchPage runs a product search and returns the normalized page.
	FetchPage(ctx context.Context, shopDomain, accessToken string, q CatalogQuery) ([]domain.Product, domain.PageInfo, error)

	// FetchProduct retrieves a single product by its upstream GID.
	// Returns domain.ErrNotFound when the product does not exist.
	FetchProduct(ctx context.Context, shopDomain, accessToken, productGID string) (*domain.Product, error)
}
