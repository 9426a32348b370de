package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ports"

	"github.com/rs/zerolog"
)

const productGIDPrefix = "gid://shopify/Product/"

// SearchRequest is one inbound catalog search: the tenant origin or domain,
// the generic filters, and the page bounds.
type SearchRequest struct {
	Shop   string
	Filter domain.ProductFilter
	SortBy string
	Page   domain.Page
}

// ProductSummary is the compact search projection.
type ProductSummary struct {
	ProductID string   `json:"productId"`
	Title     string   `json:"title"`
	MainImage string   `json:"mainImage"`
	BasePrice string   `json:"basePrice"`
	KeyTags   []string `json:"keyTags"`
}

// SearchResult is one page of summaries plus the upstream cursors.
type SearchResult struct {
	Products []ProductSummary `json:"products"`
	PageInfo domain.PageInfo  `json:"pageInfo"`
}

// CatalogService orchestrates the search/detail flow: resolve the tenant,
// load its credential, translate the filters, execute upstream, and reconcile
// the residual filters over the normalized records.
type CatalogService struct {
	resolver    *DomainResolver
	credentials *CredentialsService
	translator  QueryTranslator
	postFilter  PostFilterEngine
	client      ports.CatalogClient
	logger      zerolog.Logger
}

// NewCatalogService creates the catalog orchestrator.
func NewCatalogService(
	resolver *DomainResolver,
	credentials *CredentialsService,
	client ports.CatalogClient,
	logger zerolog.Logger,
) *CatalogService {
	return &CatalogService{
		resolver:    resolver,
		credentials: credentials,
		client:      client,
		logger:      logger,
	}
}

// Search runs one paginated catalog search for a tenant.
func (s *CatalogService) Search(ctx context.Context, req SearchRequest) (*SearchResult, error) {
	if req.Shop == "" {
		return nil, domain.NewValidationError("shop", "is required")
	}

	token, canonical, err := s.tenantToken(ctx, req.Shop)
	if err != nil {
		return nil, err
	}

	query, sort := s.translator.Translate(req.Filter, req.SortBy)
	page := req.Page.Clamp()

	products, pageInfo, err := s.client.FetchPage(ctx, canonical, token, ports.CatalogQuery{
		Query:   query,
		SortKey: sort.Key,
		Reverse: sort.Reverse,
		First:   page.First,
		After:   page.After,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("shop", canonical).Msg("Product search failed")
		return nil, err
	}

	products = s.postFilter.Apply(products, req.Filter.Color, req.Filter.Size)

	summaries := make([]ProductSummary, 0, len(products))
	for i := range products {
		summaries = append(summaries, summarize(&products[i]))
	}

	s.logger.Debug().
		Str("shop", canonical).
		Str("query", query).
		Int("results", len(summaries)).
		Msg("Catalog search completed")

	return &SearchResult{Products: summaries, PageInfo: pageInfo}, nil
}

// GetProduct fetches one product by upstream ID and returns it along with
// the canonical shop domain it was resolved under. Bare numeric IDs are
// wrapped into the GID form the upstream expects.
func (s *CatalogService) GetProduct(ctx context.Context, shop, productID string) (*domain.Product, string, error) {
	if shop == "" {
		return nil, "", domain.NewValidationError("shop", "is required")
	}
	if productID == "" {
		return nil, "", domain.NewValidationError("id", "is required")
	}

	token, canonical, err := s.tenantToken(ctx, shop)
	if err != nil {
		return nil, "", err
	}

	gid := productID
	if !strings.HasPrefix(gid, "gid://") {
		gid = productGIDPrefix + productID
	}

	product, err := s.client.FetchProduct(ctx, canonical, token, gid)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error().Err(err).Str("shop", canonical).Str("product", gid).Msg("Product fetch failed")
		}
		return nil, "", err
	}
	return product, canonical, nil
}

// tenantToken resolves the tenant and loads its decrypted credential. An
// unresolvable domain and a resolvable domain without an active credential
// both surface as an authentication-required failure.
func (s *CatalogService) tenantToken(ctx context.Context, shop string) (token, canonical string, err error) {
	canonical, err = s.resolver.Resolve(ctx, shop)
	if err != nil {
		if errors.Is(err, domain.ErrDomainNotResolved) {
			return "", "", fmt.Errorf("shop %s: %w", shop, domain.ErrMissingCredential)
		}
		return "", "", err
	}

	token, err = s.credentials.Get(ctx, canonical)
	if err != nil {
		return "", "", err
	}
	if token == "" {
		return "", "", fmt.Errorf("shop %s: %w", canonical, domain.ErrMissingCredential)
	}
	return token, canonical, nil
}

func summarize(p *domain.Product) ProductSummary {
	summary := ProductSummary{
		ProductID: p.ID,
		Title:     p.Title,
		KeyTags:   keyTags(p.Tags, 3),
	}
	if img := p.PrimaryImage(); img != nil {
		summary.MainImage = img.URL
	}
	if len(p.Variants) > 0 {
		summary.BasePrice = p.Variants[0].Price
	}
	return summary
}

func keyTags(tags []string, n int) []string {
	if len(tags) <= n {
		return tags
	}
	return tags[:n]
}
