package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// DefaultAPIVersion is the Admin API version used when none is configured.
const DefaultAPIVersion = "2025-01"

// Client executes catalog queries against the Shopify Admin GraphQL API.
// The go-shopify SDK's GraphQL helper does not expose the top-level errors
// array we need to aggregate, so the call is made directly, the same way the
// token exchange bypasses the SDK for redirect_uri.
type Client struct {
	httpClient *http.Client
	apiVersion string
	logger     zerolog.Logger
}

// NewClient creates a catalog client with a bounded request timeout. A
// timeout surfaces as a transport failure, never as an empty success.
func NewClient(apiVersion string, timeout time.Duration, logger zerolog.Logger) *Client {
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiVersion: apiVersion,
		logger:     logger,
	}
}

// FetchPage runs one paginated product search. The caller decides whether to
// page further using the returned cursors.
func (c *Client) FetchPage(ctx context.Context, shopDomain, accessToken string, q ports.CatalogQuery) ([]domain.Product, domain.PageInfo, error) {
	variables := map[string]any{
		"first":   q.First,
		"sortKey": string(q.SortKey),
		"reverse": q.Reverse,
	}
	// Null lets the upstream ignore the argument entirely.
	if q.Query != "" {
		variables["queryString"] = q.Query
	} else {
		variables["queryString"] = nil
	}
	if q.After != "" {
		variables["after"] = q.After
	} else {
		variables["after"] = nil
	}

	var out productsResponse
	if err := c.post(ctx, shopDomain, accessToken, productSearchQuery, variables, &out); err != nil {
		return nil, domain.PageInfo{}, err
	}
	if len(out.Errors) > 0 {
		return nil, domain.PageInfo{}, queryError(out.Errors)
	}

	conn := out.Data.Products
	products := flattenPage(conn.Edges)
	pageInfo := domain.PageInfo{
		HasNextPage:     conn.PageInfo.HasNextPage,
		HasPreviousPage: conn.PageInfo.HasPreviousPage,
		StartCursor:     conn.PageInfo.StartCursor,
		EndCursor:       conn.PageInfo.EndCursor,
	}

	c.logger.Debug().
		Str("shop", shopDomain).
		Int("count", len(products)).
		Bool("has_next_page", pageInfo.HasNextPage).
		Msg("Fetched product page")

	return products, pageInfo, nil
}

// FetchProduct retrieves a single product by GID.
func (c *Client) FetchProduct(ctx context.Context, shopDomain, accessToken, productGID string) (*domain.Product, error) {
	variables := map[string]any{"id": productGID}

	var out productResponse
	if err := c.post(ctx, shopDomain, accessToken, productByIDQuery, variables, &out); err != nil {
		return nil, err
	}
	if len(out.Errors) > 0 {
		if isNotFound(out.Errors) {
			return nil, fmt.Errorf("product %s: %w", productGID, domain.ErrNotFound)
		}
		return nil, queryError(out.Errors)
	}
	if out.Data.Product == nil {
		return nil, fmt.Errorf("product %s: %w", productGID, domain.ErrNotFound)
	}

	product := flattenProduct(out.Data.Product)
	return &product, nil
}

// post issues one GraphQL request and decodes the full response envelope.
func (c *Client) post(ctx context.Context, shopDomain, accessToken, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to encode query: %w", err)
	}

	endpoint := fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, c.apiVersion)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Warn().
			Str("shop", shopDomain).
			Int("status", resp.StatusCode).
			Msg("Upstream rejected credential")
		return fmt.Errorf("shop %s: %w", shopDomain, domain.ErrInvalidCredential)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}
	return nil
}

func queryError(errs []graphqlError) error {
	messages := make([]string, 0, len(errs))
	for _, e := range errs {
		messages = append(messages, e.Message)
	}
	return &domain.RemoteQueryError{Messages: messages}
}

func isNotFound(errs []graphqlError) bool {
	for _, e := range errs {
		if e.Extensions.Code == "NOT_FOUND" || strings.Contains(strings.ToLower(e.Message), "not found") {
			return true
		}
	}
	return false
}
