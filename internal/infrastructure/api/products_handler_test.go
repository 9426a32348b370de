package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-gateway/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func searchRequest(t *testing.T, rawQuery string) *http.Request {
	t.Helper()
	return httptest.NewRequest(http.MethodGet, "/agent-api/products?"+rawQuery, nil)
}

func TestParseSearchRequestRequiresShop(t *testing.T) {
	_, err := parseSearchRequest(searchRequest(t, "q=boots"))

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "shop", validationErr.Field)
}

func TestParseSearchRequestFullFilter(t *testing.T) {
	req, err := parseSearchRequest(searchRequest(t,
		"shop=store.myshopify.com&q=boots&handle=red-boots&product_type=Shoes&vendor=Acme"+
			"&price_min=10.50&price_max=99&tags_includeany=red,blue&tags_includeall=sale"+
			"&in_stock=true&color=Red&size=M&sort_by=price_asc&first=5&after=cur"))
	require.NoError(t, err)

	require.Equal(t, "store.myshopify.com", req.Shop)
	require.Equal(t, "boots", req.Filter.Keyword)
	require.Equal(t, "red-boots", req.Filter.Handle)
	require.Equal(t, "Shoes", req.Filter.ProductType)
	require.Equal(t, "Acme", req.Filter.Vendor)
	require.Equal(t, "10.5", req.Filter.PriceMin.String())
	require.Equal(t, "99", req.Filter.PriceMax.String())
	require.Equal(t, []string{"red", "blue"}, req.Filter.TagsAny)
	require.Equal(t, []string{"sale"}, req.Filter.TagsAll)
	require.NotNil(t, req.Filter.InStock)
	require.True(t, *req.Filter.InStock)
	require.Equal(t, "Red", req.Filter.Color)
	require.Equal(t, "M", req.Filter.Size)
	require.Equal(t, "price_asc", req.SortBy)
	require.Equal(t, 5, req.Page.First)
	require.Equal(t, "cur", req.Page.After)
}

func TestParseSearchRequestDefaults(t *testing.T) {
	req, err := parseSearchRequest(searchRequest(t, "shop=store.myshopify.com"))
	require.NoError(t, err)

	require.Nil(t, req.Filter.PriceMin)
	require.Nil(t, req.Filter.PriceMax)
	require.Nil(t, req.Filter.InStock)
	require.Nil(t, req.Filter.TagsAny)
	require.Zero(t, req.Page.First)
}

func TestParseSearchRequestRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		query string
		field string
	}{
		{"bad price_min", "shop=s&price_min=abc", "price_min"},
		{"bad price_max", "shop=s&price_max=1,00", "price_max"},
		{"bad in_stock", "shop=s&in_stock=maybe", "in_stock"},
		{"bad first", "shop=s&first=zero", "first"},
		{"negative first", "shop=s&first=-2", "first"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseSearchRequest(searchRequest(t, tc.query))
			var validationErr *domain.ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
		})
	}
}

func TestWriteErrorTaxonomy(t *testing.T) {
	h := &ProductsHandler{logger: zerolog.Nop()}

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", domain.NewValidationError("first", "must be a positive integer"), http.StatusBadRequest},
		{"missing credential", domain.ErrMissingCredential, http.StatusUnauthorized},
		{"wrapped missing credential", fmt.Errorf("shop x: %w", domain.ErrMissingCredential), http.StatusUnauthorized},
		{"invalid credential", domain.ErrInvalidCredential, http.StatusUnauthorized},
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"remote query", &domain.RemoteQueryError{Messages: []string{"field mismatch"}}, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.writeError(rec, tc.err)
			require.Equal(t, tc.status, rec.Code)
			require.Contains(t, rec.Header().Get("Content-Type"), "application/json")
		})
	}
}
