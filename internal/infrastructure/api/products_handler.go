package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront-gateway/internal/application"
	"storefront-gateway/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// ProductsHandler serves the generic catalog search and detail endpoints.
type ProductsHandler struct {
	catalog *application.CatalogService
	logger  zerolog.Logger
}

// NewProductsHandler creates the products handler.
func NewProductsHandler(catalog *application.CatalogService, logger zerolog.Logger) *ProductsHandler {
	return &ProductsHandler{catalog: catalog, logger: logger}
}

// Search handles GET /products.
func (h *ProductsHandler) Search(w http.ResponseWriter, r *http.Request) {
	req, err := parseSearchRequest(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	result, err := h.catalog.Search(r.Context(), *req)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Detail handles GET /products/{id}.
func (h *ProductsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	id := chi.URLParam(r, "id")

	product, canonical, err := h.catalog.GetProduct(r.Context(), shop, id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, newProductDetail(product, canonical))
}

func parseSearchRequest(r *http.Request) (*application.SearchRequest, error) {
	q := r.URL.Query()

	req := application.SearchRequest{
		Shop:   q.Get("shop"),
		SortBy: q.Get("sort_by"),
		Filter: domain.ProductFilter{
			Keyword:     q.Get("q"),
			Handle:      q.Get("handle"),
			ProductType: q.Get("product_type"),
			Vendor:      q.Get("vendor"),
			TagsAny:     splitCSV(q.Get("tags_includeany")),
			TagsAll:     splitCSV(q.Get("tags_includeall")),
			Color:       q.Get("color"),
			Size:        q.Get("size"),
		},
		Page: domain.Page{After: q.Get("after")},
	}
	if req.Shop == "" {
		return nil, domain.NewValidationError("shop", "is required")
	}

	var err error
	if req.Filter.PriceMin, err = parsePrice(q.Get("price_min"), "price_min"); err != nil {
		return nil, err
	}
	if req.Filter.PriceMax, err = parsePrice(q.Get("price_max"), "price_max"); err != nil {
		return nil, err
	}

	switch q.Get("in_stock") {
	case "":
	case "true":
		v := true
		req.Filter.InStock = &v
	case "false":
		v := false
		req.Filter.InStock = &v
	default:
		return nil, domain.NewValidationError("in_stock", "must be true or false")
	}

	if first := q.Get("first"); first != "" {
		n, err := strconv.Atoi(first)
		if err != nil || n <= 0 {
			return nil, domain.NewValidationError("first", "must be a positive integer")
		}
		req.Page.First = n
	}

	return &req, nil
}

func parsePrice(raw, field string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be a decimal number")
	}
	return &d, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// writeError maps the error taxonomy onto response classes. Upstream query
// failures are summarized; the raw dependency error format never leaks.
func (h *ProductsHandler) writeError(w http.ResponseWriter, err error) {
	var validationErr *domain.ValidationError
	var queryErr *domain.RemoteQueryError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorBody(validationErr.Error()))
	case errors.Is(err, domain.ErrMissingCredential):
		writeJSON(w, http.StatusUnauthorized, errorBody("shop is not authorized; complete the install flow first"))
	case errors.Is(err, domain.ErrInvalidCredential):
		writeJSON(w, http.StatusUnauthorized, errorBody("shop credential was rejected; re-authorization is required"))
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("product not found"))
	case errors.As(err, &queryErr):
		h.logger.Error().Strs("upstream_errors", queryErr.Messages).Msg("Upstream query error")
		writeJSON(w, http.StatusBadGateway, errorBody("upstream rejected the catalog query"))
	default:
		h.logger.Error().Err(err).Msg("Unhandled catalog error")
		writeJSON(w, http.StatusInternalServerError, errorBody("internal server error"))
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
