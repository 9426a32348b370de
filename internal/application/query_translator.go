package application

import (
	"fmt"
	"strings"

	"storefront-gateway/internal/domain"
)

// QueryTranslator converts the generic filter and sort parameters into the
// upstream platform's native query dialect. Color and size are deliberately
// not translated; native option-query support is unreliable, so they are
// reconciled after normalization.
type QueryTranslator struct{}

// Translate builds the native query string and resolves the sort pair.
func (t QueryTranslator) Translate(f domain.ProductFilter, sortBy string) (string, domain.Sort) {
	return t.BuildQuery(f), t.MapSort(sortBy)
}

// BuildQuery renders one clause per populated filter field, joined with AND.
// Empty fields contribute nothing.
func (t QueryTranslator) BuildQuery(f domain.ProductFilter) string {
	var clauses []string

	if f.Keyword != "" {
		clauses = append(clauses, fmt.Sprintf(
			"(title:*%[1]s* OR description:*%[1]s* OR vendor:*%[1]s* OR product_type:*%[1]s* OR sku:*%[1]s*)",
			f.Keyword,
		))
	}
	if f.Handle != "" {
		clauses = append(clauses, fmt.Sprintf("handle:'%s'", f.Handle))
	}
	if f.ProductType != "" {
		clauses = append(clauses, fmt.Sprintf("product_type:'%s'", f.ProductType))
	}
	if f.Vendor != "" {
		clauses = append(clauses, fmt.Sprintf("vendor:'%s'", f.Vendor))
	}
	if f.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("variants.price:>=%s", f.PriceMin.String()))
	}
	if f.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("variants.price:<=%s", f.PriceMax.String()))
	}
	for _, tag := range f.TagsAll {
		if tag = strings.TrimSpace(tag); tag != "" {
			clauses = append(clauses, fmt.Sprintf("tag:'%s'", tag))
		}
	}
	if anyClause := tagDisjunction(f.TagsAny); anyClause != "" {
		clauses = append(clauses, anyClause)
	}
	if f.InStock != nil {
		if *f.InStock {
			clauses = append(clauses, "inventory:>0")
		} else {
			clauses = append(clauses, "inventory:<=0")
		}
	}

	return strings.Join(clauses, " AND ")
}

// MapSort resolves a caller-supplied sort value, case-insensitively, to the
// native (key, direction) pair. Unrecognized values fall back to relevance.
func (t QueryTranslator) MapSort(sortBy string) domain.Sort {
	switch strings.ToLower(sortBy) {
	case "price_asc":
		return domain.Sort{Key: domain.SortKeyPrice}
	case "price_desc":
		return domain.Sort{Key: domain.SortKeyPrice, Reverse: true}
	case "published_at_desc":
		return domain.Sort{Key: domain.SortKeyPublishedAt, Reverse: true}
	case "created_at_desc":
		return domain.Sort{Key: domain.SortKeyCreatedAt, Reverse: true}
	default:
		return domain.Sort{Key: domain.SortKeyRelevance}
	}
}

func tagDisjunction(tags []string) string {
	var parts []string
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			parts = append(parts, fmt.Sprintf("tag:'%s'", tag))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, " OR ") + ")"
}
