package application

import (
	"strings"

	"storefront-gateway/internal/domain"
)

// PostFilterEngine applies attribute filters the native query cannot express.
// A product passes when every requested filter matches; an absent filter
// matches everything.
type PostFilterEngine struct{}

// Apply filters normalized products on color and size.
func (PostFilterEngine) Apply(products []domain.Product, color, size string) []domain.Product {
	if color == "" && size == "" {
		return products
	}

	filtered := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if color != "" && !matchesOption(&p, "color", color) {
			continue
		}
		if size != "" && !matchesOption(&p, "size", size) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// matchesOption locates the product option whose name contains kind
// (case-insensitive) and reports whether any variant selects the requested
// value under it. A product without such an option fails the filter.
func matchesOption(p *domain.Product, kind, want string) bool {
	var optionName string
	found := false
	for _, opt := range p.Options {
		if strings.Contains(strings.ToLower(opt.Name), kind) {
			optionName = opt.Name
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for _, v := range p.Variants {
		for _, so := range v.SelectedOptions {
			if so.Name == optionName && strings.EqualFold(so.Value, want) {
				return true
			}
		}
	}
	return false
}
