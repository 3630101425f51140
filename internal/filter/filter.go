// Package filter computes the visible product subset for the storefront
// listing. It is pure: no store access, input order preserved.
package filter

import (
	"strings"

	"github.com/b3rknt/Modanist/internal/domain"
)

// Filter is the modal filter configuration. Zero values mean "unset".
// Category here is independent of the quick category selector; when both
// are set a product must satisfy both.
type Filter struct {
	MinPrice *float64 `json:"minPrice,omitempty"`
	MaxPrice *float64 `json:"maxPrice,omitempty"`
	Size     string   `json:"size,omitempty"`
	Color    string   `json:"color,omitempty"`
	Category string   `json:"category,omitempty"`
}

type predicate func(domain.Product) bool

// Apply returns the subsequence of products passing every active
// criterion. Criteria are one ordered predicate chain; an unset criterion
// contributes no predicate.
func Apply(products []domain.Product, selectedCategory, search string, f Filter) []domain.Product {
	var chain []predicate

	if selectedCategory != "" {
		chain = append(chain, func(p domain.Product) bool {
			return p.Category == selectedCategory
		})
	}
	if search != "" {
		needle := strings.ToLower(search)
		chain = append(chain, func(p domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), needle) ||
				strings.Contains(strings.ToLower(p.Description), needle) ||
				strings.Contains(strings.ToLower(p.Category), needle)
		})
	}
	if f.MinPrice != nil {
		min := *f.MinPrice
		chain = append(chain, func(p domain.Product) bool {
			return p.Price >= min
		})
	}
	if f.MaxPrice != nil {
		max := *f.MaxPrice
		chain = append(chain, func(p domain.Product) bool {
			return p.Price <= max
		})
	}
	if f.Size != "" {
		chain = append(chain, func(p domain.Product) bool {
			return contains(p.Sizes, f.Size)
		})
	}
	if f.Color != "" {
		chain = append(chain, func(p domain.Product) bool {
			return contains(p.Colors, f.Color)
		})
	}
	if f.Category != "" {
		chain = append(chain, func(p domain.Product) bool {
			return p.Category == f.Category
		})
	}

	if len(chain) == 0 {
		out := make([]domain.Product, len(products))
		copy(out, products)
		return out
	}

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if passes(p, chain) {
			out = append(out, p)
		}
	}
	return out
}

func passes(p domain.Product, chain []predicate) bool {
	for _, pred := range chain {
		if !pred(p) {
			return false
		}
	}
	return true
}

func contains(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
