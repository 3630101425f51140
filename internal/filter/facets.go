package filter

import (
	"sort"
	"strconv"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/b3rknt/Modanist/internal/domain"
)

// The storefront's display language drives facet collation.
var facetCollator = collate.New(language.Turkish)

// AllSizes is the duplicate-free union of every product's sizes:
// non-numeric entries first under Turkish collation, then numeric entries
// ascending by value.
func AllSizes(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var letters, numbers []string

	for _, p := range products {
		for _, s := range p.Sizes {
			if s == "" {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			if _, err := strconv.ParseFloat(s, 64); err == nil {
				numbers = append(numbers, s)
			} else {
				letters = append(letters, s)
			}
		}
	}

	facetCollator.SortStrings(letters)
	sort.Slice(numbers, func(i, j int) bool {
		a, _ := strconv.ParseFloat(numbers[i], 64)
		b, _ := strconv.ParseFloat(numbers[j], 64)
		return a < b
	})

	return append(letters, numbers...)
}

// AllColors is the duplicate-free union of every product's colors in
// first-seen order.
func AllColors(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var colors []string
	for _, p := range products {
		for _, c := range p.Colors {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			colors = append(colors, c)
		}
	}
	return colors
}

// Categories is the duplicate-free union of product categories in
// first-seen order, used for the quick category strip.
func Categories(products []domain.Product) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	return categories
}
