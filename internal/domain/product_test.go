package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegacyProduct_Canonical(t *testing.T) {
	legacy := LegacyProduct{
		ID:          "legacy-1",
		Name:        "Basic Tişört",
		Description: "Pamuklu basic tişört",
		Price:       149.99,
		Category:    LegacyCategoryTShirt,
		Size:        []string{"S", "M", "L"},
		Color:       []string{"Siyah", "Beyaz"},
		Images:      []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"},
		Stock:       25,
	}

	product := legacy.Canonical()

	assert.Equal(t, "legacy-1", product.ID)
	assert.Equal(t, "Basic Tişört", product.Name)
	assert.Equal(t, "tshirt", product.Category)
	assert.Equal(t, "https://cdn.example.com/a.jpg", product.ImageURL)
	assert.Equal(t, []string{"S", "M", "L"}, product.Sizes)
	assert.Equal(t, []string{"Siyah", "Beyaz"}, product.Colors)
	assert.Equal(t, 149.99, product.Price)
	assert.Equal(t, 25, product.Stock)
}

func TestLegacyProduct_Canonical_NoImages(t *testing.T) {
	legacy := LegacyProduct{
		Name:     "Deri Kemer",
		Category: LegacyCategoryAccessories,
	}

	product := legacy.Canonical()

	assert.Empty(t, product.ImageURL)
	assert.Equal(t, "accessories", product.Category)
}
