package catalog

import (
	"context"
	"fmt"

	"github.com/b3rknt/Modanist/internal/domain"
)

// SampleProducts returns the demo catalog used when the store is empty.
func SampleProducts() []domain.ProductForm {
	return []domain.ProductForm{
		{
			Name:        "Erkek Tişört",
			Description: "Pamuklu siyah tişört",
			Price:       129.99,
			Category:    "Tişört",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Erkek+Tişört",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Siyah", "Beyaz"},
			Stock:       20,
		},
		{
			Name:        "Kadın Elbise",
			Description: "Şık siyah elbise",
			Price:       299.99,
			Category:    "Elbise",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Kadın+Elbise",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Siyah"},
			Stock:       15,
		},
		{
			Name:        "Unisex Hoodie",
			Description: "Kapüşonlu sweatshirt",
			Price:       199.99,
			Category:    "Sweatshirt",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Hoodie",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Gri", "Siyah"},
			Stock:       25,
		},
		{
			Name:        "Kadın Bluz",
			Description: "Rahat beyaz bluz",
			Price:       149.99,
			Category:    "Bluz",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Kadın+Bluz",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Beyaz", "Pembe"},
			Stock:       18,
		},
		{
			Name:        "Erkek Gömlek",
			Description: "Klasik mavi gömlek",
			Price:       179.99,
			Category:    "Gömlek",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Erkek+Gömlek",
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"Mavi"},
			Stock:       12,
		},
		{
			Name:        "Kadın Ceket",
			Description: "Şık siyah ceket",
			Price:       399.99,
			Category:    "Ceket",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Kadın+Ceket",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Siyah"},
			Stock:       10,
		},
		{
			Name:        "Unisex Şort",
			Description: "Rahat yazlık şort",
			Price:       89.99,
			Category:    "Şort",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Şort",
			Sizes:       []string{"S", "M", "L", "XL"},
			Colors:      []string{"Lacivert", "Gri"},
			Stock:       30,
		},
		{
			Name:        "Kadın Etek",
			Description: "Diz boyu etek",
			Price:       159.99,
			Category:    "Etek",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Kadın+Etek",
			Sizes:       []string{"S", "M", "L"},
			Colors:      []string{"Kırmızı", "Siyah"},
			Stock:       14,
		},
		{
			Name:        "Erkek Mont",
			Description: "Kışlık kalın mont",
			Price:       499.99,
			Category:    "Mont",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Erkek+Mont",
			Sizes:       []string{"M", "L", "XL"},
			Colors:      []string{"Siyah", "Kahverengi"},
			Stock:       8,
		},
		{
			Name:        "Unisex Spor Ayakkabı",
			Description: "Rahat spor ayakkabı",
			Price:       249.99,
			Category:    "Ayakkabı",
			ImageURL:    "https://via.placeholder.com/300x300.png?text=Spor+Ayakkabı",
			Sizes:       []string{"36", "37", "38", "39", "40", "41", "42", "43", "44"},
			Colors:      []string{"Beyaz", "Siyah"},
			Stock:       22,
		},
	}
}

// SeedIfEmpty loads the sample catalog when the products collection holds
// nothing. Used on first startup of a fresh environment.
func SeedIfEmpty(ctx context.Context, repo ProductRepository) (int, error) {
	existing, err := repo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) > 0 {
		return 0, nil
	}

	forms := SampleProducts()
	for _, form := range forms {
		if _, err := repo.Create(ctx, form); err != nil {
			return 0, fmt.Errorf("failed to seed product %q: %w", form.Name, err)
		}
	}
	return len(forms), nil
}
