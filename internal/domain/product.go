package domain

import "time"

// Product is the canonical catalog document. Stored in the "products"
// collection with a string _id assigned on creation.
type Product struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Price       float64   `json:"price" bson:"price"`
	Category    string    `json:"category" bson:"category"`
	ImageURL    string    `json:"imageUrl" bson:"image_url"`
	Sizes       []string  `json:"sizes" bson:"sizes"`
	Colors      []string  `json:"colors" bson:"colors"`
	Stock       int       `json:"stock" bson:"stock"`
	CreatedAt   time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updated_at"`
}

// ProductForm carries the client-supplied fields of a product. Timestamps
// and the id are assigned by the repository.
type ProductForm struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Price       float64  `json:"price" validate:"gt=0"`
	Category    string   `json:"category" validate:"required"`
	ImageURL    string   `json:"imageUrl"`
	Sizes       []string `json:"sizes" validate:"min=1,dive,required"`
	Colors      []string `json:"colors" validate:"min=1,dive,required"`
	Stock       int      `json:"stock" validate:"gte=0"`
}

// ProductUpdate holds the updatable fields of a product. Nil fields are
// left untouched.
type ProductUpdate struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	Category    *string  `json:"category,omitempty"`
	ImageURL    *string  `json:"imageUrl,omitempty"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Stock       *int     `json:"stock,omitempty" validate:"omitempty,gte=0"`
}

// LegacyCategory is the closed category set used by the old product shape.
type LegacyCategory string

const (
	LegacyCategoryTShirt      LegacyCategory = "tshirt"
	LegacyCategoryPants       LegacyCategory = "pants"
	LegacyCategoryDress       LegacyCategory = "dress"
	LegacyCategoryShoes       LegacyCategory = "shoes"
	LegacyCategoryAccessories LegacyCategory = "accessories"
)

// LegacyProduct is the older product shape (scalar-per-field names, closed
// category enum). It is only accepted on the bulk import path; the
// canonical schema above is authoritative everywhere else.
type LegacyProduct struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Category    LegacyCategory `json:"category"`
	Size        []string       `json:"size"`
	Color       []string       `json:"color"`
	Images      []string       `json:"images"`
	Stock       int            `json:"stock"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// Canonical converts a legacy document to the canonical schema. The first
// image becomes the image URL; the enum value is kept as a free-form
// category string.
func (lp LegacyProduct) Canonical() Product {
	imageURL := ""
	if len(lp.Images) > 0 {
		imageURL = lp.Images[0]
	}
	return Product{
		ID:          lp.ID,
		Name:        lp.Name,
		Description: lp.Description,
		Price:       lp.Price,
		Category:    string(lp.Category),
		ImageURL:    imageURL,
		Sizes:       lp.Size,
		Colors:      lp.Color,
		Stock:       lp.Stock,
		CreatedAt:   lp.CreatedAt,
		UpdatedAt:   lp.UpdatedAt,
	}
}
