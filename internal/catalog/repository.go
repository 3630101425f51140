package catalog

import (
	"context"
	"errors"

	"github.com/b3rknt/Modanist/internal/domain"
)

// ProductRepository defines the catalog store operations. Consumers depend
// on this interface, not on the MongoDB implementation.
type ProductRepository interface {
	Create(ctx context.Context, form domain.ProductForm) (string, error)
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Update(ctx context.Context, id string, update domain.ProductUpdate) error
	Delete(ctx context.Context, id string) error
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
}

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)
