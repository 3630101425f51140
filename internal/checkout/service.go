package checkout

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/session"
)

var (
	ErrEmptyCart      = errors.New("cart is empty, nothing to checkout")
	ErrMissingAddress = errors.New("shipping address is required")
)

// Catalog is the slice of the product catalog checkout needs.
type Catalog interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	DecrementStock(ctx context.Context, id string, quantity int) error
}

// Service turns a session cart into a persisted order.
type Service struct {
	orders   OrderRepository
	catalog  Catalog
	sessions *session.Manager
	log      zerolog.Logger
}

func NewService(orders OrderRepository, cat Catalog, sessions *session.Manager, log zerolog.Logger) *Service {
	return &Service{
		orders:   orders,
		catalog:  cat,
		sessions: sessions,
		log:      log,
	}
}

// Totals prices the user's current cart, re-clamping each displayed line
// against live stock first.
func (s *Service) Totals(ctx context.Context, userID string) ([]domain.CartItem, Totals, error) {
	items := s.clampedItems(ctx, userID)
	return items, PriceCart(items), nil
}

// PlaceOrder validates, prices and persists the order, decrements stock
// and clears the session cart. Quantities above live stock are clamped
// down rather than rejected; lines whose product vanished are dropped.
func (s *Service) PlaceOrder(ctx context.Context, userID, address string) (*domain.Order, error) {
	if address == "" {
		return nil, ErrMissingAddress
	}

	items := s.clampedItems(ctx, userID)
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	totals := PriceCart(items)
	order := &domain.Order{
		ID:       uuid.NewString(),
		UserID:   userID,
		Items:    items,
		Address:  address,
		Subtotal: totals.Subtotal,
		Shipping: totals.Shipping,
		Total:    totals.GrandTotal,
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range items {
		if err := s.catalog.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			// The order stands; stock drift is logged, not rolled back.
			s.log.Warn().Err(err).
				Str("product_id", item.ProductID).
				Msg("stock decrement failed after order")
		}
	}

	s.sessions.Get(userID).ClearCart()
	return order, nil
}

// Orders lists the user's placed orders, newest first.
func (s *Service) Orders(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.GetByUser(ctx, userID)
}

// clampedItems snapshots the cart with quantities clamped to live stock.
// A failed lookup leaves the line as-is; a definite not-found drops it.
func (s *Service) clampedItems(ctx context.Context, userID string) []domain.CartItem {
	raw := s.sessions.Get(userID).Items()
	items := make([]domain.CartItem, 0, len(raw))
	for _, item := range raw {
		product, err := s.catalog.GetByID(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			items = append(items, item)
			continue
		}
		if item.Quantity > product.Stock {
			item.Quantity = product.Stock
		}
		if item.Quantity > 0 {
			items = append(items, item)
		}
	}
	return items
}
