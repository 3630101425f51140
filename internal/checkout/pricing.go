package checkout

import "github.com/b3rknt/Modanist/internal/domain"

// Free shipping kicks in at the subtotal threshold; below it a flat fee
// applies.
const (
	FreeShippingThreshold = 300.0
	FlatShippingFee       = 50.0
)

// Totals is the priced summary of a cart.
type Totals struct {
	Subtotal   float64 `json:"subtotal"`
	Shipping   float64 `json:"shipping"`
	GrandTotal float64 `json:"grandTotal"`
}

// PriceCart computes subtotal, shipping fee and grand total. An empty cart
// yields zero totals; callers render an empty-cart view instead.
func PriceCart(items []domain.CartItem) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	shipping := FlatShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}

	return Totals{
		Subtotal:   subtotal,
		Shipping:   shipping,
		GrandTotal: subtotal + shipping,
	}
}
