// Package session holds the per-user in-memory shopping state: the cart
// lines and the favorite-product-id set. State lives for the process
// lifetime only; a restart discards every session.
package session

import (
	"sync"

	"github.com/b3rknt/Modanist/internal/domain"
)

// Session owns one user's cart and favorite ids. All mutations go through
// its methods; each mutation bumps the revision so callers can detect
// staleness and re-derive dependent views.
type Session struct {
	mu        sync.Mutex
	cart      []domain.CartItem
	favorites map[string]struct{}
	revision  uint64
}

func New() *Session {
	return &Session{
		favorites: make(map[string]struct{}),
	}
}

// AddToCart merges by (product, size, color): an existing line has the
// added quantity summed onto it in place, a new line appends at the end.
// No stock clamp is applied here.
func (s *Session) AddToCart(item domain.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].SameLine(item.ProductID, item.Size, item.Color) {
			s.cart[i].Quantity += item.Quantity
			s.revision++
			return
		}
	}
	s.cart = append(s.cart, item)
	s.revision++
}

// RemoveFromCart drops the matching line. Removing an absent line is not
// an error.
func (s *Session) RemoveFromCart(productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].SameLine(productID, size, color) {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			s.revision++
			return
		}
	}
}

// IncreaseItem bumps the line quantity, capped at maxStock. No-op when the
// line is missing.
func (s *Session) IncreaseItem(productID, size, color string, maxStock int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].SameLine(productID, size, color) {
			if s.cart[i].Quantity+1 <= maxStock {
				s.cart[i].Quantity++
			} else {
				s.cart[i].Quantity = maxStock
			}
			s.revision++
			return
		}
	}
}

// DecreaseItem lowers the line quantity but never below 1; deleting a line
// is RemoveFromCart's job. No-op when the line is missing.
func (s *Session) DecreaseItem(productID, size, color string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].SameLine(productID, size, color) {
			if s.cart[i].Quantity > 1 {
				s.cart[i].Quantity--
			}
			s.revision++
			return
		}
	}
}

// ToggleFavorite flips membership of the id in the favorite set. Toggling
// twice restores the prior state.
func (s *Session) ToggleFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[productID]; ok {
		delete(s.favorites, productID)
		s.revision++
		return false
	}
	s.favorites[productID] = struct{}{}
	s.revision++
	return true
}

// IsFavorite reports membership without mutating.
func (s *Session) IsFavorite(productID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorites[productID]
	return ok
}

// Items returns a copy of the cart lines in insertion order.
func (s *Session) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.CartItem, len(s.cart))
	copy(items, s.cart)
	return items
}

// Favorites returns a copy of the favorite-id set.
func (s *Session) Favorites() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.favorites))
	for id := range s.favorites {
		ids = append(ids, id)
	}
	return ids
}

// ClearCart empties the cart, e.g. after a completed checkout.
func (s *Session) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cart = nil
	s.revision++
}

// Revision is the mutation counter; it changes on every state change so
// views can re-derive instead of diffing.
func (s *Session) Revision() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revision
}
