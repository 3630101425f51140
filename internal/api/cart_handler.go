package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/domain"
)

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type cartLineRef struct {
	ProductID string `json:"productId"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

// GetCart returns the cart with quantities re-clamped against live stock,
// plus the priced totals. An empty cart gets an explicit empty flag so the
// client renders the empty-cart view instead of totals.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	items, totals, err := s.checkout.Totals(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to price cart")
		respondError(w, http.StatusInternalServerError, "cart_unavailable", "could not load cart")
		return
	}

	if len(items) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{"empty": true, "items": []domain.CartItem{}})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"empty":  false,
		"items":  items,
		"totals": totals,
	})
}

// AddCartItem snapshots the product into a cart line. The snapshot fields
// (name, price, image) come from the live product, not the client.
func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req AddCartItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_cart_item", err.Error())
		return
	}

	product, err := s.catalog.GetByID(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", req.ProductID).Msg("failed to load product for cart")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	if !containsString(product.Sizes, req.Size) {
		respondError(w, http.StatusBadRequest, "invalid_size", "product does not come in that size")
		return
	}
	if !containsString(product.Colors, req.Color) {
		respondError(w, http.StatusBadRequest, "invalid_color", "product does not come in that color")
		return
	}
	if req.Quantity > product.Stock {
		respondError(w, http.StatusBadRequest, "insufficient_stock", "quantity exceeds available stock")
		return
	}

	sess := s.sessions.Get(identity.UserID)
	sess.AddToCart(domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Size:      req.Size,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"items":    sess.Items(),
		"revision": sess.Revision(),
	})
}

func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	ref, ok := lineRef(w, r)
	if !ok {
		return
	}

	sess := s.sessions.Get(identity.UserID)
	sess.RemoveFromCart(ref.ProductID, ref.Size, ref.Color)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    sess.Items(),
		"revision": sess.Revision(),
	})
}

// IncreaseCartItem bumps a line's quantity, capped at the product's live
// stock.
func (s *Server) IncreaseCartItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	ref, ok := lineRef(w, r)
	if !ok {
		return
	}

	product, err := s.catalog.GetByID(r.Context(), ref.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", ref.ProductID).Msg("failed to load product for cart")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	sess := s.sessions.Get(identity.UserID)
	sess.IncreaseItem(ref.ProductID, ref.Size, ref.Color, product.Stock)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    sess.Items(),
		"revision": sess.Revision(),
	})
}

func (s *Server) DecreaseCartItem(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	ref, ok := lineRef(w, r)
	if !ok {
		return
	}

	sess := s.sessions.Get(identity.UserID)
	sess.DecreaseItem(ref.ProductID, ref.Size, ref.Color)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"items":    sess.Items(),
		"revision": sess.Revision(),
	})
}

// lineRef reads the composite cart-line key from the body (or query for
// DELETE). Reports false after writing the error response.
func lineRef(w http.ResponseWriter, r *http.Request) (cartLineRef, bool) {
	var ref cartLineRef
	if r.Body != nil && r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
			return ref, false
		}
	} else {
		q := r.URL.Query()
		ref = cartLineRef{
			ProductID: q.Get("productId"),
			Size:      q.Get("size"),
			Color:     q.Get("color"),
		}
	}

	if ref.ProductID == "" || ref.Size == "" || ref.Color == "" {
		respondError(w, http.StatusBadRequest, "invalid_cart_line", "productId, size and color are required")
		return ref, false
	}
	return ref, true
}

func containsString(values []string, needle string) bool {
	for _, v := range values {
		if v == needle {
			return true
		}
	}
	return false
}
