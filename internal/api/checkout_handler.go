package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/b3rknt/Modanist/internal/checkout"
	"github.com/b3rknt/Modanist/internal/domain"
)

type CheckoutRequest struct {
	Address    string `json:"address"`
	CardName   string `json:"cardName"`
	CardNumber string `json:"cardNumber"`
	Expiry     string `json:"expiry"`
	CVV        string `json:"cvv"`
}

// CheckoutSummary prices the current cart for the checkout screen.
func (s *Server) CheckoutSummary(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	items, totals, err := s.checkout.Totals(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to price cart")
		respondError(w, http.StatusInternalServerError, "checkout_unavailable", "could not price cart")
		return
	}

	if len(items) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{"empty": true})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"empty":  false,
		"items":  items,
		"totals": totals,
	})
}

// SubmitCheckout places the order. All payment fields must be present;
// card data is only checked for presence here and never stored.
func (s *Server) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	var req CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.Address == "" || req.CardName == "" || req.CardNumber == "" || req.Expiry == "" || req.CVV == "" {
		respondError(w, http.StatusBadRequest, "missing_fields", "all checkout fields are required")
		return
	}

	order, err := s.checkout.PlaceOrder(r.Context(), identity.UserID, req.Address)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cart is empty")
		case errors.Is(err, checkout.ErrMissingAddress):
			respondError(w, http.StatusBadRequest, "missing_address", "shipping address is required")
		default:
			s.log.Error().Err(err).Msg("failed to place order")
			respondError(w, http.StatusBadGateway, "checkout_unavailable", "could not place order")
		}
		return
	}
	respondJSON(w, http.StatusCreated, order)
}

// ListOrders returns the user's orders, newest first.
func (s *Server) ListOrders(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	orders, err := s.checkout.Orders(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list orders")
		respondError(w, http.StatusBadGateway, "orders_unavailable", "could not load orders")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
