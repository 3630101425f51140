package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/domain"
)

// ListFavorites returns the persisted favorite snapshots.
func (s *Server) ListFavorites(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())

	products, err := s.favorites.List(r.Context(), identity.UserID)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load favorites")
		respondError(w, http.StatusInternalServerError, "favorites_unavailable", "could not load favorites")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// ToggleFavorite flips the product's favorite status for this user.
func (s *Server) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	identity := identityFromContext(r.Context())
	id := chi.URLParam(r, "id")

	product, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to load product for favorite")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}

	favorited, err := s.favorites.Toggle(r.Context(), identity.UserID, *product)
	if err != nil {
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to toggle favorite")
		respondError(w, http.StatusInternalServerError, "favorites_unavailable", "could not update favorites")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"favorited": favorited})
}
