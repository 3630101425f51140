package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/b3rknt/Modanist/internal/catalog"
	"github.com/b3rknt/Modanist/internal/domain"
	"github.com/b3rknt/Modanist/internal/filter"
)

// ListProducts serves the storefront listing. The quick category selector
// (?category=), free-text search (?search=) and modal filter
// (?minPrice=&maxPrice=&size=&color=&filterCategory=) all narrow the
// result; filtering happens in memory over the cached catalog.
func (s *Server) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.GetAll(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load catalog")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load products")
		return
	}

	q := r.URL.Query()
	f := filter.Filter{
		Size:     q.Get("size"),
		Color:    q.Get("color"),
		Category: q.Get("filterCategory"),
	}
	if v := q.Get("minPrice"); v != "" {
		min, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_min_price", "minPrice must be a number")
			return
		}
		f.MinPrice = &min
	}
	if v := q.Get("maxPrice"); v != "" {
		max, err := strconv.ParseFloat(v, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_max_price", "maxPrice must be a number")
			return
		}
		f.MaxPrice = &max
	}

	visible := filter.Apply(products, q.Get("category"), q.Get("search"), f)
	respondJSON(w, http.StatusOK, map[string]interface{}{"products": visible})
}

// ProductFacets returns the derived filter dimensions for the filter UI.
func (s *Server) ProductFacets(w http.ResponseWriter, r *http.Request) {
	products, err := s.catalog.GetAll(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load catalog")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load products")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"sizes":      filter.AllSizes(products),
		"colors":     filter.AllColors(products),
		"categories": filter.Categories(products),
	})
}

func (s *Server) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := s.catalog.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to get product")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load product")
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var form domain.ProductForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := s.validate.Struct(form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product", err.Error())
		return
	}

	id, err := s.catalog.Create(r.Context(), form)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create product")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not create product")
		return
	}
	respondJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var update domain.ProductUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if err := s.validate.Struct(update); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_product", err.Error())
		return
	}

	if err := s.catalog.Update(r.Context(), id, update); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not update product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "product_not_found", "no such product")
			return
		}
		s.log.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not delete product")
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

// ImportProducts bulk-loads catalog documents exported in the old product
// shape (scalar field names, closed category enum, image list). Each
// document is converted to the canonical schema before it is stored.
func (s *Server) ImportProducts(w http.ResponseWriter, r *http.Request) {
	var docs []domain.LegacyProduct
	if err := json.NewDecoder(r.Body).Decode(&docs); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if len(docs) == 0 {
		respondError(w, http.StatusBadRequest, "empty_import", "no products to import")
		return
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		p := doc.Canonical()
		form := domain.ProductForm{
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Category:    p.Category,
			ImageURL:    p.ImageURL,
			Sizes:       p.Sizes,
			Colors:      p.Colors,
			Stock:       p.Stock,
		}
		if err := s.validate.Struct(form); err != nil {
			respondError(w, http.StatusBadRequest, "invalid_product", err.Error())
			return
		}

		id, err := s.catalog.Create(r.Context(), form)
		if err != nil {
			s.log.Error().Err(err).Str("name", form.Name).Msg("failed to import product")
			respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not import products")
			return
		}
		ids = append(ids, id)
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"imported": len(ids),
		"ids":      ids,
	})
}

// ListCategories serves the quick category strip. The ?fromCatalog=true
// form derives it in memory instead of a distinct query.
func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("fromCatalog") == "true" {
		products, err := s.catalog.GetAll(r.Context())
		if err != nil {
			respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load categories")
			return
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"categories": filter.Categories(products)})
		return
	}

	categories, err := s.catalog.Categories(r.Context())
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list categories")
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "could not load categories")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
