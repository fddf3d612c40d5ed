package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
)

// ProductLister is the catalog surface the product endpoints read.
type ProductLister interface {
	ProductGetter
	GetProducts(ctx context.Context, query catalog.ProductQuery) ([]catalog.Product, error)
}

type ProductHandler struct {
	products ProductLister
}

func NewProductHandler(products ProductLister) *ProductHandler {
	return &ProductHandler{products: products}
}

type CategoryDTO struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

type ProductDTO struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Images      []string    `json:"images"`
	Category    CategoryDTO `json:"category"`
}

func productToDTO(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		Description: p.Description,
		Images:      p.Images,
		Category: CategoryDTO{
			ID:       p.Category.ID,
			Name:     p.Category.Name,
			ImageURL: p.Category.ImageURL,
		},
	}
}

func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := catalog.ProductQuery{Limit: 20}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 || limit > 100 {
			respondError(w, http.StatusBadRequest, "invalid_limit", "limit must be between 1 and 100")
			return
		}
		query.Limit = limit
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			respondError(w, http.StatusBadRequest, "invalid_offset", "offset must not be negative")
			return
		}
		query.Offset = offset
	}

	products, err := h.products.GetProducts(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch products")
		return
	}

	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = productToDTO(p)
	}
	respondJSON(w, http.StatusOK, dtos)
}

func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_id", "id must be a positive integer")
		return
	}

	product, err := h.products.GetProduct(r.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to fetch product")
		return
	}

	respondJSON(w, http.StatusOK, productToDTO(product))
}
