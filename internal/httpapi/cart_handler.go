package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"storefront/internal/catalog"
	"storefront/internal/repository"
)

// ProductGetter resolves product display data before an add; the cart
// itself never talks to the catalog.
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (catalog.Product, error)
}

type CartHandler struct {
	repo     repository.CartRepository
	products ProductGetter
}

func NewCartHandler(repo repository.CartRepository, products ProductGetter) *CartHandler {
	return &CartHandler{
		repo:     repo,
		products: products,
	}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartToDTO(h.repo.Cart()))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be positive")
		return
	}

	// Resolve the display snapshot from the catalog
	product, err := h.products.GetProduct(r.Context(), req.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondError(w, http.StatusNotFound, "not_found", "product not found")
			return
		}
		respondError(w, http.StatusServiceUnavailable, "catalog_unavailable", "failed to resolve product")
		return
	}

	h.repo.AddToCart(repository.AddToCartParams{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		ImageURL:  product.FirstImage(),
	})

	respondJSON(w, http.StatusCreated, cartToDTO(h.repo.Cart()))
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	h.repo.UpdateQuantity(productID, req.Quantity)

	respondJSON(w, http.StatusOK, cartToDTO(h.repo.Cart()))
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, ok := productIDParam(w, r)
	if !ok {
		return
	}

	h.repo.RemoveFromCart(productID)

	respondJSON(w, http.StatusOK, cartToDTO(h.repo.Cart()))
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.repo.ClearCart()

	respondJSON(w, http.StatusOK, cartToDTO(h.repo.Cart()))
}

func productIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	productIDStr := chi.URLParam(r, "product_id")
	productID, err := strconv.ParseInt(productIDStr, 10, 64)
	if err != nil || productID <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return 0, false
	}
	return productID, true
}
