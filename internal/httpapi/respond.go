package httpapi

import (
	"encoding/json"
	"log"
	"net/http"

	"storefront/internal/domain"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

type CartItemDTO struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

type CartDTO struct {
	Items      []CartItemDTO `json:"items"`
	TotalItems int           `json:"total_items"`
	TotalPrice float64       `json:"total_price"`
}

func cartToDTO(cart domain.Cart) CartDTO {
	items := cart.Items()
	dto := CartDTO{
		Items:      make([]CartItemDTO, len(items)),
		TotalItems: cart.TotalItems(),
		TotalPrice: cart.TotalPrice(),
	}
	for i, item := range items {
		dto.Items[i] = CartItemDTO{
			ProductID: item.ProductID,
			Title:     item.Title,
			Price:     item.Price,
			ImageURL:  item.ImageURL,
			Quantity:  item.Quantity,
		}
	}
	return dto
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}
