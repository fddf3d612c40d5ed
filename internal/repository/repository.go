package repository

import (
	"log"

	"storefront/internal/domain"
	"storefront/internal/store"
)

// CartRepository is the stable surface callers read, mutate and
// observe the cart through. Consumers define this interface, not the
// store implementation, so the backing store stays swappable.
type CartRepository interface {
	Cart() domain.Cart
	AddToCart(params AddToCartParams)
	RemoveFromCart(productID int64)
	UpdateQuantity(productID int64, quantity int)
	ClearCart()
	Subscribe(fn func(domain.Cart)) func()
}

// AddToCartParams is the already-resolved product display data; the
// repository never fetches from the catalog itself.
type AddToCartParams struct {
	ProductID int64
	Title     string
	Price     float64
	ImageURL  string
}

// StoreRepository composes the pure item transforms with the store's
// atomic read-modify-write. Mutations cannot fail from the caller's
// perspective; persistence outcome is the store's concern.
type StoreRepository struct {
	store *store.Store
}

func New(s *store.Store) *StoreRepository {
	return &StoreRepository{store: s}
}

func (r *StoreRepository) Cart() domain.Cart {
	return r.store.Cart()
}

func (r *StoreRepository) AddToCart(params AddToCartParams) {
	cart := r.store.Update(func(items []domain.CartItem) []domain.CartItem {
		return domain.AddItem(items, domain.ProductData{
			ProductID: params.ProductID,
			Title:     params.Title,
			Price:     params.Price,
			ImageURL:  params.ImageURL,
		})
	})

	log.Printf("product added to cart: product_id=%d total_items=%d", params.ProductID, cart.TotalItems())
}

func (r *StoreRepository) RemoveFromCart(productID int64) {
	cart := r.store.Update(func(items []domain.CartItem) []domain.CartItem {
		return domain.RemoveItem(items, productID)
	})

	log.Printf("product removed from cart: product_id=%d total_items=%d", productID, cart.TotalItems())
}

func (r *StoreRepository) UpdateQuantity(productID int64, quantity int) {
	cart := r.store.Update(func(items []domain.CartItem) []domain.CartItem {
		return domain.SetQuantity(items, productID, quantity)
	})

	log.Printf("cart quantity updated: product_id=%d quantity=%d total_items=%d", productID, quantity, cart.TotalItems())
}

func (r *StoreRepository) ClearCart() {
	r.store.Update(domain.ClearItems)

	log.Printf("cart cleared")
}

func (r *StoreRepository) Subscribe(fn func(domain.Cart)) func() {
	return r.store.Subscribe(fn)
}
