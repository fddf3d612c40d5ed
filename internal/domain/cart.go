package domain

// CartItem is one line in the cart: the product identity plus the
// display snapshot captured when the product was first added. The
// snapshot is not refreshed if the catalog changes afterwards.
type CartItem struct {
	ProductID int64   `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"image_url"`
	Quantity  int     `json:"quantity"`
}

// WithQuantity returns a copy of the item with its quantity replaced.
func (i CartItem) WithQuantity(quantity int) CartItem {
	i.Quantity = quantity
	return i
}

// Cart is an immutable snapshot: the ordered item list plus totals
// derived from it. Totals are never settable independently; every
// construction path goes through ComputeTotals.
type Cart struct {
	items      []CartItem
	totalItems int
	totalPrice float64
}

// EmptyCart returns the canonical empty cart.
func EmptyCart() Cart {
	return Cart{}
}

// NewCart builds a cart from a defensive copy of items, deriving the
// totals. Mutating the caller's slice afterwards does not affect the cart.
func NewCart(items []CartItem) Cart {
	copied := make([]CartItem, len(items))
	copy(copied, items)

	totalItems, totalPrice := ComputeTotals(copied)
	return Cart{
		items:      copied,
		totalItems: totalItems,
		totalPrice: totalPrice,
	}
}

// Items returns a copy of the item list in insertion order.
func (c Cart) Items() []CartItem {
	out := make([]CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of distinct lines in the cart.
func (c Cart) Len() int {
	return len(c.items)
}

// TotalItems is the sum of quantities across all lines.
func (c Cart) TotalItems() int {
	return c.totalItems
}

// TotalPrice is the sum of price*quantity across all lines.
func (c Cart) TotalPrice() float64 {
	return c.totalPrice
}

// ComputeTotals folds the item list into its aggregate totals.
func ComputeTotals(items []CartItem) (totalItems int, totalPrice float64) {
	for _, item := range items {
		totalItems += item.Quantity
		totalPrice += item.Price * float64(item.Quantity)
	}
	return totalItems, totalPrice
}
