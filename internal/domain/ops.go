package domain

// ProductData carries the display snapshot for a product being added
// to the cart.
type ProductData struct {
	ProductID int64
	Title     string
	Price     float64
	ImageURL  string
}

// AddItem returns a new list with the product's quantity incremented
// if a line with the same ProductID already exists, or with a new line
// of quantity 1 appended. An existing line keeps its stored
// title/price/image: the snapshot is locked at first add. The input
// slice is never mutated.
func AddItem(items []CartItem, product ProductData) []CartItem {
	for i, item := range items {
		if item.ProductID == product.ProductID {
			out := make([]CartItem, len(items))
			copy(out, items)
			out[i] = item.WithQuantity(item.Quantity + 1)
			return out
		}
	}

	out := make([]CartItem, len(items), len(items)+1)
	copy(out, items)
	return append(out, CartItem{
		ProductID: product.ProductID,
		Title:     product.Title,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
		Quantity:  1,
	})
}

// RemoveItem returns a new list without any line matching productID.
func RemoveItem(items []CartItem, productID int64) []CartItem {
	out := make([]CartItem, 0, len(items))
	for _, item := range items {
		if item.ProductID != productID {
			out = append(out, item)
		}
	}
	return out
}

// SetQuantity returns a new list with the matching line's quantity
// replaced. A quantity of zero or less removes the line; an absent
// productID leaves the list unchanged (no implicit add).
func SetQuantity(items []CartItem, productID int64, quantity int) []CartItem {
	if quantity <= 0 {
		return RemoveItem(items, productID)
	}

	out := make([]CartItem, len(items))
	copy(out, items)
	for i, item := range out {
		if item.ProductID == productID {
			out[i] = item.WithQuantity(quantity)
			break
		}
	}
	return out
}

// ClearItems returns an empty list regardless of input.
func ClearItems([]CartItem) []CartItem {
	return []CartItem{}
}
