package catalog

import "errors"

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidResponse = errors.New("invalid catalog response")
)

type Category struct {
	ID       int64
	Name     string
	ImageURL string
}

// Product is the catalog entity the storefront lists and the cart
// takes its display snapshot from.
type Product struct {
	ID          int64
	Title       string
	Price       float64
	Description string
	Images      []string
	Category    Category
}

// FirstImage returns the product's primary image, or "" when the
// catalog supplied none.
func (p Product) FirstImage() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductQuery holds the paging parameters for a product listing.
type ProductQuery struct {
	Limit  int
	Offset int
}
