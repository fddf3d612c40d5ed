package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// flexID decodes the ids the catalog API returns either as numbers or
// as quoted strings.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid id %q: %w", s, err)
		}
		*f = flexID(n)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

type categoryDTO struct {
	ID    flexID `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

type productDTO struct {
	ID          flexID      `json:"id"`
	Title       string      `json:"title"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Images      []string    `json:"images"`
	Category    categoryDTO `json:"category"`
}

type productsResponseDTO struct {
	Products []productDTO `json:"products"`
}

type productResponseDTO struct {
	Product *productDTO `json:"product"`
}

func (d productDTO) validate() error {
	if d.ID <= 0 {
		return fmt.Errorf("%w: missing product id", ErrInvalidResponse)
	}
	if d.Title == "" {
		return fmt.Errorf("%w: missing title for product %d", ErrInvalidResponse, d.ID)
	}
	return nil
}

func (d productDTO) toDomain() Product {
	return Product{
		ID:          int64(d.ID),
		Title:       d.Title,
		Price:       d.Price,
		Description: d.Description,
		Images:      append([]string(nil), d.Images...),
		Category: Category{
			ID:       int64(d.Category.ID),
			Name:     d.Category.Name,
			ImageURL: d.Category.Image,
		},
	}
}
