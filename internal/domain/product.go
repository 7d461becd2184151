package domain

import (
	"math"
	"time"
)

// Product is a catalog item sold on the storefront.
type Product struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	ImageURL      string    `json:"image"`
	Stock         int       `json:"stock"`
	InStock       bool      `json:"inStock"`
	Rating        float64   `json:"rating"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// ProductFilter narrows product listings.
type ProductFilter struct {
	Category string
	Search   string
	Page     int
	PageSize int
}

// Offset returns the row offset for the filter's page, saturating instead of overflowing.
func (f ProductFilter) Offset() int {
	if f.Page <= 1 || f.PageSize <= 0 {
		return 0
	}
	if f.Page-1 > math.MaxInt/f.PageSize {
		return math.MaxInt / f.PageSize * f.PageSize
	}
	return (f.Page - 1) * f.PageSize
}
