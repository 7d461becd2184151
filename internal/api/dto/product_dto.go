package dto

import "github.com/noorskin/storefront/internal/domain"

// ProductRequest payload for create and update.
type ProductRequest struct {
	Name          string   `json:"name" validate:"required,min=2,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	Price         float64  `json:"price" validate:"gt=0"`
	OriginalPrice *float64 `json:"originalPrice" validate:"omitempty,gtefield=Price"`
	Category      string   `json:"category" validate:"required,max=100"`
	Brand         string   `json:"brand" validate:"max=100"`
	ImageURL      string   `json:"image" validate:"omitempty,url"`
	Stock         int      `json:"stock" validate:"gte=0"`
	Rating        float64  `json:"rating" validate:"gte=0,lte=5"`
	Tags          []string `json:"tags" validate:"max=20,dive,required,max=40"`
}

// ToDomain maps the payload onto a product.
func (r ProductRequest) ToDomain(id int64) *domain.Product {
	return &domain.Product{
		ID:            id,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		OriginalPrice: r.OriginalPrice,
		Category:      r.Category,
		Brand:         r.Brand,
		ImageURL:      r.ImageURL,
		Stock:         r.Stock,
		InStock:       r.Stock > 0,
		Rating:        r.Rating,
		Tags:          append([]string(nil), r.Tags...),
	}
}
