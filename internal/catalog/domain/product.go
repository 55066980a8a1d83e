package domain

import (
	"time"
)

const (
	StatusInStock    = "in_stock"
	StatusOutOfStock = "out_of_stock"
)

// Categories carried by the storefront. The console renders these as the
// category choices for create and update forms.
var Categories = []string{"Pastries", "Artisan Breads", "Cookies & Treats"}

type Product struct {
	ID          int64     `json:"product_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Category    string    `json:"category"`
	Quantity    int       `json:"quantity"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateProductRequest is the payload for POST /products. Price uses a
// pointer so a zero price still satisfies the required binding.
type CreateProductRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required,gte=0"`
	ImageURL    string   `json:"image_url" binding:"max=255"`
	Category    string   `json:"category" binding:"required,max=255"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Status      string   `json:"status" binding:"max=50"`
}

// UpdateProductRequest is the payload for PUT /products/:id. Every field is
// optional; absent fields keep their stored value.
type UpdateProductRequest struct {
	Name        *string  `json:"name" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	ImageURL    *string  `json:"image_url" binding:"omitempty,max=255"`
	Category    *string  `json:"category" binding:"omitempty,max=255"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=0"`
	Status      *string  `json:"status" binding:"omitempty,max=50"`
}

// ValidCategory reports whether c is one of the storefront categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}
