package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products on the storefront.
type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Product is a catalog item. Category is populated on reads when available.
type Product struct {
	ID              uuid.UUID
	UserID          uuid.UUID // Admin who created the product.
	Name            string
	CategoryID      uuid.UUID
	Category        *Category
	Price           float64
	OriginalPrice   *float64
	Description     string
	FullDescription string
	Image           string
	EcoTag          string
	InStock         bool
	Rating          float64
	Reviews         int
	Features        []string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
