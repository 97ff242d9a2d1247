package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput describes a new product. Zero values fall back to the
// sample defaults of the admin console.
type CreateProductInput struct {
	Name        string
	Price       float64
	Description string
	Image       string
	CategoryID  *uuid.UUID
}

// UpdateProductInput carries a partial product update. Nil fields are left unchanged.
type UpdateProductInput struct {
	Name            *string
	Price           *float64
	OriginalPrice   *float64
	Description     *string
	FullDescription *string
	Image           *string
	EcoTag          *string
	CategoryID      *uuid.UUID
	InStock         *bool
	Features        *[]string
}

// SeedCategory is a category entry of a catalog import.
type SeedCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SeedProduct is a product entry of a catalog import. Category is resolved by name.
type SeedProduct struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Price           float64  `json:"price"`
	OriginalPrice   *float64 `json:"originalPrice"`
	Description     string   `json:"description"`
	FullDescription string   `json:"fullDescription"`
	Image           string   `json:"image"`
	EcoTag          string   `json:"ecoTag"`
	InStock         *bool    `json:"inStock"`
	Rating          float64  `json:"rating"`
	Reviews         int      `json:"reviews"`
	Features        []string `json:"features"`
}

// SeedCatalog is the document consumed by the seeder.
type SeedCatalog struct {
	Categories []SeedCategory `json:"categories"`
	Products   []SeedProduct  `json:"products"`
}

// CatalogUsecase covers the public storefront catalog and its admin management.
type CatalogUsecase interface {
	ListProducts(ctx context.Context) ([]*entity.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)

	CreateProduct(ctx context.Context, ownerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	// ImportCatalog wipes categories and products and inserts the seed set
	// in one transaction. Every product is owned by ownerID.
	ImportCatalog(ctx context.Context, ownerID uuid.UUID, catalog *SeedCatalog) error
	// DestroyCatalog wipes categories and products.
	DestroyCatalog(ctx context.Context) error
}
