package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// CategoryRepository manages product categories.
type CategoryRepository interface {
	List(ctx context.Context) ([]*entity.Category, error)
	FindByName(ctx context.Context, name string) (*entity.Category, error)
	// First returns the oldest category, used as the default for sample products.
	First(ctx context.Context) (*entity.Category, error)
	CreateMany(ctx context.Context, categories []*entity.Category) error
	DeleteAll(ctx context.Context) error
}

// ProductRepository manages catalog products. Reads populate Product.Category.
type ProductRepository interface {
	List(ctx context.Context) ([]*entity.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	CreateMany(ctx context.Context, products []*entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
