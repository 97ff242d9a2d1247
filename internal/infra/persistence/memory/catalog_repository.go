package memory

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type categoryRepository struct {
	view
}

// NewCategoryRepository creates a CategoryRepository backed by store.
func NewCategoryRepository(store *Store) repository.CategoryRepository {
	return &categoryRepository{view: view{store: store}}
}

func (r *categoryRepository) List(_ context.Context) ([]*entity.Category, error) {
	var categories []*entity.Category
	r.read(func(s *Store) {
		categories = s.sortedCategories()
	})

	return categories, nil
}

func (r *categoryRepository) FindByName(_ context.Context, name string) (*entity.Category, error) {
	var found *entity.Category
	r.read(func(s *Store) {
		for _, category := range s.categories {
			if category.Name == name {
				found = &category

				return
			}
		}
	})
	if found == nil {
		return nil, repository.ErrCategoryNotFound
	}

	return found, nil
}

func (r *categoryRepository) First(_ context.Context) (*entity.Category, error) {
	var categories []*entity.Category
	r.read(func(s *Store) {
		categories = s.sortedCategories()
	})
	if len(categories) == 0 {
		return nil, repository.ErrCategoryNotFound
	}

	return categories[0], nil
}

func (r *categoryRepository) CreateMany(_ context.Context, categories []*entity.Category) error {
	var err error
	r.write(func(s *Store) {
		names := make(map[string]struct{}, len(s.categories)+len(categories))
		for _, existing := range s.categories {
			names[existing.Name] = struct{}{}
		}
		for _, category := range categories {
			if _, taken := names[category.Name]; taken {
				err = domainerrors.ErrValidationFailed.WrapMessage("category " + category.Name + " already exists")

				return
			}
			names[category.Name] = struct{}{}
		}

		for _, category := range categories {
			if category.ID == uuid.Nil {
				category.ID = uuid.New()
			}
			now := s.tick()
			category.CreatedAt = now
			category.UpdatedAt = now
			s.categories[category.ID] = *category
		}
	})

	return err
}

func (r *categoryRepository) DeleteAll(_ context.Context) error {
	r.write(func(s *Store) {
		clear(s.categories)
	})

	return nil
}

func (s *Store) sortedCategories() []*entity.Category {
	categories := make([]*entity.Category, 0, len(s.categories))
	for _, category := range s.categories {
		categories = append(categories, &category)
	}
	slices.SortFunc(categories, func(a, b *entity.Category) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return categories
}

type productRepository struct {
	view
}

// NewProductRepository creates a ProductRepository backed by store.
func NewProductRepository(store *Store) repository.ProductRepository {
	return &productRepository{view: view{store: store}}
}

func (r *productRepository) List(_ context.Context) ([]*entity.Product, error) {
	var products []*entity.Product
	r.read(func(s *Store) {
		products = make([]*entity.Product, 0, len(s.products))
		for _, product := range s.products {
			products = append(products, s.populate(product))
		}
	})

	slices.SortFunc(products, func(a, b *entity.Product) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return products, nil
}

func (r *productRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	var product *entity.Product
	r.read(func(s *Store) {
		if stored, found := s.products[id]; found {
			product = s.populate(stored)
		}
	})
	if product == nil {
		return nil, repository.ErrProductNotFound
	}

	return product, nil
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.CreateMany(ctx, []*entity.Product{product})
}

func (r *productRepository) CreateMany(_ context.Context, products []*entity.Product) error {
	var err error
	r.write(func(s *Store) {
		for _, product := range products {
			if _, found := s.categories[product.CategoryID]; !found {
				err = domainerrors.ErrNoCategory.WrapMessage("category does not exist")

				return
			}
		}

		for _, product := range products {
			if product.ID == uuid.Nil {
				product.ID = uuid.New()
			}
			now := s.tick()
			product.CreatedAt = now
			product.UpdatedAt = now
			s.products[product.ID] = detach(*product)
		}
	})

	return err
}

func (r *productRepository) Update(_ context.Context, product *entity.Product) error {
	var err error
	r.write(func(s *Store) {
		current, found := s.products[product.ID]
		if !found {
			err = repository.ErrProductNotFound

			return
		}
		if _, found := s.categories[product.CategoryID]; !found {
			err = domainerrors.ErrNoCategory.WrapMessage("category does not exist")

			return
		}

		product.UserID = current.UserID
		product.CreatedAt = current.CreatedAt
		product.UpdatedAt = s.tick()
		s.products[product.ID] = detach(*product)
	})

	return err
}

func (r *productRepository) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	r.write(func(s *Store) {
		if _, found := s.products[id]; !found {
			err = repository.ErrProductNotFound

			return
		}
		delete(s.products, id)
	})

	return err
}

func (r *productRepository) DeleteAll(_ context.Context) error {
	r.write(func(s *Store) {
		clear(s.products)
	})

	return nil
}

func (r *productRepository) Count(_ context.Context) (int64, error) {
	var count int
	r.read(func(s *Store) {
		count = len(s.products)
	})

	return int64(count), nil
}

// populate copies a stored product and attaches its category.
func (s *Store) populate(product entity.Product) *entity.Product {
	product.Features = slices.Clone(product.Features)
	if category, found := s.categories[product.CategoryID]; found {
		product.Category = &category
	}

	return &product
}

// detach drops the populated category and copies slices before storing.
func detach(product entity.Product) entity.Product {
	product.Category = nil
	product.Features = slices.Clone(product.Features)

	return product
}
