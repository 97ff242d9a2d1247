package impl

import (
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Defaults of a product created from the admin console before it is edited.
const (
	sampleProductName        = "Sample name"
	sampleProductDescription = "Sample description"
	sampleProductImage       = "/images/sample.jpg"
)

type catalogService struct {
	txManager    repository.TransactionManager
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	ProductRepo  repository.ProductRepository
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCatalogService creates the catalog usecase.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		txManager:    params.TxManager,
		productRepo:  params.ProductRepo,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

func (srv *catalogService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductNotFound.WrapMessage(id.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *catalogService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *catalogService) CreateProduct(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	product := &entity.Product{
		UserID:      ownerID,
		Name:        cmp.Or(strings.TrimSpace(input.Name), sampleProductName),
		Price:       input.Price,
		Description: cmp.Or(strings.TrimSpace(input.Description), sampleProductDescription),
		Image:       cmp.Or(strings.TrimSpace(input.Image), sampleProductImage),
		InStock:     true,
		Features:    []string{},
	}

	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
	} else {
		category, err := srv.categoryRepo.First(ctx)
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrNoCategory.WrapMessage("create a category before adding products")
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to pick default category")
		}
		product.CategoryID = category.ID
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}
	srv.log(ctx).Info("Product created", slog.Any("productID", product.ID), slog.Any("ownerID", ownerID))

	return srv.GetProduct(ctx, product.ID)
}

func (srv *catalogService) UpdateProduct(ctx context.Context, id uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	applyProductUpdate(product, input)

	if err := srv.productRepo.Update(ctx, product); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage(id.String())
		}

		return nil, errors.Wrap(err, "failed to update product")
	}

	return srv.GetProduct(ctx, id)
}

func applyProductUpdate(product *entity.Product, input *usecase.UpdateProductInput) {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.OriginalPrice != nil {
		product.OriginalPrice = input.OriginalPrice
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.FullDescription != nil {
		product.FullDescription = *input.FullDescription
	}
	if input.Image != nil {
		product.Image = *input.Image
	}
	if input.EcoTag != nil {
		product.EcoTag = *input.EcoTag
	}
	if input.CategoryID != nil {
		product.CategoryID = *input.CategoryID
		product.Category = nil
	}
	if input.InStock != nil {
		product.InStock = *input.InStock
	}
	if input.Features != nil {
		product.Features = slices.Clone(*input.Features)
	}
}

func (srv *catalogService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	err := srv.productRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return domainerrors.ErrProductNotFound.WrapMessage(id.String())
	}
	if err != nil {
		return errors.Wrap(err, "failed to delete product")
	}
	srv.log(ctx).Info("Product deleted", slog.Any("productID", id))

	return nil
}

func (srv *catalogService) ImportCatalog(ctx context.Context, ownerID uuid.UUID, catalog *usecase.SeedCatalog) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		categoryRepo := repoFactory.NewCategoryRepository()
		productRepo := repoFactory.NewProductRepository()

		if err := wipeCatalog(ctx, categoryRepo, productRepo); err != nil {
			return err
		}

		categories := make([]*entity.Category, 0, len(catalog.Categories))
		for _, seed := range catalog.Categories {
			categories = append(categories, &entity.Category{Name: seed.Name, Description: seed.Description})
		}
		if err := categoryRepo.CreateMany(ctx, categories); err != nil {
			return errors.Wrap(err, "failed to insert categories")
		}

		categoryIDs := make(map[string]uuid.UUID, len(categories))
		for _, category := range categories {
			categoryIDs[category.Name] = category.ID
		}

		products := make([]*entity.Product, 0, len(catalog.Products))
		for _, seed := range catalog.Products {
			categoryID, found := categoryIDs[seed.Category]
			if !found {
				return domainerrors.ErrNoCategory.WrapMessage("product " + seed.Name + " names unknown category " + seed.Category)
			}
			products = append(products, productFromSeed(ownerID, categoryID, seed))
		}

		return productRepo.CreateMany(ctx, products)
	})
	if err != nil {
		return errors.Wrap(err, "failed to import catalog")
	}

	srv.log(ctx).Info("Catalog imported",
		slog.Int("categories", len(catalog.Categories)),
		slog.Int("products", len(catalog.Products)))

	return nil
}

func (srv *catalogService) DestroyCatalog(ctx context.Context) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return wipeCatalog(ctx, repoFactory.NewCategoryRepository(), repoFactory.NewProductRepository())
	})
	if err != nil {
		return errors.Wrap(err, "failed to destroy catalog")
	}
	srv.log(ctx).Info("Catalog destroyed")

	return nil
}

// wipeCatalog deletes products before categories so foreign keys hold.
func wipeCatalog(ctx context.Context, categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) error {
	if err := productRepo.DeleteAll(ctx); err != nil {
		return errors.Wrap(err, "failed to delete products")
	}
	if err := categoryRepo.DeleteAll(ctx); err != nil {
		return errors.Wrap(err, "failed to delete categories")
	}

	return nil
}

func productFromSeed(ownerID, categoryID uuid.UUID, seed usecase.SeedProduct) *entity.Product {
	inStock := true
	if seed.InStock != nil {
		inStock = *seed.InStock
	}

	return &entity.Product{
		UserID:          ownerID,
		Name:            seed.Name,
		CategoryID:      categoryID,
		Price:           seed.Price,
		OriginalPrice:   seed.OriginalPrice,
		Description:     seed.Description,
		FullDescription: seed.FullDescription,
		Image:           seed.Image,
		EcoTag:          seed.EcoTag,
		InStock:         inStock,
		Rating:          seed.Rating,
		Reviews:         seed.Reviews,
		Features:        slices.Clone(seed.Features),
	}
}
