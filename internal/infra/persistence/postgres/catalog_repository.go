package postgres

import (
	"context"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a GORM-backed CategoryRepository.
func NewCategoryRepository(db *gorm.DB) repository.CategoryRepository {
	return &categoryRepository{db: db}
}

func (repo *categoryRepository) List(ctx context.Context) ([]*entity.Category, error) {
	var models []model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	categories := make([]*entity.Category, 0, len(models))
	for i := range models {
		categories = append(categories, toCategoryDomain(&models[i]))
	}

	return categories, nil
}

func (repo *categoryRepository) FindByName(ctx context.Context, name string) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Where("name = ?", name).First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by name")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) First(ctx context.Context) (*entity.Category, error) {
	var categoryM model.CategoryModel
	if err := repo.db.WithContext(ctx).Order("created_at ASC").First(&categoryM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find first category")
	}

	return toCategoryDomain(&categoryM), nil
}

func (repo *categoryRepository) CreateMany(ctx context.Context, categories []*entity.Category) error {
	if len(categories) == 0 {
		return nil
	}

	models := make([]*model.CategoryModel, 0, len(categories))
	for _, category := range categories {
		if category.ID == uuid.Nil {
			category.ID = uuid.New()
		}
		models = append(models, fromCategoryDomain(category))
	}

	if err := repo.db.WithContext(ctx).Create(models).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create categories")
	}
	for i, categoryM := range models {
		categories[i].CreatedAt = categoryM.CreatedAt
		categories[i].UpdatedAt = categoryM.UpdatedAt
	}

	return nil
}

func (repo *categoryRepository) DeleteAll(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.CategoryModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete categories")
	}

	return nil
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a GORM-backed ProductRepository.
func NewProductRepository(db *gorm.DB) repository.ProductRepository {
	return &productRepository{db: db}
}

func (repo *productRepository) List(ctx context.Context) ([]*entity.Product, error) {
	var models []model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	products := make([]*entity.Product, 0, len(models))
	for i := range models {
		products = append(products, toProductDomain(&models[i]))
	}

	return products, nil
}

func (repo *productRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var productM model.ProductModel
	if err := repo.db.WithContext(ctx).Preload("Category").Where("id = ?", id).First(&productM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrProductNotFound
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return toProductDomain(&productM), nil
}

func (repo *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return repo.CreateMany(ctx, []*entity.Product{product})
}

func (repo *productRepository) CreateMany(ctx context.Context, products []*entity.Product) error {
	if len(products) == 0 {
		return nil
	}

	models := make([]*model.ProductModel, 0, len(products))
	for _, product := range products {
		if product.ID == uuid.Nil {
			product.ID = uuid.New()
		}
		models = append(models, fromProductDomain(product))
	}

	if err := repo.db.WithContext(ctx).Omit("Category").Create(models).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrNoCategory.WrapMessage("category does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create products")
	}
	for i, productM := range models {
		products[i].CreatedAt = productM.CreatedAt
		products[i].UpdatedAt = productM.UpdatedAt
	}

	return nil
}

func (repo *productRepository) Update(ctx context.Context, product *entity.Product) error {
	productM := fromProductDomain(product)

	result := repo.db.WithContext(ctx).Model(&model.ProductModel{ID: productM.ID}).
		Select("name", "category_id", "price", "original_price", "description", "full_description",
			"image", "eco_tag", "in_stock", "rating", "reviews", "features", "updated_at").
		Updates(productM)
	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrNoCategory.WrapMessage("category does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).Delete(&model.ProductModel{}, "id = ?", id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete product")
	}
	if result.RowsAffected == 0 {
		return repository.ErrProductNotFound
	}

	return nil
}

func (repo *productRepository) DeleteAll(ctx context.Context) error {
	err := repo.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.ProductModel{}).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete products")
	}

	return nil
}

func (repo *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.ProductModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count products")
	}

	return count, nil
}

func toCategoryDomain(data *model.CategoryModel) *entity.Category {
	if data == nil {
		return nil
	}

	return &entity.Category{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromCategoryDomain(data *entity.Category) *model.CategoryModel {
	return &model.CategoryModel{
		ID:          data.ID,
		Name:        data.Name,
		Description: data.Description,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toProductDomain(data *model.ProductModel) *entity.Product {
	if data == nil {
		return nil
	}

	return &entity.Product{
		ID:              data.ID,
		UserID:          data.UserID,
		Name:            data.Name,
		CategoryID:      data.CategoryID,
		Category:        toCategoryDomain(data.Category),
		Price:           data.Price,
		OriginalPrice:   data.OriginalPrice,
		Description:     data.Description,
		FullDescription: data.FullDescription,
		Image:           data.Image,
		EcoTag:          data.EcoTag,
		InStock:         data.InStock,
		Rating:          data.Rating,
		Reviews:         data.Reviews,
		Features:        []string(data.Features),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromProductDomain(data *entity.Product) *model.ProductModel {
	return &model.ProductModel{
		ID:              data.ID,
		UserID:          data.UserID,
		Name:            data.Name,
		CategoryID:      data.CategoryID,
		Price:           data.Price,
		OriginalPrice:   data.OriginalPrice,
		Description:     data.Description,
		FullDescription: data.FullDescription,
		Image:           data.Image,
		EcoTag:          data.EcoTag,
		InStock:         data.InStock,
		Rating:          data.Rating,
		Reviews:         data.Reviews,
		Features:        datatypes.JSONSlice[string](data.Features),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
