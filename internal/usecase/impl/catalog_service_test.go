package impl

import (
	"context"
	"testing"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service        usecase.CatalogUsecase
	txManager      *mockRepo.MockTransactionManager
	productRepo    *mockRepo.MockProductRepository
	categoryRepo   *mockRepo.MockCategoryRepository
	txProductRepo  *mockRepo.MockProductRepository
	txCategoryRepo *mockRepo.MockCategoryRepository
}

func createTestCatalogService(t *testing.T) catalogServiceFixtures {
	fx := catalogServiceFixtures{
		txManager:      mockRepo.NewMockTransactionManager(t),
		productRepo:    mockRepo.NewMockProductRepository(t),
		categoryRepo:   mockRepo.NewMockCategoryRepository(t),
		txProductRepo:  mockRepo.NewMockProductRepository(t),
		txCategoryRepo: mockRepo.NewMockCategoryRepository(t),
	}
	fx.service = NewCatalogService(CatalogServiceParams{
		TxManager:    fx.txManager,
		ProductRepo:  fx.productRepo,
		CategoryRepo: fx.categoryRepo,
		Logger:       newDiscardLogger(),
	})

	return fx
}

func (fx catalogServiceFixtures) inTransaction(t *testing.T) {
	factory := mockRepo.NewMockRepositoryFactory(t)
	factory.EXPECT().NewProductRepository().Return(fx.txProductRepo)
	factory.EXPECT().NewCategoryRepository().Return(fx.txCategoryRepo)
	expectTransaction(fx.txManager, factory)
}

func TestCatalogService_GetProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	id := uuid.New()
	fx.productRepo.EXPECT().FindByID(ctx, id).Return(nil, repository.ErrProductNotFound)

	_, err := fx.service.GetProduct(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_CreateProduct_UsesSampleDefaults(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	ownerID := uuid.New()
	category := &entity.Category{ID: uuid.New(), Name: "Kitchen"}
	productID := uuid.New()

	fx.categoryRepo.EXPECT().First(ctx).Return(category, nil)
	fx.productRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(product *entity.Product) bool {
			return product.Name == "Sample name" &&
				product.Price == 0 &&
				product.UserID == ownerID &&
				product.CategoryID == category.ID &&
				product.InStock
		})).
		Run(func(_ context.Context, product *entity.Product) { product.ID = productID }).
		Return(nil)
	fx.productRepo.EXPECT().FindByID(ctx, productID).Return(&entity.Product{ID: productID, Category: category}, nil)

	product, err := fx.service.CreateProduct(ctx, ownerID, &usecase.CreateProductInput{})

	require.NoError(t, err)
	assert.Equal(t, productID, product.ID)
	assert.Equal(t, "Kitchen", product.Category.Name)
}

func TestCatalogService_CreateProduct_NoCategory(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	fx.categoryRepo.EXPECT().First(ctx).Return(nil, repository.ErrCategoryNotFound)

	_, err := fx.service.CreateProduct(ctx, uuid.New(), &usecase.CreateProductInput{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoCategory))
}

func TestCatalogService_UpdateProduct_Partial(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	id := uuid.New()
	price := 19.5
	inStock := false
	current := &entity.Product{ID: id, Name: "Brush", Price: 10, InStock: true, Features: []string{"a"}}

	fx.productRepo.EXPECT().FindByID(ctx, id).Return(current, nil).Once()
	fx.productRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(product *entity.Product) bool {
			return product.Name == "Brush" && product.Price == 19.5 && !product.InStock
		})).
		Return(nil)
	fx.productRepo.EXPECT().FindByID(ctx, id).Return(&entity.Product{ID: id, Name: "Brush", Price: 19.5}, nil).Once()

	product, err := fx.service.UpdateProduct(ctx, id, &usecase.UpdateProductInput{Price: &price, InStock: &inStock})

	require.NoError(t, err)
	assert.Equal(t, 19.5, product.Price)
}

func TestCatalogService_DeleteProduct_NotFound(t *testing.T) {
	fx := createTestCatalogService(t)

	ctx := context.Background()
	id := uuid.New()
	fx.productRepo.EXPECT().Delete(ctx, id).Return(repository.ErrProductNotFound)

	err := fx.service.DeleteProduct(ctx, id)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrProductNotFound))
}

func TestCatalogService_ImportCatalog_ResolvesCategoriesByName(t *testing.T) {
	fx := createTestCatalogService(t)
	fx.inTransaction(t)

	ctx := context.Background()
	ownerID := uuid.New()
	kitchenID := uuid.New()

	fx.txProductRepo.EXPECT().DeleteAll(ctx).Return(nil)
	fx.txCategoryRepo.EXPECT().DeleteAll(ctx).Return(nil)
	fx.txCategoryRepo.EXPECT().
		CreateMany(ctx, mock.AnythingOfType("[]*entity.Category")).
		Run(func(_ context.Context, categories []*entity.Category) {
			require.Len(t, categories, 1)
			categories[0].ID = kitchenID
		}).
		Return(nil)
	fx.txProductRepo.EXPECT().
		CreateMany(ctx, mock.MatchedBy(func(products []*entity.Product) bool {
			return len(products) == 1 &&
				products[0].CategoryID == kitchenID &&
				products[0].UserID == ownerID &&
				products[0].InStock
		})).
		Return(nil)

	err := fx.service.ImportCatalog(ctx, ownerID, &usecase.SeedCatalog{
		Categories: []usecase.SeedCategory{{Name: "Kitchen"}},
		Products:   []usecase.SeedProduct{{Name: "Brush", Category: "Kitchen", Price: 4}},
	})

	require.NoError(t, err)
}

func TestCatalogService_ImportCatalog_UnknownCategory(t *testing.T) {
	fx := createTestCatalogService(t)
	fx.inTransaction(t)

	ctx := context.Background()
	fx.txProductRepo.EXPECT().DeleteAll(ctx).Return(nil)
	fx.txCategoryRepo.EXPECT().DeleteAll(ctx).Return(nil)
	fx.txCategoryRepo.EXPECT().CreateMany(ctx, mock.Anything).Return(nil)

	err := fx.service.ImportCatalog(ctx, uuid.New(), &usecase.SeedCatalog{
		Products: []usecase.SeedProduct{{Name: "Brush", Category: "Garden"}},
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrNoCategory))
}
