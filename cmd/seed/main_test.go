package main

import (
	"context"
	"log/slog"
	"testing"

	"storefront/internal/domain/service"
	"storefront/internal/infra/auth"
	"storefront/internal/infra/persistence"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/usecase/impl"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, *service.AuditEvent) error { return nil }

func (noopPublisher) Close() error { return nil }

func newTestSeeder(t *testing.T) (*seeder, persistence.Repositories) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	repos := persistence.NewMemory(memory.NewStore())
	hasher, err := auth.NewBcryptHasherWithCost(bcrypt.MinCost, 6, 72)
	require.NoError(t, err)

	return &seeder{
		catalogUC: impl.NewCatalogService(impl.CatalogServiceParams{
			TxManager:    repos.TxManager,
			ProductRepo:  repos.Products,
			CategoryRepo: repos.Categories,
			Logger:       logger,
		}),
		adminUC: impl.NewAdminService(impl.AdminServiceParams{
			TxManager:    repos.TxManager,
			UserRepo:     repos.Users,
			ProductRepo:  repos.Products,
			DonationRepo: repos.Donations,
			Hasher:       hasher,
			Publisher:    noopPublisher{},
			Logger:       logger,
		}),
		logger: logger,
	}, repos
}

func TestLoadCatalog_Bundled(t *testing.T) {
	catalog, err := loadCatalog(catalogJSON)
	require.NoError(t, err)

	names := make(map[string]bool, len(catalog.Categories))
	for _, category := range catalog.Categories {
		names[category.Name] = true
	}
	require.NotEmpty(t, catalog.Products)
	for _, product := range catalog.Products {
		assert.True(t, names[product.Category], "product %q references unknown category %q", product.Name, product.Category)
	}
}

func TestSeeder_ImportAndDestroy(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestSeeder(t)

	err := s.run(ctx, options{importData: true})
	require.Error(t, err, "import needs an owner")

	require.NoError(t, s.run(ctx, options{importData: true, adminEmail: "admin@example.com", adminPassword: "admin-secret"}))

	catalog, err := loadCatalog(catalogJSON)
	require.NoError(t, err)
	count, err := repos.Products.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(catalog.Products), count)

	// Re-import replaces rather than duplicates, owned by the existing admin
	require.NoError(t, s.run(ctx, options{importData: true}))
	count, err = repos.Products.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, len(catalog.Products), count)

	require.NoError(t, s.run(ctx, options{destroyData: true}))
	count, err = repos.Products.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
	categories, err := repos.Categories.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestSeeder_RejectsBadFlags(t *testing.T) {
	s, _ := newTestSeeder(t)

	assert.Error(t, s.run(context.Background(), options{}))
	assert.Error(t, s.run(context.Background(), options{importData: true, destroyData: true}))
}

func TestSeeder_AdminOnly(t *testing.T) {
	ctx := context.Background()
	s, repos := newTestSeeder(t)

	require.NoError(t, s.run(ctx, options{adminEmail: "Admin@Example.com", adminPassword: "admin-secret"}))

	admin, err := repos.Users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.True(t, admin.Privilege.IsElevated())
	assert.Equal(t, "Admin", admin.Name)
}
