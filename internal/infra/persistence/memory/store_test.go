package memory

import (
	"context"
	"testing"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFrozenStore() *Store {
	store := NewStore()
	frozen := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store.now = func() time.Time { return frozen }

	return store
}

func seedUser(t *testing.T, store *Store, email string) *entity.User {
	t.Helper()

	user := &entity.User{Name: "Alice", Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(store).Create(context.Background(), user))

	return user
}

func TestUserRepository_CreateNormalizesEmailAndRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)

	user := seedUser(t, store, "  Alice@Example.COM ")
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	err = repo.Create(ctx, &entity.User{Name: "Other", Email: "alice@example.com"})
	require.Error(t, err)
	appErr, ok := errors.AsType[domainerrors.AppError](err)
	require.True(t, ok)
	assert.Equal(t, 400, appErr.HTTPCode())
	assert.Equal(t, "User already exists", appErr.Message())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUserRepository_FindReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)
	user := seedUser(t, store, "alice@example.com")

	found, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	found.Name = "Mallory"

	again, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestUserRepository_UpdateMovesEmailIndex(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)
	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")

	alice.Email = "bob@example.com"
	err := repo.Update(ctx, alice)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrDuplicateIdentity))

	alice.Email = "alice2@example.com"
	require.NoError(t, repo.Update(ctx, alice))

	_, err = repo.FindByEmail(ctx, "alice@example.com")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	found, err := repo.FindByEmail(ctx, "alice2@example.com")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	bob.Email = "bob@example.com"
	require.NoError(t, repo.Update(ctx, bob), "keeping your own email is not a collision")
}

func TestUserRepository_ListOrdersByCreation(t *testing.T) {
	ctx := context.Background()
	store := newFrozenStore()
	first := seedUser(t, store, "a@example.com")
	second := seedUser(t, store, "b@example.com")

	assert.True(t, second.CreatedAt.After(first.CreatedAt), "equal clock readings still order")

	users, err := NewUserRepository(store).List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}

func TestUserRepository_DeleteUnknown(t *testing.T) {
	err := NewUserRepository(NewStore()).Delete(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestProductRepository_PopulatesCategory(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	owner := seedUser(t, store, "admin@example.com")

	categories := NewCategoryRepository(store)
	category := &entity.Category{Name: "Kitchen", Description: "Pots"}
	require.NoError(t, categories.CreateMany(ctx, []*entity.Category{category}))

	products := NewProductRepository(store)
	product := &entity.Product{
		UserID:     owner.ID,
		Name:       "Bamboo Brush",
		CategoryID: category.ID,
		Features:   []string{"compostable"},
	}
	require.NoError(t, products.Create(ctx, product))

	found, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Category)
	assert.Equal(t, "Kitchen", found.Category.Name)

	found.Features[0] = "changed"
	again, err := products.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"compostable"}, again.Features)

	err = products.Create(ctx, &entity.Product{Name: "Orphan", CategoryID: uuid.New()})
	assert.True(t, errors.Is(err, domainerrors.ErrNoCategory))

	_, err = products.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCategoryRepository_FirstAndDeleteAll(t *testing.T) {
	ctx := context.Background()
	store := newFrozenStore()
	repo := NewCategoryRepository(store)

	_, err := repo.First(ctx)
	require.ErrorIs(t, err, repository.ErrCategoryNotFound)

	require.NoError(t, repo.CreateMany(ctx, []*entity.Category{{Name: "Home"}, {Name: "Garden"}}))

	first, err := repo.First(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Home", first.Name)

	garden, err := repo.FindByName(ctx, "Garden")
	require.NoError(t, err)
	assert.Equal(t, "Garden", garden.Name)

	err = repo.CreateMany(ctx, []*entity.Category{{Name: "Home"}})
	require.Error(t, err)

	require.NoError(t, repo.DeleteAll(ctx))
	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDonationRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := newFrozenStore()
	alice := seedUser(t, store, "alice@example.com")
	bob := seedUser(t, store, "bob@example.com")
	repo := NewDonationRepository(store)

	older := &entity.Donation{UserID: alice.ID, ItemName: "Jacket", Status: entity.DonationStatusPending}
	newer := &entity.Donation{UserID: alice.ID, ItemName: "Boots", Status: entity.DonationStatusPending}
	other := &entity.Donation{UserID: bob.ID, ItemName: "Lamp", Status: entity.DonationStatusPending}
	for _, donation := range []*entity.Donation{older, newer, other} {
		require.NoError(t, repo.Create(ctx, donation))
	}

	mine, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "Boots", mine[0].ItemName)
	assert.Equal(t, "Jacket", mine[1].ItemName)

	all, err := repo.ListWithUsers(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, donation := range all {
		require.NotNil(t, donation.User)
		assert.Empty(t, donation.User.PasswordHash)
	}

	updated, err := repo.UpdateStatus(ctx, older.ID, entity.DonationStatusApproved)
	require.NoError(t, err)
	assert.Equal(t, entity.DonationStatusApproved, updated.Status)

	pending, err := repo.CountByStatus(ctx, entity.DonationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, int64(2), pending)

	_, err = repo.UpdateStatus(ctx, uuid.New(), entity.DonationStatusApproved)
	assert.ErrorIs(t, err, repository.ErrDonationNotFound)

	require.NoError(t, repo.DeleteByUser(ctx, alice.ID))
	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	empty, err := repo.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestDonationRepository_CreateRequiresOwner(t *testing.T) {
	err := NewDonationRepository(NewStore()).Create(context.Background(), &entity.Donation{UserID: uuid.New()})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	alice := seedUser(t, store, "alice@example.com")
	require.NoError(t, NewDonationRepository(store).Create(ctx, &entity.Donation{UserID: alice.ID, ItemName: "Jacket"}))

	boom := errors.New("boom")
	err := NewTransactionManager(store).Execute(ctx, func(factory repository.RepositoryFactory) error {
		require.NoError(t, factory.NewDonationRepository().DeleteByUser(ctx, alice.ID))
		require.NoError(t, factory.NewUserRepository().Delete(ctx, alice.ID))

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = NewUserRepository(store).FindByID(ctx, alice.ID)
	require.NoError(t, err)
	_, err = NewUserRepository(store).FindByEmail(ctx, alice.Email)
	require.NoError(t, err)

	count, err := NewDonationRepository(store).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactionManager_CommitsAndRestoresOnPanic(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	tm := NewTransactionManager(store)

	require.NoError(t, tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.NewUserRepository().Create(ctx, &entity.User{Name: "Alice", Email: "alice@example.com"})
	}))

	assert.Panics(t, func() {
		_ = tm.Execute(ctx, func(factory repository.RepositoryFactory) error {
			_ = factory.NewUserRepository().Create(ctx, &entity.User{Name: "Bob", Email: "bob@example.com"})
			panic("handler bug")
		})
	})

	count, err := NewUserRepository(store).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestTransactionManager_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTransactionManager(NewStore()).Execute(ctx, func(repository.RepositoryFactory) error {
		called = true

		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
