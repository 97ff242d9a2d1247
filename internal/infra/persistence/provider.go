// Package persistence selects the repository implementation named by
// storage.driver and hands every repository to the container.
package persistence

import (
	"log/slog"

	"storefront/config"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/memory"
	"storefront/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds the dependencies needed to open a store.
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// Repositories is the set of repositories backed by one store.
type Repositories struct {
	fx.Out

	Users      repository.UserRepository
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	Donations  repository.DonationRepository
	TxManager  repository.TransactionManager
}

// New opens the configured store and returns its repositories.
func New(params Params) (Repositories, error) {
	switch params.Config.Storage.Driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory storage, data is lost on restart")

		return NewMemory(memory.NewStore()), nil
	case config.StorageDriverPostgres, "":
		db, err := postgres.New(params.Lc, params.Config, params.Logger)
		if err != nil {
			return Repositories{}, errors.Wrap(err, "failed to open postgres")
		}

		return Repositories{
			Users:      postgres.NewUserRepository(db),
			Categories: postgres.NewCategoryRepository(db),
			Products:   postgres.NewProductRepository(db),
			Donations:  postgres.NewDonationRepository(db),
			TxManager:  postgres.NewTransactionManager(db),
		}, nil
	default:
		return Repositories{}, errors.Errorf("unknown storage driver: %s", params.Config.Storage.Driver)
	}
}

// NewMemory wraps an in-memory store.
func NewMemory(store *memory.Store) Repositories {
	return Repositories{
		Users:      memory.NewUserRepository(store),
		Categories: memory.NewCategoryRepository(store),
		Products:   memory.NewProductRepository(store),
		Donations:  memory.NewDonationRepository(store),
		TxManager:  memory.NewTransactionManager(store),
	}
}
