// Package memory keeps every repository in process memory. It backs local
// runs without PostgreSQL and the HTTP end-to-end tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

// Store owns all tables. Repositories are views that share its lock.
type Store struct {
	mu         sync.RWMutex
	users      map[uuid.UUID]entity.User
	emails     map[string]uuid.UUID
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	donations  map[uuid.UUID]entity.Donation
	now        func() time.Time
	lastTick   time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users:      make(map[uuid.UUID]entity.User),
		emails:     make(map[string]uuid.UUID),
		categories: make(map[uuid.UUID]entity.Category),
		products:   make(map[uuid.UUID]entity.Product),
		donations:  make(map[uuid.UUID]entity.Donation),
		now:        time.Now,
	}
}

// view is embedded by every repository. Inside a transaction the store lock
// is already held, so held skips locking.
type view struct {
	store *Store
	held  bool
}

func (v view) read(fn func(s *Store)) {
	if !v.held {
		v.store.mu.RLock()
		defer v.store.mu.RUnlock()
	}
	fn(v.store)
}

func (v view) write(fn func(s *Store)) {
	if !v.held {
		v.store.mu.Lock()
		defer v.store.mu.Unlock()
	}
	fn(v.store)
}

// tick returns a strictly increasing timestamp so creation order survives
// equal clock readings. Callers hold the write lock.
func (s *Store) tick() time.Time {
	now := s.now()
	if !now.After(s.lastTick) {
		now = s.lastTick.Add(time.Microsecond)
	}
	s.lastTick = now

	return now
}

type snapshot struct {
	users      map[uuid.UUID]entity.User
	emails     map[string]uuid.UUID
	categories map[uuid.UUID]entity.Category
	products   map[uuid.UUID]entity.Product
	donations  map[uuid.UUID]entity.Donation
}

func (s *Store) snapshot() snapshot {
	return snapshot{
		users:      maps.Clone(s.users),
		emails:     maps.Clone(s.emails),
		categories: maps.Clone(s.categories),
		products:   maps.Clone(s.products),
		donations:  maps.Clone(s.donations),
	}
}

func (s *Store) restore(snap snapshot) {
	s.users = snap.users
	s.emails = snap.emails
	s.categories = snap.categories
	s.products = snap.products
	s.donations = snap.donations
}

// transactionManager serializes transactions on the store write lock and
// restores a snapshot when the callback fails.
type transactionManager struct {
	store *Store
}

// NewTransactionManager creates a TransactionManager over the store.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snap := tm.store.snapshot()
	defer func() {
		if r := recover(); r != nil {
			tm.store.restore(snap)
			panic(r)
		}
		if err != nil {
			tm.store.restore(snap)
		}
	}()

	return fn(&repositoryFactory{v: view{store: tm.store, held: true}})
}

type repositoryFactory struct {
	v view
}

func (f *repositoryFactory) NewUserRepository() repository.UserRepository {
	return &userRepository{view: f.v}
}

func (f *repositoryFactory) NewDonationRepository() repository.DonationRepository {
	return &donationRepository{view: f.v}
}

func (f *repositoryFactory) NewCategoryRepository() repository.CategoryRepository {
	return &categoryRepository{view: f.v}
}

func (f *repositoryFactory) NewProductRepository() repository.ProductRepository {
	return &productRepository{view: f.v}
}
