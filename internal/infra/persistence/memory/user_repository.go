package memory

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	view
}

// NewUserRepository creates a UserRepository backed by store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{view: view{store: store}}
}

func (r *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var (
		user  entity.User
		found bool
	)
	r.read(func(s *Store) {
		user, found = s.users[id]
	})
	if !found {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var (
		user  entity.User
		found bool
	)
	r.read(func(s *Store) {
		var id uuid.UUID
		if id, found = s.emails[entity.NormalizeEmail(email)]; found {
			user = s.users[id]
		}
	})
	if !found {
		return nil, repository.ErrUserNotFound
	}

	return &user, nil
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	var err error
	r.write(func(s *Store) {
		email := entity.NormalizeEmail(user.Email)
		if _, taken := s.emails[email]; taken {
			err = domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists")

			return
		}

		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		now := s.tick()
		user.Email = email
		user.CreatedAt = now
		user.UpdatedAt = now

		s.users[user.ID] = *user
		s.emails[email] = user.ID
	})

	return err
}

func (r *userRepository) Update(_ context.Context, user *entity.User) error {
	var err error
	r.write(func(s *Store) {
		current, found := s.users[user.ID]
		if !found {
			err = repository.ErrUserNotFound

			return
		}

		email := entity.NormalizeEmail(user.Email)
		if owner, taken := s.emails[email]; taken && owner != user.ID {
			err = domainerrors.ErrDuplicateIdentity.WrapMessage("email already exists")

			return
		}

		user.Email = email
		user.CreatedAt = current.CreatedAt
		user.UpdatedAt = s.tick()

		delete(s.emails, current.Email)
		s.emails[email] = user.ID
		s.users[user.ID] = *user
	})

	return err
}

func (r *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	var err error
	r.write(func(s *Store) {
		current, found := s.users[id]
		if !found {
			err = repository.ErrUserNotFound

			return
		}

		delete(s.emails, current.Email)
		delete(s.users, id)
	})

	return err
}

func (r *userRepository) List(_ context.Context) ([]*entity.User, error) {
	var users []*entity.User
	r.read(func(s *Store) {
		users = make([]*entity.User, 0, len(s.users))
		for _, user := range s.users {
			users = append(users, &user)
		}
	})

	slices.SortFunc(users, func(a, b *entity.User) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})

	return users, nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	var count int
	r.read(func(s *Store) {
		count = len(s.users)
	})

	return int64(count), nil
}
