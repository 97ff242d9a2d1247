package memory

import (
	"context"
	"slices"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"

	"github.com/google/uuid"
)

type donationRepository struct {
	view
}

// NewDonationRepository creates a DonationRepository backed by store.
func NewDonationRepository(store *Store) repository.DonationRepository {
	return &donationRepository{view: view{store: store}}
}

func (r *donationRepository) Create(_ context.Context, donation *entity.Donation) error {
	var err error
	r.write(func(s *Store) {
		if _, found := s.users[donation.UserID]; !found {
			err = domainerrors.ErrUserNotFound.WrapMessage("donation owner does not exist")

			return
		}

		if donation.ID == uuid.Nil {
			donation.ID = uuid.New()
		}
		now := s.tick()
		donation.CreatedAt = now
		donation.UpdatedAt = now

		stored := *donation
		stored.User = nil
		s.donations[donation.ID] = stored
	})

	return err
}

func (r *donationRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.Donation, error) {
	var (
		donation entity.Donation
		found    bool
	)
	r.read(func(s *Store) {
		donation, found = s.donations[id]
	})
	if !found {
		return nil, repository.ErrDonationNotFound
	}

	return &donation, nil
}

func (r *donationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.Donation, error) {
	var donations []*entity.Donation
	r.read(func(s *Store) {
		for _, donation := range s.donations {
			if donation.UserID == userID {
				donations = append(donations, &donation)
			}
		}
	})

	return newestFirst(donations), nil
}

func (r *donationRepository) ListWithUsers(_ context.Context) ([]*entity.Donation, error) {
	var donations []*entity.Donation
	r.read(func(s *Store) {
		donations = make([]*entity.Donation, 0, len(s.donations))
		for _, donation := range s.donations {
			if user, found := s.users[donation.UserID]; found {
				donation.User = user.Sanitized()
			}
			donations = append(donations, &donation)
		}
	})

	return newestFirst(donations), nil
}

func (r *donationRepository) UpdateStatus(_ context.Context, id uuid.UUID, status entity.DonationStatus) (*entity.Donation, error) {
	var (
		donation entity.Donation
		found    bool
	)
	r.write(func(s *Store) {
		if donation, found = s.donations[id]; !found {
			return
		}
		donation.Status = status
		donation.UpdatedAt = s.tick()
		s.donations[id] = donation
	})
	if !found {
		return nil, repository.ErrDonationNotFound
	}

	return &donation, nil
}

func (r *donationRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.write(func(s *Store) {
		for id, donation := range s.donations {
			if donation.UserID == userID {
				delete(s.donations, id)
			}
		}
	})

	return nil
}

func (r *donationRepository) Count(_ context.Context) (int64, error) {
	var count int
	r.read(func(s *Store) {
		count = len(s.donations)
	})

	return int64(count), nil
}

func (r *donationRepository) CountByStatus(_ context.Context, status entity.DonationStatus) (int64, error) {
	var count int64
	r.read(func(s *Store) {
		for _, donation := range s.donations {
			if donation.Status == status {
				count++
			}
		}
	})

	return count, nil
}

func newestFirst(donations []*entity.Donation) []*entity.Donation {
	if donations == nil {
		donations = []*entity.Donation{}
	}
	slices.SortFunc(donations, func(a, b *entity.Donation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return donations
}
