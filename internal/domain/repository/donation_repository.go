package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrDonationNotFound is returned when a donation id does not exist.
var ErrDonationNotFound = errors.New("donation not found")

// DonationRepository manages donation requests.
type DonationRepository interface {
	Create(ctx context.Context, donation *entity.Donation) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error)

	// ListByUser returns the user's donations, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Donation, error)

	// ListWithUsers returns all donations with Donation.User populated.
	ListWithUsers(ctx context.Context) ([]*entity.Donation, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DonationStatus) (*entity.Donation, error)
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.DonationStatus) (int64, error)
}
