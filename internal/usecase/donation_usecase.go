package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateDonationInput describes an item a user offers to donate.
type CreateDonationInput struct {
	ItemName        string
	ItemDescription string
}

// DonationUsecase covers donation requests from users and their review by admins.
type DonationUsecase interface {
	CreateDonation(ctx context.Context, userID uuid.UUID, input *CreateDonationInput) (*entity.Donation, error)
	ListMyDonations(ctx context.Context, userID uuid.UUID) ([]*entity.Donation, error)

	ListAllDonations(ctx context.Context) ([]*entity.Donation, error)
	UpdateStatus(ctx context.Context, actorID, donationID uuid.UUID, status entity.DonationStatus) (*entity.Donation, error)
}
