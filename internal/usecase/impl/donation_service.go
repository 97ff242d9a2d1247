package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type donationService struct {
	donationRepo repository.DonationRepository
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// DonationServiceParams holds dependencies for DonationService, injected by Fx.
type DonationServiceParams struct {
	fx.In

	DonationRepo repository.DonationRepository
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewDonationService creates the donation usecase.
func NewDonationService(params DonationServiceParams) usecase.DonationUsecase {
	return &donationService{
		donationRepo: params.DonationRepo,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *donationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *donationService) CreateDonation(ctx context.Context, userID uuid.UUID, input *usecase.CreateDonationInput) (*entity.Donation, error) {
	donation := &entity.Donation{
		UserID:          userID,
		ItemName:        strings.TrimSpace(input.ItemName),
		ItemDescription: strings.TrimSpace(input.ItemDescription),
		Status:          entity.DonationStatusPending,
	}

	if err := srv.donationRepo.Create(ctx, donation); err != nil {
		return nil, errors.Wrap(err, "failed to create donation")
	}
	srv.log(ctx).Info("Donation created", slog.Any("donationID", donation.ID), slog.Any("userID", userID))

	return donation, nil
}

func (srv *donationService) ListMyDonations(ctx context.Context, userID uuid.UUID) ([]*entity.Donation, error) {
	donations, err := srv.donationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list donations")
	}

	return donations, nil
}

func (srv *donationService) ListAllDonations(ctx context.Context) ([]*entity.Donation, error) {
	donations, err := srv.donationRepo.ListWithUsers(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list donations")
	}

	return donations, nil
}

func (srv *donationService) UpdateStatus(ctx context.Context, actorID, donationID uuid.UUID, status entity.DonationStatus) (*entity.Donation, error) {
	if !status.IsValid() {
		return nil, domainerrors.ErrInvalidDonationStatus.WrapMessage(string(status))
	}

	donation, err := srv.donationRepo.UpdateStatus(ctx, donationID, status)
	if errors.Is(err, repository.ErrDonationNotFound) {
		return nil, domainerrors.ErrDonationNotFound.WrapMessage(donationID.String())
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to update donation status")
	}

	publishAudit(ctx, srv.publisher, srv.log(ctx), &service.AuditEvent{
		Type:       service.AuditDonationStatusChanged,
		ActorID:    actorID.String(),
		SubjectID:  donationID.String(),
		Attributes: map[string]string{"status": status.String()},
	})

	return donation, nil
}
