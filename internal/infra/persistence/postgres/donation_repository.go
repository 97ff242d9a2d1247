package postgres

import (
	"context"
	"time"

	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type donationRepository struct {
	db *gorm.DB
}

// NewDonationRepository creates a GORM-backed DonationRepository.
func NewDonationRepository(db *gorm.DB) repository.DonationRepository {
	return &donationRepository{db: db}
}

func (repo *donationRepository) Create(ctx context.Context, donation *entity.Donation) error {
	if donation.ID == uuid.Nil {
		donation.ID = uuid.New()
	}
	donationM := fromDonationDomain(donation)

	if err := repo.db.WithContext(ctx).Omit("User").Create(donationM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("donation owner does not exist")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create donation")
	}

	donation.CreatedAt = donationM.CreatedAt
	donation.UpdatedAt = donationM.UpdatedAt

	return nil
}

func (repo *donationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Donation, error) {
	var donationM model.DonationModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&donationM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDonationNotFound
		}

		return nil, errors.Wrap(err, "failed to find donation by id")
	}

	return toDonationDomain(&donationM), nil
}

func (repo *donationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Donation, error) {
	var models []model.DonationModel
	err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list donations by user")
	}

	return toDonationDomains(models), nil
}

func (repo *donationRepository) ListWithUsers(ctx context.Context) ([]*entity.Donation, error) {
	var models []model.DonationModel
	err := repo.db.WithContext(ctx).
		Preload("User").
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list donations")
	}

	return toDonationDomains(models), nil
}

func (repo *donationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.DonationStatus) (*entity.Donation, error) {
	result := repo.db.WithContext(ctx).Model(&model.DonationModel{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": string(status), "updated_at": time.Now()})
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to update donation status")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrDonationNotFound
	}

	return repo.FindByID(ctx, id)
}

func (repo *donationRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&model.DonationModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete donations")
	}

	return nil
}

func (repo *donationRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.DonationModel{}).Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count donations")
	}

	return count, nil
}

func (repo *donationRepository) CountByStatus(ctx context.Context, status entity.DonationStatus) (int64, error) {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.DonationModel{}).
		Where("status = ?", string(status)).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count donations by status")
	}

	return count, nil
}

func toDonationDomains(models []model.DonationModel) []*entity.Donation {
	donations := make([]*entity.Donation, 0, len(models))
	for i := range models {
		donations = append(donations, toDonationDomain(&models[i]))
	}

	return donations
}

func toDonationDomain(data *model.DonationModel) *entity.Donation {
	donation := &entity.Donation{
		ID:              data.ID,
		UserID:          data.UserID,
		ItemName:        data.ItemName,
		ItemDescription: data.ItemDescription,
		Status:          entity.DonationStatus(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
	if data.User != nil {
		donation.User = toUserDomain(data.User).Sanitized()
	}

	return donation
}

func fromDonationDomain(data *entity.Donation) *model.DonationModel {
	return &model.DonationModel{
		ID:              data.ID,
		UserID:          data.UserID,
		ItemName:        data.ItemName,
		ItemDescription: data.ItemDescription,
		Status:          string(data.Status),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
