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

type adminService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	donationRepo repository.DonationRepository
	hasher       service.PasswordHasher
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	ProductRepo  repository.ProductRepository
	DonationRepo repository.DonationRepository
	Hasher       service.PasswordHasher
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewAdminService creates the admin console usecase.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		productRepo:  params.ProductRepo,
		donationRepo: params.DonationRepo,
		hasher:       params.Hasher,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *adminService) ListUsers(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	sanitized := make([]*entity.User, 0, len(users))
	for _, user := range users {
		sanitized = append(sanitized, user.Sanitized())
	}

	return sanitized, nil
}

func (srv *adminService) DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		target, err := userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			return domainerrors.ErrUserNotFound.WrapMessage("delete target not found")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find user by id")
		}

		switch target.Privilege {
		case entity.PrivilegeElevated:
			return domainerrors.ErrCannotDeleteAdmin.WrapMessage("refusing to delete an elevated account")
		case entity.PrivilegeStandard:
		default:
			return errors.Errorf("user %s has unknown privilege %s", target.ID, target.Privilege)
		}

		if err := repoFactory.NewDonationRepository().DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete donations")
		}

		return userRepo.Delete(ctx, userID)
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to delete user", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.Any("actorID", actorID), slog.Any("userID", userID))
	publishAudit(ctx, srv.publisher, srv.log(ctx), &service.AuditEvent{
		Type:      service.AuditUserDeleted,
		ActorID:   actorID.String(),
		SubjectID: userID.String(),
	})

	return nil
}

func (srv *adminService) Stats(ctx context.Context) (*entity.Stats, error) {
	var (
		stats entity.Stats
		err   error
	)

	if stats.UserCount, err = srv.userRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count users")
	}
	if stats.ProductCount, err = srv.productRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count products")
	}
	if stats.DonationCount, err = srv.donationRepo.Count(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to count donations")
	}
	if stats.PendingDonationCount, err = srv.donationRepo.CountByStatus(ctx, entity.DonationStatusPending); err != nil {
		return nil, errors.Wrap(err, "failed to count pending donations")
	}

	return &stats, nil
}

func (srv *adminService) EnsureAdmin(ctx context.Context, input *usecase.RegisterUserInput) (*entity.User, error) {
	email := entity.NormalizeEmail(input.Email)

	existing, err := srv.userRepo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		name := strings.TrimSpace(input.Name)
		if name == "" {
			name = "Admin"
		}

		admin, err := registerAccount(ctx, srv.txManager, srv.hasher, &entity.User{
			Name:      name,
			Email:     email,
			Privilege: entity.PrivilegeElevated,
		}, input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to register admin")
		}
		srv.log(ctx).Info("Admin registered", slog.Any("userID", admin.ID))

		return admin.Sanitized(), nil
	case err != nil:
		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if existing.Privilege.IsElevated() {
		return existing.Sanitized(), nil
	}

	existing.Privilege = entity.PrivilegeElevated
	if err := srv.userRepo.Update(ctx, existing); err != nil {
		return nil, errors.Wrap(err, "failed to promote user")
	}
	srv.log(ctx).Info("User promoted to admin", slog.Any("userID", existing.ID))

	return existing.Sanitized(), nil
}
