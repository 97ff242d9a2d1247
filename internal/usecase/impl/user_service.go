// Package impl contains the implementation of the application's business logic.
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

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	publisher    service.EventPublisher
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		publisher:    params.Publisher,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RegisterUser creates a standard account and signs the caller in.
func (srv *userService) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	newUser, err := registerAccount(ctx, srv.txManager, srv.hasher, &entity.User{
		Name:      strings.TrimSpace(input.Name),
		Email:     email,
		Privilege: entity.PrivilegeStandard,
	}, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to register user")
	}

	token, err := srv.tokenService.Issue(newUser.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	publishAudit(ctx, srv.publisher, srv.log(ctx), &service.AuditEvent{
		Type:      service.AuditUserRegistered,
		ActorID:   newUser.ID.String(),
		SubjectID: newUser.ID.String(),
	})
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return &usecase.AuthOutput{User: newUser.Sanitized(), Token: token}, nil
}

// registerAccount hashes the password and inserts user unless the email is taken.
func registerAccount(
	ctx context.Context,
	txManager repository.TransactionManager,
	hasher service.PasswordHasher,
	user *entity.User,
	password string,
) (*entity.User, error) {
	if err := hasher.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	// bcrypt is CPU-bound, keep it outside the transaction.
	hashedPassword, err := hasher.Hash(password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}
	user.PasswordHash = hashedPassword

	err = txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, findErr := userRepo.FindByEmail(ctx, user.Email)
		if findErr == nil {
			return domainerrors.ErrDuplicateIdentity.WrapMessage("email already registered")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to look up email")
		}

		// The unique index still rejects a concurrent insert of the same email.
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials. Unknown email and wrong password are indistinguishable to the caller.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.loadLoginUser(ctx, email)
	if err != nil {
		srv.log(ctx).Error("Failed to load login user", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load login user from primary")
	}

	// A missing user still pays for one comparison against the dummy hash.
	hash := ""
	if user != nil {
		hash = user.PasswordHash
	}
	if !srv.hasher.Check(input.Password, hash) || user == nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user.Sanitized(), Token: token}, nil
}

// loadLoginUser reads from the primary so a fresh registration can log in at once.
// A nil user with a nil error means the email is unknown.
func (srv *userService) loadLoginUser(ctx context.Context, email string) (*entity.User, error) {
	var user *entity.User

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, findErr := repoFactory.NewUserRepository().FindByEmail(ctx, email)
		if errors.Is(findErr, repository.ErrUserNotFound) {
			return nil
		}
		if findErr != nil {
			return errors.Wrap(findErr, "failed to find user by email")
		}
		user = found

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateProfile applies a partial update to the caller's account and re-issues a token.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*usecase.AuthOutput, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("profile owner vanished")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user by id")
	}

	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			user.Name = name
		}
	}
	if input.Email != nil {
		if email := entity.NormalizeEmail(*input.Email); email != "" {
			user.Email = email
		}
	}
	if input.Password != nil && *input.Password != "" {
		if err := srv.hasher.ValidatePasswordStrength(*input.Password); err != nil {
			return nil, err
		}
		hashedPassword, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(err, "failed to hash password")
		}
		user.PasswordHash = hashedPassword
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound.WrapMessage("profile owner vanished")
		}

		return nil, errors.Wrap(err, "failed to update profile")
	}

	token, err := srv.tokenService.Issue(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}
	srv.log(ctx).Debug("Profile updated", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user.Sanitized(), Token: token}, nil
}
