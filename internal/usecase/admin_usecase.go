package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase backs the admin console. Every caller is already known to be elevated.
type AdminUsecase interface {
	ListUsers(ctx context.Context) ([]*entity.User, error)

	// DeleteUser removes a standard user together with their donations.
	// Elevated accounts cannot be deleted.
	DeleteUser(ctx context.Context, actorID, userID uuid.UUID) error

	Stats(ctx context.Context) (*entity.Stats, error)

	// EnsureAdmin registers an elevated account, or promotes the existing
	// account with that email. Used by the seeder.
	EnsureAdmin(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
}
