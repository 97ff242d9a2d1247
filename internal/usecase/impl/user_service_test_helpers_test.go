package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"storefront/internal/domain/repository"
	mockRepo "storefront/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// expectTransaction makes txManager run its callback against factory and return what the callback returns.
func expectTransaction(txManager *mockRepo.MockTransactionManager, factory repository.RepositoryFactory) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(factory)
		})
}

// newTxFactory returns a factory whose user and donation repositories are the given mocks.
func newTxFactory(t *testing.T, userRepo *mockRepo.MockUserRepository, donationRepo *mockRepo.MockDonationRepository) *mockRepo.MockRepositoryFactory {
	factory := mockRepo.NewMockRepositoryFactory(t)
	if userRepo != nil {
		factory.EXPECT().NewUserRepository().Return(userRepo).Maybe()
	}
	if donationRepo != nil {
		factory.EXPECT().NewDonationRepository().Return(donationRepo).Maybe()
	}

	return factory
}
