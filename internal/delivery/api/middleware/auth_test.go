package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	mockRepo "storefront/internal/mocks/repository"
	mockSvc "storefront/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthContext(header string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	userID := uuid.New()
	user := &entity.User{ID: userID, Name: "Alice", Email: "alice@example.com", PasswordHash: "hash", Privilege: entity.PrivilegeStandard}

	tests := []struct {
		name       string
		header     string
		setupMocks func(tokenSvc *mockSvc.MockTokenService, userRepo *mockRepo.MockUserRepository)
		wantErr    *domainerrors.BaseError
		wantNext   bool
	}{
		{
			name:    "missing header",
			wantErr: domainerrors.ErrMissingToken,
		},
		{
			name:    "non bearer scheme",
			header:  "Basic dXNlcjpwYXNz",
			wantErr: domainerrors.ErrMissingToken,
		},
		{
			name:    "empty bearer",
			header:  "Bearer ",
			wantErr: domainerrors.ErrMissingToken,
		},
		{
			name:   "invalid token",
			header: "Bearer bad",
			setupMocks: func(tokenSvc *mockSvc.MockTokenService, _ *mockRepo.MockUserRepository) {
				tokenSvc.EXPECT().Verify("bad").Return(uuid.Nil, service.ErrInvalidToken)
			},
			wantErr: domainerrors.ErrUnauthorized,
		},
		{
			name:   "expired token",
			header: "Bearer old",
			setupMocks: func(tokenSvc *mockSvc.MockTokenService, _ *mockRepo.MockUserRepository) {
				tokenSvc.EXPECT().Verify("old").Return(uuid.Nil, service.ErrExpiredToken)
			},
			wantErr: domainerrors.ErrUnauthorized,
		},
		{
			name:   "unknown subject",
			header: "Bearer good",
			setupMocks: func(tokenSvc *mockSvc.MockTokenService, userRepo *mockRepo.MockUserRepository) {
				tokenSvc.EXPECT().Verify("good").Return(userID, nil)
				userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, repository.ErrUserNotFound)
			},
			wantErr: domainerrors.ErrUnauthorized,
		},
		{
			name:   "success with lowercase scheme",
			header: "bearer good",
			setupMocks: func(tokenSvc *mockSvc.MockTokenService, userRepo *mockRepo.MockUserRepository) {
				tokenSvc.EXPECT().Verify("good").Return(userID, nil)
				userRepo.EXPECT().FindByID(mock.Anything, userID).Return(user, nil)
			},
			wantNext: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokenSvc := mockSvc.NewMockTokenService(t)
			userRepo := mockRepo.NewMockUserRepository(t)
			if tt.setupMocks != nil {
				tt.setupMocks(tokenSvc, userRepo)
			}

			mw := NewAuthMiddleware(tokenSvc, userRepo, slog.New(slog.DiscardHandler))
			c, _ := newAuthContext(tt.header)

			called := false
			err := mw.Authenticate(func(c echo.Context) error {
				called = true
				identity := deliverycontext.MustGetIdentity(c)
				assert.Equal(t, userID, identity.ID)
				assert.Empty(t, identity.PasswordHash)

				return nil
			})(c)

			assert.Equal(t, tt.wantNext, called)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAuthMiddleware_Authenticate_StoreFailure(t *testing.T) {
	userID := uuid.New()
	tokenSvc := mockSvc.NewMockTokenService(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	tokenSvc.EXPECT().Verify("good").Return(userID, nil)
	userRepo.EXPECT().FindByID(mock.Anything, userID).Return(nil, errors.New("connection refused"))

	mw := NewAuthMiddleware(tokenSvc, userRepo, slog.New(slog.DiscardHandler))
	c, _ := newAuthContext("Bearer good")

	err := mw.Authenticate(func(echo.Context) error {
		t.Fatal("next must not run")

		return nil
	})(c)

	require.Error(t, err)
	_, isAppErr := errors.AsType[domainerrors.AppError](err)
	assert.False(t, isAppErr)
}

func TestAuthMiddleware_RequireElevated(t *testing.T) {
	mw := NewAuthMiddleware(nil, nil, slog.New(slog.DiscardHandler))

	tests := []struct {
		name      string
		privilege entity.Privilege
		wantNext  bool
		wantErr   error
	}{
		{name: "elevated passes", privilege: entity.PrivilegeElevated, wantNext: true},
		{name: "standard is forbidden", privilege: entity.PrivilegeStandard, wantErr: domainerrors.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAuthContext("")
			deliverycontext.SetIdentity(c, &entity.User{ID: uuid.New(), Privilege: tt.privilege})

			called := false
			err := mw.RequireElevated(func(echo.Context) error {
				called = true

				return nil
			})(c)

			assert.Equal(t, tt.wantNext, called)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	t.Run("unknown privilege fails closed", func(t *testing.T) {
		c, _ := newAuthContext("")
		deliverycontext.SetIdentity(c, &entity.User{ID: uuid.New(), Privilege: entity.Privilege(99)})

		err := mw.RequireElevated(func(echo.Context) error {
			t.Fatal("next must not run")

			return nil
		})(c)

		require.Error(t, err)
		_, isAppErr := errors.AsType[domainerrors.AppError](err)
		assert.False(t, isAppErr)
	})

	t.Run("missing identity panics", func(t *testing.T) {
		c, _ := newAuthContext("")

		assert.Panics(t, func() {
			_ = mw.RequireElevated(func(echo.Context) error { return nil })(c)
		})
	})
}
