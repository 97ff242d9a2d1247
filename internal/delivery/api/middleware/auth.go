package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/errors"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

const bearerScheme = "bearer"

// AuthMiddleware resolves bearer tokens to identities and gates elevated routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo, logger: logger}
}

// Authenticate verifies the bearer token, loads its subject and attaches the
// identity to the request. It never writes to the store.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		tokenString, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			metrics.RecordAuthentication(metrics.OutcomeMissingToken)

			return domainerrors.ErrMissingToken.WrapMessage("bearer token missing")
		}

		userID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			outcome := metrics.OutcomeInvalidToken
			if errors.Is(err, service.ErrExpiredToken) {
				outcome = metrics.OutcomeExpiredToken
			}
			metrics.RecordAuthentication(outcome)

			return errors.Wrap(domainerrors.ErrUnauthorized, err.Error())
		}

		user, err := m.userRepo.FindByID(ctx, userID)
		if errors.Is(err, repository.ErrUserNotFound) {
			metrics.RecordAuthentication(metrics.OutcomeUnknownSubject)

			return domainerrors.ErrUnauthorized.WrapMessage("token subject no longer exists")
		}
		if err != nil {
			return errors.Wrap(err, "failed to resolve token subject")
		}

		metrics.RecordAuthentication(metrics.OutcomeSuccess)
		deliverycontext.SetIdentity(c, user)

		reqLogger := deliverycontext.GetLoggerOrDefault(ctx, m.logger).With(slog.String("user_id", user.ID.String()))
		c.SetRequest(c.Request().WithContext(deliverycontext.WithLogger(ctx, reqLogger)))

		return next(c)
	}
}

// RequireElevated admits only elevated identities. It must be chained after
// Authenticate; a missing identity is a routing bug and panics.
func (m *AuthMiddleware) RequireElevated(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user := deliverycontext.MustGetIdentity(c)

		switch user.Privilege {
		case entity.PrivilegeElevated:
			return next(c)
		case entity.PrivilegeStandard:
			metrics.RecordAuthorizationDenied()

			return domainerrors.ErrForbidden.WrapMessage("elevated privilege required")
		default:
			return errors.Errorf("user %s has unknown privilege %s", user.ID, user.Privilege)
		}
	}
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, bearerScheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
