package context

import (
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// KeyIdentity is the echo.Context key of the authenticated user.
const KeyIdentity ContextKey = "identity"

// SetIdentity attaches the authenticated user, hash stripped, to the request.
func SetIdentity(c echo.Context, user *entity.User) {
	c.Set(string(KeyIdentity), user.Sanitized())
}

// GetIdentity returns the authenticated user, or false when authentication has not run.
func GetIdentity(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(string(KeyIdentity)).(*entity.User)
	if !ok || user == nil {
		return nil, false
	}

	return user, true
}

// MustGetIdentity returns the authenticated user and panics when it is absent.
// Only handlers mounted behind the authentication middleware may call it.
func MustGetIdentity(c echo.Context) *entity.User {
	user, ok := GetIdentity(c)
	if !ok {
		panic("identity missing from request context: route mounted without authentication")
	}

	return user
}
