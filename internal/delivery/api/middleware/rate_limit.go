package middleware

import (
	"net/http"
	"time"

	"storefront/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const defaultRateLimitExpiry = 3 * time.Minute

// NewCredentialRateLimiter throttles the public credential endpoints per client IP.
// A nil or disabled config lets every request through.
func NewCredentialRateLimiter(cfg *config.RateLimitConfig) echo.MiddlewareFunc {
	if cfg == nil || !cfg.Enabled || cfg.RequestsPerMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	expiresIn := cfg.ExpiresIn
	if expiresIn <= 0 {
		expiresIn = defaultRateLimitExpiry
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(cfg.RequestsPerMinute / 60),
		Burst:     max(cfg.Burst, 1),
		ExpiresIn: expiresIn,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			c.Response().Header().Set("Retry-After", "60")

			return echomiddleware.ErrRateLimitExceeded
		},
	})
}
