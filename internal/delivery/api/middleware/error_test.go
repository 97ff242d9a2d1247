package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		method      string
		path        string
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "app error keeps its status and message",
			err:         domainerrors.ErrDuplicateIdentity.WrapMessage("email taken"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "User already exists",
		},
		{
			name:        "wrapped app error",
			err:         errors.Wrap(domainerrors.ErrForbidden, "gate"),
			wantStatus:  http.StatusForbidden,
			wantMessage: "Not authorized as an admin",
		},
		{
			name:        "unmatched route",
			err:         echo.ErrNotFound,
			path:        "/nowhere",
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not Found - /nowhere",
		},
		{
			name:        "method not allowed reads as not found",
			err:         echo.ErrMethodNotAllowed,
			path:        "/api/products",
			wantStatus:  http.StatusNotFound,
			wantMessage: "Not Found - /api/products",
		},
		{
			name:        "rate limited",
			err:         echomiddleware.ErrRateLimitExceeded,
			wantStatus:  http.StatusTooManyRequests,
			wantMessage: "Too many requests, please try again later",
		},
		{
			name:        "echo client error",
			err:         echo.NewHTTPError(http.StatusBadRequest, "Invalid request body"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid request body",
		},
		{
			name:        "unknown error is generic",
			err:         errors.New("dial tcp: connection refused"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mw := NewErrorMiddleware(slog.New(slog.DiscardHandler), &config.Config{})
			path := tt.path
			if path == "" {
				path = "/"
			}

			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, path, nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw.HandleHTTPError(tt.err, c)

			assert.Equal(t, tt.wantStatus, rec.Code)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body.Message)
			assert.NotContains(t, body.Message, "connection refused")
		})
	}
}

func TestErrorMiddleware_StackOmittedInProduction(t *testing.T) {
	err := errors.Wrap(domainerrors.ErrInvalidCredentials, "login")

	for _, env := range []string{"development", config.EnvProduction} {
		t.Run(env, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Env.Env = env
			mw := NewErrorMiddleware(slog.New(slog.DiscardHandler), cfg)

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/users/login", nil), rec)

			mw.HandleHTTPError(err, c)

			var body response.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Invalid email or password", body.Message)
			if env == config.EnvProduction {
				assert.Empty(t, body.Stack)
			} else {
				assert.NotEmpty(t, body.Stack)
			}
		})
	}
}

func TestErrorMiddleware_CommittedResponse(t *testing.T) {
	mw := NewErrorMiddleware(slog.New(slog.DiscardHandler), &config.Config{})

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "done"))

	mw.HandleHTTPError(errors.New("late"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "done", rec.Body.String())
}

func TestCredentialRateLimiter(t *testing.T) {
	t.Run("disabled passes through", func(t *testing.T) {
		mw := NewCredentialRateLimiter(&config.RateLimitConfig{Enabled: false})
		e := echo.New()

		for range 5 {
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
			assert.NoError(t, mw(func(echo.Context) error { return nil })(c))
		}
	})

	t.Run("burst exhausted", func(t *testing.T) {
		mw := NewCredentialRateLimiter(&config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1})
		e := echo.New()
		next := func(echo.Context) error { return nil }

		c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), httptest.NewRecorder())
		require.NoError(t, mw(next)(c))

		rec := httptest.NewRecorder()
		c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
		err := mw(next)(c)
		assert.ErrorIs(t, err, echomiddleware.ErrRateLimitExceeded)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})
}
