package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	domainerrors "storefront/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)
	mw := NewRequestIDMiddleware(logger)
	e := echo.New()

	tests := []struct {
		name     string
		incoming string
	}{
		{name: "generated"},
		{name: "propagated", incoming: "client-id"},
		{name: "control characters replaced", incoming: "bad\tid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.incoming != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.incoming)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			var seen string
			err := mw.Process(func(c echo.Context) error {
				seen = deliverycontext.GetRequestIDFromContext(c.Request().Context())

				return nil
			})(c)
			require.NoError(t, err)

			header := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.NotEmpty(t, header)
			assert.Equal(t, header, seen)
			if validRequestID(tt.incoming) {
				assert.Equal(t, tt.incoming, header)
			} else {
				assert.NotEqual(t, tt.incoming, header)
			}
		})
	}
}

func TestLoggerMiddleware_LogsErrorStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	cfg := &config.Config{}
	cfg.Env.Debug = true

	mw := NewLoggerMiddleware(logger, cfg)
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/admin/users", nil), httptest.NewRecorder())

	err := mw.Handle(func(echo.Context) error {
		return domainerrors.ErrForbidden
	})(c)

	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	assert.Contains(t, buf.String(), `"status":403`)
	assert.Contains(t, buf.String(), `"level":"WARN"`)
}

func TestLoggerMiddleware_SilentWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	mw := NewLoggerMiddleware(logger, &config.Config{})
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	require.NoError(t, mw.Handle(func(echo.Context) error { return nil })(c))
	assert.Empty(t, buf.String())
}
