package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"storefront/config"
	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/delivery/api/response"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/errors"

	"github.com/labstack/echo/v4"
)

const tooManyRequestsMessage = "Too many requests, please try again later"

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger     *slog.Logger
	production bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:     logger,
		production: cfg.IsProduction(),
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, message := m.resolve(err, c)

	body := response.ErrorResponse{Message: message}
	if !m.production {
		body.Stack = errors.StackTrace(err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)

		return
	}
	_ = c.JSON(status, body)
}

func (m *ErrorMiddleware) resolve(err error, c echo.Context) (int, string) {
	// AppError carries its own status and client-safe message
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(err, c)
		}

		return appErr.HTTPCode(), appErr.Message()
	}

	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		switch httpErr.Code {
		case http.StatusNotFound, http.StatusMethodNotAllowed:
			// Unmatched routes, whatever the method
			return http.StatusNotFound, "Not Found - " + c.Request().URL.Path
		case http.StatusTooManyRequests:
			return http.StatusTooManyRequests, tooManyRequestsMessage
		}

		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnhandled(err, c)

			return httpErr.Code, domainerrors.ErrInternal.Message()
		}

		return httpErr.Code, fmt.Sprint(httpErr.Message)
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	m.logUnhandled(err, c)

	return http.StatusInternalServerError, domainerrors.ErrInternal.Message()
}

func (m *ErrorMiddleware) logUnhandled(err error, c echo.Context) {
	deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Error("Unhandled error",
		slog.Any("error", err),
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
