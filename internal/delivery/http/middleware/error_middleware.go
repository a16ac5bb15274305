package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"accounts/config"
	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/delivery/http/response"
	domainerrors "accounts/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		debug:  cfg.Env.Debug,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := m.render(err, c)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		m.log(c).Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) render(err error, c echo.Context) (int, response.ErrorBody) {
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPCode()
		body := response.ErrorBody{
			Message: appErr.Message(),
			Code:    appErr.ErrorCode(),
		}

		if status >= http.StatusInternalServerError {
			m.log(c).Error("Request failed", slog.String("error", err.Error()), slog.String("code", body.Code))
			m.attachStack(&body, err)
		} else if errors.Is(err, domainerrors.ErrValidationFailed) {
			body.Details = appErr.Details()
		}

		return status, body
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		// Known paths hit with the wrong method are reported like any unmatched route.
		if httpErr.Code == http.StatusMethodNotAllowed {
			return http.StatusNotFound, response.ErrorBody{Message: http.StatusText(http.StatusNotFound)}
		}

		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok && msg != "" {
			message = msg
		}

		return httpErr.Code, response.ErrorBody{Message: message}
	}

	m.log(c).Error("Unhandled error",
		slog.String("error", err.Error()),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	body := response.ErrorBody{
		Message: domainerrors.ErrInternalError.Message(),
		Code:    domainerrors.ErrInternalError.ErrorCode(),
	}
	m.attachStack(&body, err)

	return http.StatusInternalServerError, body
}

func (m *ErrorMiddleware) attachStack(body *response.ErrorBody, err error) {
	if m.debug {
		body.Stack = fmt.Sprintf("%+v", err)
	}
}

func (m *ErrorMiddleware) log(c echo.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
}
