package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "accounts/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	m := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

	run := func(header string) (string, string) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set(deliverycontext.HeaderXRequestID, header)
		}
		rec := httptest.NewRecorder()
		c := echo.New().NewContext(req, rec)

		var fromCtx string
		err := m.Process(func(c echo.Context) error {
			fromCtx = deliverycontext.GetRequestIDFromContext(c.Request().Context())
			assert.NotNil(t, deliverycontext.GetLoggerOrDefault(c.Request().Context(), nil))

			return nil
		})(c)
		require.NoError(t, err)

		return rec.Header().Get(deliverycontext.HeaderXRequestID), fromCtx
	}

	t.Run("keeps client id", func(t *testing.T) {
		header, ctxID := run("client-123")
		assert.Equal(t, "client-123", header)
		assert.Equal(t, "client-123", ctxID)
	})

	t.Run("generates id when absent", func(t *testing.T) {
		header, ctxID := run("")
		_, err := uuid.Parse(header)
		assert.NoError(t, err)
		assert.Equal(t, header, ctxID)
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		header, _ := run(strings.Repeat("x", maxRequestIDLength+1))
		_, err := uuid.Parse(header)
		assert.NoError(t, err)
	})
}
