package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	deliverycontext "accounts/internal/delivery/context"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/service"
	mockservice "accounts/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "  Bearer   abc  ", token: "abc", ok: true},
		{header: "", ok: false},
		{header: "Bearer", ok: false},
		{header: "Bearer   ", ok: false},
		{header: "Basic dXNlcjpwYXNz", ok: false},
		{header: "abc.def.ghi", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := bearerToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	newContext := func(header string) echo.Context {
		req := httptest.NewRequest(http.MethodGet, "/api/users/me", nil)
		if header != "" {
			req.Header.Set(echo.HeaderAuthorization, header)
		}

		return echo.New().NewContext(req, httptest.NewRecorder())
	}

	t.Run("missing header", func(t *testing.T) {
		m := NewAuthMiddleware(mockservice.NewMockTokenService(t))
		called := false

		err := m.Authenticate(func(echo.Context) error { called = true; return nil })(newContext(""))
		assert.True(t, errors.Is(err, domainerrors.ErrMissingToken))
		assert.False(t, called)
	})

	for _, verifyErr := range []error{domainerrors.ErrInvalidToken, domainerrors.ErrExpiredToken} {
		t.Run(verifyErr.(domainerrors.AppError).ErrorCode(), func(t *testing.T) {
			tokens := mockservice.NewMockTokenService(t)
			tokens.EXPECT().Verify("bad").Return(nil, verifyErr)

			err := NewAuthMiddleware(tokens).Authenticate(func(echo.Context) error {
				t.Fatal("handler must not run")

				return nil
			})(newContext("Bearer bad"))
			assert.True(t, errors.Is(err, verifyErr))
		})
	}

	t.Run("valid token exposes claims", func(t *testing.T) {
		claims := &service.Claims{AccountID: uuid.New(), Email: "a@b.com"}
		tokens := mockservice.NewMockTokenService(t)
		tokens.EXPECT().Verify("good").Return(claims, nil)

		c := newContext("Bearer good")
		err := NewAuthMiddleware(tokens).Authenticate(func(c echo.Context) error {
			assert.Equal(t, claims, deliverycontext.GetClaims(c))

			fromCtx, ok := deliverycontext.ClaimsFromContext(c.Request().Context())
			require.True(t, ok)
			assert.Equal(t, claims, fromCtx)

			return nil
		})(c)
		require.NoError(t, err)
	})
}
