package context

import (
	"context"

	"accounts/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyClaims is the key for storing verified token claims.
const KeyClaims ContextKey = "claims"

// SetClaims stores verified claims in echo.Context.
func SetClaims(c echo.Context, claims *service.Claims) {
	c.Set(string(KeyClaims), claims)
}

// GetClaims returns the claims placed by the auth middleware, or nil.
func GetClaims(c echo.Context) *service.Claims {
	claims, _ := c.Get(string(KeyClaims)).(*service.Claims)

	return claims
}

// WithClaims returns a new context carrying the verified claims.
func WithClaims(ctx context.Context, claims *service.Claims) context.Context {
	return context.WithValue(ctx, KeyClaims, claims)
}

// ClaimsFromContext extracts verified claims from context.Context.
func ClaimsFromContext(ctx context.Context) (*service.Claims, bool) {
	claims, ok := ctx.Value(KeyClaims).(*service.Claims)

	return claims, ok && claims != nil
}
