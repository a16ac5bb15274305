package service

import (
	"accounts/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the identity claims embedded in an access token.
type Claims struct {
	AccountID uuid.UUID       `json:"accountId"`
	Email     string          `json:"email"`
	Location  entity.Location `json:"location"`
	jwt.RegisteredClaims
}

// NewClaims builds the claim set for an account.
func NewClaims(account *entity.Account) Claims {
	return Claims{
		AccountID: account.ID,
		Email:     account.Email,
		Location:  account.Location,
	}
}

// TokenService defines the interface for issuing and verifying access tokens.
type TokenService interface {
	// Issue signs a token for the given claims. Issued-at, expiry and subject are filled in
	// by the service; the completed claims are returned alongside the token.
	Issue(claims Claims) (string, *Claims, error)

	// Verify checks signature and expiry and returns the embedded claims.
	// It fails with domainerrors.ErrInvalidToken or domainerrors.ErrExpiredToken.
	Verify(token string) (*Claims, error)
}
