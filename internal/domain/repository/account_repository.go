// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"accounts/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository is the Account Store: in-memory, PostgreSQL and MongoDB implementations
// all satisfy it, so the use case layer never knows which one it is talking to.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its normalized email address.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// Create persists a new account. Implementations must enforce email uniqueness atomically
	// and report a violation as domainerrors.ErrDuplicateEmail.
	Create(ctx context.Context, account *entity.Account) error

	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
