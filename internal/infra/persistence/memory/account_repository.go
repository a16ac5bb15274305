// Package memory contains a process-local AccountRepository used for development and tests.
package memory

import (
	"context"
	"sync"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// accountRepository keeps accounts in two maps guarded by one mutex, so the
// email uniqueness check and the insert happen atomically.
type accountRepository struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*entity.Account
	byEmail map[string]uuid.UUID
}

// NewAccountRepository returns an empty in-memory store.
func NewAccountRepository() repository.AccountRepository {
	return &accountRepository{
		byID:    make(map[uuid.UUID]*entity.Account),
		byEmail: make(map[string]uuid.UUID),
	}
}

// FindByID retrieves a copy of the account with the given ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	account, ok := repo.byID[id]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return clone(account), nil
}

// FindByEmail retrieves a copy of the account registered under the normalized email.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	repo.mu.RLock()
	defer repo.mu.RUnlock()

	id, ok := repo.byEmail[email]
	if !ok {
		return nil, repository.ErrAccountNotFound
	}

	return clone(repo.byID[id]), nil
}

// Create stores the account unless its email or ID is already taken.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	repo.mu.Lock()
	defer repo.mu.Unlock()

	if _, taken := repo.byEmail[account.Email]; taken {
		return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
	}
	if _, taken := repo.byID[account.ID]; taken {
		return domainerrors.NewDatabaseExecuteError(errors.Errorf("duplicate id %s", account.ID), "failed to create account")
	}

	repo.byID[account.ID] = clone(account)
	repo.byEmail[account.Email] = account.ID

	return nil
}

// Ping always succeeds; the store lives in process memory.
func (repo *accountRepository) Ping(ctx context.Context) error {
	return errors.WithStack(ctx.Err())
}

func clone(account *entity.Account) *entity.Account {
	copied := *account
	if account.Location.Latitude != nil {
		lat := *account.Location.Latitude
		copied.Location.Latitude = &lat
	}
	if account.Location.Longitude != nil {
		lng := *account.Location.Longitude
		copied.Location.Longitude = &lng
	}

	return &copied
}
