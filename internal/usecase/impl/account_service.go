// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	deliverycontext "accounts/internal/delivery/context"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"
	"accounts/internal/domain/service"
	"accounts/internal/errors"
	"accounts/internal/usecase"
	"accounts/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// dummyPassword is hashed once and compared against when a login email is unknown,
// so unknown emails and wrong passwords take the same time.
const dummyPassword = "account-service-timing-equalizer"

// accountService implements the AccountUsecase interface.
type accountService struct {
	accountRepo  repository.AccountRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	validator    *validation.Validator
	logger       *slog.Logger
	now          func() time.Time

	dummyHash func() (string, error)
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	AccountRepo  repository.AccountRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Validator    *validation.Validator
	Logger       *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	srv := &accountService{
		accountRepo:  params.AccountRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		validator:    params.Validator,
		logger:       params.Logger,
		now:          time.Now,
	}
	srv.dummyHash = sync.OnceValues(func() (string, error) {
		return srv.hasher.Hash(dummyPassword)
	})

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup validates the input, creates the account and issues its first token.
func (srv *accountService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request body is required")
	}

	normalized := *input
	normalized.Email = entity.NormalizeEmail(input.Email)
	if err := srv.validator.Struct(&normalized); err != nil {
		return nil, errors.WithStack(err)
	}

	email := normalized.Email
	srv.log(ctx).Info("Starting signup", slog.String("email", email))

	// Fast path only; the store's unique index is what actually guarantees uniqueness.
	_, err := srv.accountRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		srv.log(ctx).Warn("Signup rejected, email already registered", slog.String("email", email))

		return nil, domainerrors.ErrDuplicateEmail.WrapMessage("email already registered")
	case !errors.Is(err, repository.ErrAccountNotFound):
		return nil, errors.Wrap(err, "failed to check existing account")
	}

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "signup cancelled before hashing")
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during signup", slog.Any("error", err))

		return nil, errors.Wrap(errors.Join(domainerrors.ErrPasswordHashFailed, err), "hash password")
	}

	now := srv.now().UTC()
	id, err := uuid.NewV7()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate account id")
	}

	account := &entity.Account{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		Location:     input.Location,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := srv.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEmail) {
			srv.log(ctx).Warn("Signup lost race for email", slog.String("email", email))
		}

		return nil, errors.Wrap(err, "failed to create account during signup")
	}

	output, err := srv.issue(account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", account.ID))

	return output, nil
}

// Login verifies the credentials and issues a token.
// Unknown email and wrong password produce the same error.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("request body is required")
	}

	normalized := *input
	normalized.Email = entity.NormalizeEmail(input.Email)
	if err := srv.validator.Struct(&normalized); err != nil {
		return nil, errors.WithStack(err)
	}

	email := normalized.Email
	srv.log(ctx).Debug("Starting login", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(err, "failed to load account for login")
		}

		srv.burnComparison(ctx, input.Password)
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	ok, err := srv.hasher.Check(input.Password, account.PasswordHash)
	if err != nil {
		srv.log(ctx).Error("Stored password hash is unusable", slog.Any("accountID", account.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to verify password")
	}
	if !ok {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	output, err := srv.issue(account)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Account logged in successfully", slog.Any("accountID", account.ID))

	return output, nil
}

// GetProfile loads the account behind an authenticated request.
func (srv *accountService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("profile lookup")
		}

		return nil, errors.Wrap(err, "failed to load profile")
	}

	return withoutHash(account), nil
}

func (srv *accountService) issue(account *entity.Account) (*usecase.AuthOutput, error) {
	token, claims, err := srv.tokenService.Issue(service.NewClaims(account))
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue token")
	}

	return &usecase.AuthOutput{
		Account: withoutHash(account),
		Token:   token,
		Claims:  claims,
	}, nil
}

// burnComparison performs a throwaway bcrypt comparison. Its result is irrelevant.
func (srv *accountService) burnComparison(ctx context.Context, password string) {
	hash, err := srv.dummyHash()
	if err != nil {
		srv.log(ctx).Error("Failed to prepare timing hash", slog.Any("error", err))

		return
	}
	_, _ = srv.hasher.Check(password, hash)
}

func withoutHash(account *entity.Account) *entity.Account {
	sanitized := *account
	sanitized.PasswordHash = ""

	return &sanitized
}
