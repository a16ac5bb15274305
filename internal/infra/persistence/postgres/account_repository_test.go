package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var accountColumns = []string{"id", "email", "password_hash", "location", "created_at", "updated_at"}

func newTestRepository(t *testing.T) (repository.AccountRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Store.OperationTimeout = time.Second

	return NewAccountRepository(db, cfg), mock
}

func TestAccountRepository_FindByEmail(t *testing.T) {
	repo, mock := newTestRepository(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE email = $1`)).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(id.String(), "lagos@example.com", "hash", []byte(`"Lagos"`), now, now))

	account, err := repo.FindByEmail(context.Background(), "lagos@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, account.ID)
	assert.Equal(t, "hash", account.PasswordHash)
	assert.Equal(t, entity.TextLocation("Lagos"), account.Location)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByID_PointLocation(t *testing.T) {
	repo, mock := newTestRepository(t)
	id := uuid.New()
	now := time.Now().UTC().Truncate(time.Second)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "accounts" WHERE id = $1`)).
		WillReturnRows(sqlmock.NewRows(accountColumns).
			AddRow(id.String(), "a@b.com", "hash", []byte(`{"latitude":6.5,"longitude":3.4}`), now, now))

	account, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.True(t, account.Location.IsPoint())
	assert.Equal(t, 6.5, *account.Location.Latitude)
	assert.Equal(t, 3.4, *account.Location.Longitude)
}

func TestAccountRepository_FindByEmail_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "accounts"`)).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByEmail(context.Background(), "missing@example.com")
	assert.True(t, errors.Is(err, repository.ErrAccountNotFound))
}

func TestAccountRepository_Create(t *testing.T) {
	now := time.Now().UTC()
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "a@b.com",
		PasswordHash: "hash",
		Location:     entity.TextLocation("Lagos"),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	t.Run("inserts the row", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "accounts"`)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Create(context.Background(), account))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation becomes duplicate email", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "accounts"`)).
			WillReturnError(&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "idx_accounts_email"})

		err := repo.Create(context.Background(), account)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrDuplicateEmail))
	})

	t.Run("other failures are database errors", func(t *testing.T) {
		repo, mock := newTestRepository(t)
		mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "accounts"`)).
			WillReturnError(errors.New("connection reset"))

		err := repo.Create(context.Background(), account)
		require.Error(t, err)
		assert.False(t, errors.Is(err, domainerrors.ErrDuplicateEmail))

		var dbErr *domainerrors.DatabaseExecuteError
		assert.True(t, errors.As(err, &dbErr))
	})
}

func TestIsUniqueConstraintViolation(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.Wrap(&pgconn.PgError{Code: "23505"}, "insert")))
	assert.False(t, isUniqueConstraintViolation(&pgconn.PgError{Code: "23502"}))
	assert.False(t, isUniqueConstraintViolation(errors.New("boom")))
}
