package mongo

import (
	"context"
	"testing"
	"time"

	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestAccountRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	id := uuid.New()
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mt.Run("find by email decodes a point location", func(mt *mtest.T) {
		repo := newAccountRepository(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id.String()},
			{Key: "email", Value: "a@b.com"},
			{Key: "passwordHash", Value: "hash"},
			{Key: "location", Value: bson.D{{Key: "latitude", Value: 6.5}, {Key: "longitude", Value: 3.4}}},
			{Key: "createdAt", Value: created},
			{Key: "updatedAt", Value: created},
		}))

		account, err := repo.FindByEmail(context.Background(), "a@b.com")
		require.NoError(mt, err)
		assert.Equal(mt, id, account.ID)
		assert.Equal(mt, "hash", account.PasswordHash)
		require.True(mt, account.Location.IsPoint())
		assert.Equal(mt, 6.5, *account.Location.Latitude)
		assert.True(mt, created.Equal(account.CreatedAt))
	})

	mt.Run("find by id returns not found", func(mt *mtest.T) {
		repo := newAccountRepository(mt.Coll, time.Second)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()

		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		_, err := repo.FindByID(context.Background(), id)
		assert.True(mt, errors.Is(err, repository.ErrAccountNotFound))
	})

	mt.Run("create succeeds", func(mt *mtest.T) {
		repo := newAccountRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		err := repo.Create(context.Background(), &entity.Account{
			ID:           id,
			Email:        "a@b.com",
			PasswordHash: "hash",
			Location:     entity.TextLocation("Lagos"),
			CreatedAt:    created,
			UpdatedAt:    created,
		})
		assert.NoError(mt, err)
	})

	mt.Run("duplicate key becomes duplicate email", func(mt *mtest.T) {
		repo := newAccountRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: accounts index: email_unique",
		}))

		err := repo.Create(context.Background(), &entity.Account{ID: uuid.New(), Email: "a@b.com"})
		require.Error(mt, err)
		assert.True(mt, errors.Is(err, domainerrors.ErrDuplicateEmail))
	})

	mt.Run("ping", func(mt *mtest.T) {
		repo := newAccountRepository(mt.Coll, time.Second)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		assert.NoError(mt, repo.Ping(context.Background()))
	})
}

func TestDocumentMapping(t *testing.T) {
	account := &entity.Account{
		ID:           uuid.New(),
		Email:        "a@b.com",
		PasswordHash: "hash",
		Location:     entity.TextLocation("Lagos"),
	}

	got, err := toAccountDomain(fromAccountDomain(account))
	require.NoError(t, err)
	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, account.Location, got.Location)

	_, err = toAccountDomain(&accountDocument{ID: "not-a-uuid"})
	assert.Error(t, err)
}
