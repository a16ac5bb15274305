package mongo

import (
	"context"
	"time"

	"accounts/config"
	"accounts/internal/domain/entity"
	domainerrors "accounts/internal/domain/errors"
	"accounts/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const accountsCollection = "accounts"

type accountDocument struct {
	ID           string           `bson:"_id"`
	Email        string           `bson:"email"`
	PasswordHash string           `bson:"passwordHash"`
	Location     locationDocument `bson:"location"`
	CreatedAt    time.Time        `bson:"createdAt"`
	UpdatedAt    time.Time        `bson:"updatedAt"`
}

type locationDocument struct {
	Text      string   `bson:"text,omitempty"`
	Latitude  *float64 `bson:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty"`
}

type accountRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

// NewAccountRepository returns an AccountRepository backed by the "accounts" collection.
func NewAccountRepository(db *mongo.Database, cfg *config.Config) repository.AccountRepository {
	return newAccountRepository(db.Collection(accountsCollection), cfg.Store.OperationTimeout)
}

func newAccountRepository(coll *mongo.Collection, timeout time.Duration) *accountRepository {
	return &accountRepository{coll: coll, timeout: timeout}
}

// EnsureIndexes creates the unique index on email that arbitrates concurrent signups.
func EnsureIndexes(ctx context.Context, coll *mongo.Collection) error {
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})

	return errors.Wrap(err, "failed to create email index")
}

func (repo *accountRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if repo.timeout <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, repo.timeout)
}

func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: id.String()}}, "failed to find account by id")
}

func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return repo.findOne(ctx, bson.D{{Key: "email", Value: email}}, "failed to find account by email")
}

func (repo *accountRepository) findOne(ctx context.Context, filter bson.D, details string) (*entity.Account, error) {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	var doc accountDocument
	if err := repo.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, details)
	}

	return toAccountDomain(&doc)
}

func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, fromAccountDomain(account)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domainerrors.ErrDuplicateEmail.WrapMessage("email already exists")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	return nil
}

func (repo *accountRepository) Ping(ctx context.Context) error {
	ctx, cancel := repo.withTimeout(ctx)
	defer cancel()

	return errors.Wrap(repo.coll.Database().Client().Ping(ctx, readpref.Primary()), "failed to ping MongoDB")
}

func toAccountDomain(doc *accountDocument) (*entity.Account, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "stored account has a malformed id")
	}

	return &entity.Account{
		ID:           id,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Location: entity.Location{
			Text:      doc.Location.Text,
			Latitude:  doc.Location.Latitude,
			Longitude: doc.Location.Longitude,
		},
		CreatedAt: doc.CreatedAt.UTC(),
		UpdatedAt: doc.UpdatedAt.UTC(),
	}, nil
}

func fromAccountDomain(account *entity.Account) *accountDocument {
	return &accountDocument{
		ID:           account.ID.String(),
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		Location: locationDocument{
			Text:      account.Location.Text,
			Latitude:  account.Location.Latitude,
			Longitude: account.Location.Longitude,
		},
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
}
