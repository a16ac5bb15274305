// Package persistence selects the account store named by the configuration.
package persistence

import (
	"log/slog"

	"accounts/config"
	"accounts/internal/domain/repository"
	"accounts/internal/errors"
	"accounts/internal/infra/persistence/memory"
	"accounts/internal/infra/persistence/mongo"
	"accounts/internal/infra/persistence/postgres"

	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// NewAccountRepository builds the account store for store.driver.
func NewAccountRepository(params Params) (repository.AccountRepository, error) {
	driver := params.Config.Store.Driver
	params.Logger.Info("Selecting account store", slog.String("driver", driver))

	switch driver {
	case config.StoreDriverMemory, "":
		return memory.NewAccountRepository(), nil
	case config.StoreDriverPostgres:
		db, err := postgres.New(params.Lifecycle, params.Config, params.Logger)
		if err != nil {
			return nil, err
		}

		return postgres.NewAccountRepository(db, params.Config), nil
	case config.StoreDriverMongo:
		db, err := mongo.New(params.Lifecycle, params.Config, params.Logger)
		if err != nil {
			return nil, err
		}

		return mongo.NewAccountRepository(db, params.Config), nil
	default:
		return nil, errors.Errorf("unknown store driver %q", driver)
	}
}
