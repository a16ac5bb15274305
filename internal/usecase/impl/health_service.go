package impl

import (
	"context"
	"log/slog"
	"time"

	"accounts/internal/domain/repository"
	"accounts/internal/usecase"
)

type healthService struct {
	accountRepo repository.AccountRepository
	logger      *slog.Logger
	now         func() time.Time
}

// NewHealthService is the constructor for healthService.
func NewHealthService(accountRepo repository.AccountRepository, logger *slog.Logger) usecase.HealthUsecase {
	return &healthService{
		accountRepo: accountRepo,
		logger:      logger,
		now:         time.Now,
	}
}

// Check pings the account store.
func (srv *healthService) Check(ctx context.Context) *usecase.HealthStatus {
	status := &usecase.HealthStatus{
		Healthy:   true,
		Timestamp: srv.now().UTC(),
		Database:  usecase.DatabaseConnected,
	}

	if err := srv.accountRepo.Ping(ctx); err != nil {
		srv.logger.Warn("Health check failed to reach store", slog.Any("error", err))
		status.Healthy = false
		status.Database = usecase.DatabaseDisconnected
	}

	return status
}
