package usecase

import (
	"context"
	"time"
)

// Database states reported by the health check.
const (
	DatabaseConnected    = "connected"
	DatabaseDisconnected = "disconnected"
)

// HealthStatus is a point-in-time view of service health.
type HealthStatus struct {
	Healthy   bool
	Timestamp time.Time
	Database  string
}

// HealthUsecase reports whether the service can reach its store.
type HealthUsecase interface {
	Check(ctx context.Context) *HealthStatus
}
