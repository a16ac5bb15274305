package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	mockusecase "accounts/internal/mocks/usecase"
	"accounts/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Check(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		status     *usecase.HealthStatus
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{
			name:       "store reachable",
			status:     &usecase.HealthStatus{Healthy: true, Timestamp: now, Database: usecase.DatabaseConnected},
			wantCode:   http.StatusOK,
			wantStatus: "ok",
			wantDB:     "connected",
		},
		{
			name:       "store unreachable",
			status:     &usecase.HealthStatus{Healthy: false, Timestamp: now, Database: usecase.DatabaseDisconnected},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "degraded",
			wantDB:     "disconnected",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := mockusecase.NewMockHealthUsecase(t)
			uc.EXPECT().Check(mock.Anything).Return(tt.status)

			c, rec := newJSONContext(http.MethodGet, "/api/health", "")
			require.NoError(t, NewHealthHandler(uc).Check(c))
			assert.Equal(t, tt.wantCode, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantDB, body["database"])
			assert.Equal(t, "2024-05-01T10:00:00Z", body["timestamp"])
		})
	}
}
