package handler

import (
	"net/http"

	"accounts/internal/delivery/http/response"
	"accounts/internal/usecase"

	"github.com/labstack/echo/v4"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	uc usecase.HealthUsecase
}

// NewHealthHandler is the constructor for HealthHandler.
func NewHealthHandler(uc usecase.HealthUsecase) *HealthHandler {
	return &HealthHandler{uc: uc}
}

// Check reports 200 when the store is reachable and 503 otherwise.
func (h *HealthHandler) Check(c echo.Context) error {
	status := h.uc.Check(c.Request().Context())

	body := response.Health{
		Status:    "ok",
		Timestamp: status.Timestamp,
		Database:  status.Database,
	}
	if !status.Healthy {
		body.Status = "degraded"

		return c.JSON(http.StatusServiceUnavailable, body)
	}

	return c.JSON(http.StatusOK, body)
}
