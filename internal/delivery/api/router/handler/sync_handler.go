package handler

import (
	"net/http"

	"fuelflow/internal/delivery/api/response"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SyncHandlerParams holds dependencies for SyncHandler, injected by Fx.
type SyncHandlerParams struct {
	fx.In

	SyncUC usecase.SyncUsecase
}

// SyncHandler reports and reloads the in-memory repositories
type SyncHandler struct {
	syncUC usecase.SyncUsecase
}

// NewSyncHandler is the constructor for SyncHandler
func NewSyncHandler(params SyncHandlerParams) *SyncHandler {
	return &SyncHandler{syncUC: params.SyncUC}
}

// HealthResponse is the body of the health check
type HealthResponse struct {
	Status       string                     `json:"status"`
	Repositories []usecase.RepositoryStatus `json:"repositories"`
}

// HealthCheck lists every repository with its record count
func (h *SyncHandler) HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, &HealthResponse{
		Status:       "ok",
		Repositories: h.syncUC.Status(),
	})
}

// Refresh reloads the repository behind the topic
func (h *SyncHandler) Refresh(c echo.Context) error {
	if err := h.syncUC.Refresh(c.Request().Context(), c.Param("topic")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
