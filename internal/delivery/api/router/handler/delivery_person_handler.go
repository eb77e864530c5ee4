package handler

import (
	"net/http"

	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/response"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// DeliveryPersonHandlerParams holds dependencies for DeliveryPersonHandler, injected by Fx.
type DeliveryPersonHandlerParams struct {
	fx.In

	DeliveryPersonUC usecase.DeliveryPersonUsecase
	InventoryUC      usecase.InventoryUsecase
}

// DeliveryPersonHandler holds dependencies for delivery person handlers
type DeliveryPersonHandler struct {
	deliveryPersonUC usecase.DeliveryPersonUsecase
	inventoryUC      usecase.InventoryUsecase
}

// NewDeliveryPersonHandler is the constructor for DeliveryPersonHandler
func NewDeliveryPersonHandler(params DeliveryPersonHandlerParams) *DeliveryPersonHandler {
	return &DeliveryPersonHandler{
		deliveryPersonUC: params.DeliveryPersonUC,
		inventoryUC:      params.InventoryUC,
	}
}

func (h *DeliveryPersonHandler) ListDeliveryPersons(c echo.Context) error {
	persons, err := h.deliveryPersonUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, persons)
}

func (h *DeliveryPersonHandler) GetDeliveryPerson(c echo.Context) error {
	person, err := h.deliveryPersonUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, person)
}

func (h *DeliveryPersonHandler) SaveDeliveryPerson(c echo.Context) error {
	var person entity.DeliveryPerson
	if err := c.Bind(&person); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid delivery person input")
	}

	saved, err := h.deliveryPersonUC.Save(c.Request().Context(), &person, middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

func (h *DeliveryPersonHandler) DeleteDeliveryPerson(c echo.Context) error {
	if err := h.deliveryPersonUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetDeliveryPersonEntries returns the transactions a person delivered, oldest first
func (h *DeliveryPersonHandler) GetDeliveryPersonEntries(c echo.Context) error {
	rows, err := h.inventoryUC.DeliveryPersonRows(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rows)
}
