package handler

import (
	"log/slog"
	"net/http"

	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/response"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CustomerHandlerParams holds dependencies for CustomerHandler, injected by Fx.
type CustomerHandlerParams struct {
	fx.In

	CustomerUC  usecase.CustomerUsecase
	InventoryUC usecase.InventoryUsecase
	Logger      *slog.Logger
}

// CustomerHandler holds dependencies for customer-related handlers
type CustomerHandler struct {
	customerUC  usecase.CustomerUsecase
	inventoryUC usecase.InventoryUsecase
	logger      *slog.Logger
}

// NewCustomerHandler is the constructor for CustomerHandler
func NewCustomerHandler(params CustomerHandlerParams) *CustomerHandler {
	return &CustomerHandler{
		customerUC:  params.CustomerUC,
		inventoryUC: params.InventoryUC,
		logger:      params.Logger,
	}
}

// AddAddressRequest represents the request body for adding a shipping address
type AddAddressRequest struct {
	Address string `json:"address" validate:"required,max=200"`
}

// UpdateStatusRequest represents the request body for flagging a reviewed profile
type UpdateStatusRequest struct {
	IsUpdated bool `json:"isUpdated"`
}

// ListCustomers returns every customer
func (h *CustomerHandler) ListCustomers(c echo.Context) error {
	customers, err := h.customerUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customers)
}

// GetCustomer returns one customer
func (h *CustomerHandler) GetCustomer(c echo.Context) error {
	customer, err := h.customerUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// SaveCustomer creates or replaces a customer
func (h *CustomerHandler) SaveCustomer(c echo.Context) error {
	var customer entity.Customer
	if err := c.Bind(&customer); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid customer input")
	}

	saved, err := h.customerUC.Save(c.Request().Context(), &customer, middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

// DeleteCustomer removes a customer without transactions
func (h *CustomerHandler) DeleteCustomer(c echo.Context) error {
	if err := h.customerUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// GetCustomerEntries returns the customer's transactions with a running due
func (h *CustomerHandler) GetCustomerEntries(c echo.Context) error {
	rows, err := h.inventoryUC.CustomerRows(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rows)
}

// GetCustomerDeposits returns the customer's deposits with a running balance
func (h *CustomerHandler) GetCustomerDeposits(c echo.Context) error {
	rows, err := h.inventoryUC.DepositRows(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rows)
}

// AddShippingAddress appends an address to a customer
func (h *CustomerHandler) AddShippingAddress(c echo.Context) error {
	var req AddAddressRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid address input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.AddShippingAddress(c.Request().Context(), c.Param("id"), req.Address)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// SetUpdateStatus flags whether the customer profile has been reviewed
func (h *CustomerHandler) SetUpdateStatus(c echo.Context) error {
	var req UpdateStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid status input")
	}

	if err := h.customerUC.SetUpdateStatus(c.Request().Context(), c.Param("id"), req.IsUpdated); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
