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

// EntryHandlerParams holds dependencies for EntryHandler, injected by Fx.
type EntryHandlerParams struct {
	fx.In

	EntryUC     usecase.EntryUsecase
	InventoryUC usecase.InventoryUsecase
	MoveUC      usecase.MoveUsecase
	DepositUC   usecase.DepositUsecase
}

// EntryHandler serves transactions, moves between customers and deposits
type EntryHandler struct {
	entryUC     usecase.EntryUsecase
	inventoryUC usecase.InventoryUsecase
	moveUC      usecase.MoveUsecase
	depositUC   usecase.DepositUsecase
}

// NewEntryHandler is the constructor for EntryHandler
func NewEntryHandler(params EntryHandlerParams) *EntryHandler {
	return &EntryHandler{
		entryUC:     params.EntryUC,
		inventoryUC: params.InventoryUC,
		moveUC:      params.MoveUC,
		depositUC:   params.DepositUC,
	}
}

// ListEntries returns the inventory view, newest first
func (h *EntryHandler) ListEntries(c echo.Context) error {
	var filter usecase.InventoryFilter
	if err := c.Bind(&filter); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid filter")
	}

	rows, err := h.inventoryUC.Rows(c.Request().Context(), &filter)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, rows)
}

// SaveEntry runs the save workflow. A 409 CONFIRMATION_REQUIRED names the
// prompt in its details; the client answers it and sends the request again.
func (h *EntryHandler) SaveEntry(c echo.Context) error {
	var req usecase.SaveEntryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid entry input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}
	req.AdminID = middleware.AdminID(c)

	result, err := h.entryUC.Save(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *EntryHandler) GetEntry(c echo.Context) error {
	entry, err := h.entryUC.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entry)
}

func (h *EntryHandler) DeleteEntry(c echo.Context) error {
	if err := h.entryUC.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MoveEntries reassigns transactions to another customer
func (h *EntryHandler) MoveEntries(c echo.Context) error {
	var req usecase.MoveEntriesRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid move input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}
	req.MovedBy = middleware.AdminID(c)

	result, err := h.moveUC.MoveEntries(c.Request().Context(), &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, result)
}

func (h *EntryHandler) MoveHistory(c echo.Context) error {
	history, err := h.moveUC.History(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, history)
}

func (h *EntryHandler) MoveHistoryEntries(c echo.Context) error {
	entries, err := h.moveUC.HistoryEntries(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, entries)
}

func (h *EntryHandler) ListDeposits(c echo.Context) error {
	deposits, err := h.depositUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, deposits)
}

func (h *EntryHandler) SaveDeposit(c echo.Context) error {
	var deposit entity.DepositEntry
	if err := c.Bind(&deposit); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid deposit input")
	}

	saved, err := h.depositUC.Save(c.Request().Context(), &deposit, middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}

func (h *EntryHandler) DeleteDeposit(c echo.Context) error {
	if err := h.depositUC.Delete(c.Request().Context(), c.Param("customerId"), c.Param("id")); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
