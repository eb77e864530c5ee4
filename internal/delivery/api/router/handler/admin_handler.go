package handler

import (
	"log/slog"
	"net/http"

	"fuelflow/internal/delivery/api/middleware"
	"fuelflow/internal/delivery/api/response"
	deliverycontext "fuelflow/internal/delivery/context"
	domainerrors "fuelflow/internal/domain/errors"
	"fuelflow/internal/domain/entity"
	"fuelflow/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AdminHandlerParams holds dependencies for AdminHandler, injected by Fx.
type AdminHandlerParams struct {
	fx.In

	AdminUC      usecase.AdminUsecase
	AttendanceUC usecase.AttendanceUsecase
	SettingsUC   usecase.SettingsUsecase
}

// AdminHandler serves admins, attendance and per-admin settings
type AdminHandler struct {
	adminUC      usecase.AdminUsecase
	attendanceUC usecase.AttendanceUsecase
	settingsUC   usecase.SettingsUsecase
}

// NewAdminHandler is the constructor for AdminHandler
func NewAdminHandler(params AdminHandlerParams) *AdminHandler {
	return &AdminHandler{
		adminUC:      params.AdminUC,
		attendanceUC: params.AttendanceUC,
		settingsUC:   params.SettingsUC,
	}
}

// SetAttendanceRequest marks a delivery person present or absent on one day
type SetAttendanceRequest struct {
	UserID  string `json:"userId" validate:"required"`
	DateKey string `json:"date" validate:"required,len=8,numeric"`
	Present bool   `json:"present"`
}

// Register creates an unverified admin for the authenticated uid
func (h *AdminHandler) Register(c echo.Context) error {
	uid, ok := middleware.GetUID(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrUnauthorized)
	}

	var req usecase.RegisterAdminRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	admin, err := h.adminUC.Register(c.Request().Context(), uid, &req)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, admin)
}

func (h *AdminHandler) ListAdmins(c echo.Context) error {
	admins, err := h.adminUC.List(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, admins)
}

// Me returns the current admin and records the visit
func (h *AdminHandler) Me(c echo.Context) error {
	admin, ok := middleware.GetAdmin(c)
	if !ok {
		return response.HandleAppError(c, domainerrors.ErrForbidden)
	}

	ctx := c.Request().Context()
	if err := h.adminUC.TouchLastSeen(ctx, admin.Data.UserID); err != nil {
		deliverycontext.Logger(ctx).Warn("Failed to record last seen",
			slog.String("admin_id", admin.Data.UserID),
			slog.Any("error", err),
		)
	}

	return response.Success(c, http.StatusOK, admin)
}

func (h *AdminHandler) GetAttendance(c echo.Context) error {
	attendance, err := h.attendanceUC.Get(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, attendance)
}

func (h *AdminHandler) SetAttendance(c echo.Context) error {
	var req SetAttendanceRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid attendance input")
	}
	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.attendanceUC.Set(c.Request().Context(), req.UserID, req.DateKey, req.Present); err != nil {
		return response.HandleAppError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *AdminHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsUC.Get(c.Request().Context(), middleware.AdminID(c))
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings)
}

func (h *AdminHandler) SaveSettings(c echo.Context) error {
	var settings entity.Settings
	if err := c.Bind(&settings); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid settings input")
	}

	saved, err := h.settingsUC.Save(c.Request().Context(), middleware.AdminID(c), settings)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, saved)
}
